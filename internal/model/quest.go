package model

// swagger:model Quest
type Quest struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:128;not null;uniqueIndex:quest_name_uc" json:"name"`
	Description string `gorm:"size:256" json:"description"`

	Tasks       []Task       `gorm:"foreignKey:QuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Completions []Completion `gorm:"foreignKey:QuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Quest) TableName() string {
	return "quest"
}
