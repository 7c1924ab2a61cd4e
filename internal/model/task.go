package model

type TaskType string

const (
	TaskText     TaskType = "text"
	TaskSingle   TaskType = "single"
	TaskMultiple TaskType = "multiple"
	TaskImage    TaskType = "image"
)

// TaskTypes lists every task kind in a stable order.
var TaskTypes = []TaskType{TaskText, TaskSingle, TaskMultiple, TaskImage}

func (t TaskType) Valid() bool {
	switch t {
	case TaskText, TaskSingle, TaskMultiple, TaskImage:
		return true
	}
	return false
}

// swagger:model Task
type Task struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestID   uint       `gorm:"not null;uniqueIndex:task_question_uc,priority:1" json:"questId"`
	Type      TaskType   `gorm:"size:16;not null;default:text" json:"type"`
	Question  string     `gorm:"size:512;not null;uniqueIndex:task_question_uc,priority:2" json:"question"`
	Responses StringList `gorm:"type:text;not null" json:"responses"`
	Answers   StringList `gorm:"type:text;not null" json:"answers"`
	Order     int        `gorm:"not null;default:0" json:"order"`
}

func (Task) TableName() string {
	return "task"
}
