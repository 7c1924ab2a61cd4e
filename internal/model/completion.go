package model

import "time"

type CompletionStatus string

const (
	CompletionInProgress CompletionStatus = "in progress"
	CompletionCompleted  CompletionStatus = "completed"
	CompletionAborted    CompletionStatus = "aborted"
)

// Completion records one user's attempt at a quest. Nothing writes it yet.
type Completion struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestID     uint             `gorm:"not null;uniqueIndex:completion_quest_user_uc,priority:1" json:"questId"`
	User        string           `gorm:"size:255;not null;uniqueIndex:completion_quest_user_uc,priority:2" json:"user"`
	TimeTook    int              `gorm:"not null" json:"timeTook"`
	Rate        int              `gorm:"not null;default:0" json:"rate"`
	Status      CompletionStatus `gorm:"size:16;not null;default:'in progress'" json:"status"`
	CreatedAt   time.Time        `gorm:"not null;autoCreateTime" json:"createdAt"`
	SubmittedAt *time.Time       `json:"submittedAt"`

	TaskCompletions []TaskCompletion `gorm:"foreignKey:CompletionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Completion) TableName() string {
	return "completion"
}

type TaskCompletion struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CompletionID uint   `gorm:"not null;uniqueIndex:task_completion_uc,priority:1" json:"completionId"`
	TaskID       uint   `gorm:"not null;uniqueIndex:task_completion_uc,priority:2" json:"taskId"`
	Answer       string `gorm:"type:text;not null" json:"answer"`

	Task *Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (TaskCompletion) TableName() string {
	return "task_completion"
}
