package model

import "time"

type CompletionStatus string

const (
	NotStarted CompletionStatus = "not_started"
	InProgress CompletionStatus = "in_progress"
	Completed  CompletionStatus = "completed"
)

// UserProgress holds one row per (user, topic) pair. TimeSpent accumulates
// across updates; Score is overwritten by the latest quiz submission.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID           uint             `gorm:"uniqueIndex:idx_user_topic;not null" json:"user_id"`
	TopicID          uint             `gorm:"uniqueIndex:idx_user_topic;not null" json:"topic_id"`
	CompletionStatus CompletionStatus `gorm:"size:20;default:'not_started'" json:"completion_status"`
	Score            float64          `gorm:"default:0" json:"score"`
	TimeSpent        int              `gorm:"default:0" json:"time_spent"`
	LastAccessed     time.Time        `json:"last_accessed"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
