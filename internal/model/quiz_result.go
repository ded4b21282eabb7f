package model

import "time"

// QuizResult is an append-only log of quiz attempts, many per (user, topic).
// Score is computed once at submission and never recomputed.
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	TopicID        uint      `gorm:"index;not null" json:"topic_id"`
	Score          float64   `gorm:"not null" json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TimeTaken      int       `json:"time_taken"`
	Accuracy       float64   `json:"accuracy"`
	CompletedAt    time.Time `json:"completed_at"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
