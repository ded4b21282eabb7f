package model

import "time"

// StudentProfile is created exactly once per user, at registration.
// swagger:model StudentProfile
type StudentProfile struct {
	BaseModel
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentSemester int       `gorm:"default:1;not null" json:"current_semester"`
	OverallProgress float64   `gorm:"default:0" json:"overall_progress"`
	LearningPace    string    `gorm:"size:20;default:'moderate'" json:"learning_pace"`
	StreakDays      int       `gorm:"default:0" json:"streak_days"`
	LastActive      time.Time `json:"last_active"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
