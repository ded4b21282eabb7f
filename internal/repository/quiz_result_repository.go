package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

// TopicStats aggregates every attempt a user made on one topic.
type TopicStats struct {
	AvgScore     float64 `json:"average_score"`
	AttemptCount int64   `json:"attempt_count"`
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) TopicStats(userID, topicID uint) (*TopicStats, error) {
	var stats TopicStats
	err := r.DB.Model(&model.QuizResult{}).
		Select("COALESCE(AVG(score), 0) AS avg_score, COUNT(*) AS attempt_count").
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
