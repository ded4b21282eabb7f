package repository

import (
	"time"

	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// ProfileStats aggregates completed progress rows for the profile view.
type ProfileStats struct {
	CompletedTopics int     `json:"completed_topics"`
	AvgScore        float64 `json:"avg_score"`
	TotalTime       int     `json:"total_time"`
}

func (r *ProfileRepository) FindByUserID(userID uint) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) UpdateSemester(userID uint, semester int) error {
	return r.DB.Model(&model.StudentProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"current_semester": semester,
			"last_active":      time.Now(),
		}).Error
}

func (r *ProfileRepository) Stats(userID uint) (*ProfileStats, error) {
	var stats ProfileStats
	err := r.DB.Model(&model.UserProgress{}).
		Select("COUNT(DISTINCT topic_id) AS completed_topics, COALESCE(AVG(score), 0) AS avg_score, COALESCE(SUM(time_spent), 0) AS total_time").
		Where("user_id = ? AND completion_status = ?", userID, model.Completed).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
