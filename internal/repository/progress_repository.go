package repository

import (
	"errors"
	"time"

	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// WeakArea is a topic whose stored progress score sits below the
// recommendation threshold.
type WeakArea struct {
	TopicID     uint             `json:"topic_id"`
	Name        string           `json:"name"`
	SubjectName string           `json:"subject_name"`
	Difficulty  model.Difficulty `json:"difficulty"`
	Score       float64          `json:"score"`
}

// NextTopic is a curriculum topic the user has not completed yet.
type NextTopic struct {
	TopicID     uint             `json:"topic_id"`
	Name        string           `json:"name"`
	SubjectName string           `json:"subject_name"`
	Semester    int              `json:"semester"`
	Difficulty  model.Difficulty `json:"difficulty"`
	OrderIndex  int              `json:"order_index"`
}

func (r *ProgressRepository) Find(userID, topicID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// UpsertStatus records a study session: completion status is overwritten,
// timeSpent is ADDED to the stored total. Either path succeeds, keeping
// exactly one row per (user, topic).
func (r *ProgressRepository) UpsertStatus(userID, topicID uint, status model.CompletionStatus, timeSpent int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.UserProgress
		err := tx.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&model.UserProgress{
				UserID:           userID,
				TopicID:          topicID,
				CompletionStatus: status,
				TimeSpent:        timeSpent,
				LastAccessed:     time.Now(),
			}).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"completion_status": status,
			"time_spent":        gorm.Expr("time_spent + ?", timeSpent),
			"last_accessed":     time.Now(),
		}).Error
	})
}

// UpsertScore records a quiz outcome: status becomes completed and the score
// is overwritten regardless of any prior value (last attempt wins).
// Accumulated time_spent is left untouched.
func (r *ProgressRepository) UpsertScore(userID, topicID uint, score float64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.UserProgress
		err := tx.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&model.UserProgress{
				UserID:           userID,
				TopicID:          topicID,
				CompletionStatus: model.Completed,
				Score:            score,
				LastAccessed:     time.Now(),
			}).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"completion_status": model.Completed,
			"score":             score,
			"last_accessed":     time.Now(),
		}).Error
	})
}

// WeakAreas lists topics with progress score below threshold, weakest first.
func (r *ProgressRepository) WeakAreas(userID uint, threshold float64, limit int) ([]WeakArea, error) {
	var areas []WeakArea
	err := r.DB.Model(&model.UserProgress{}).
		Select("topics.id AS topic_id, topics.name AS name, subjects.name AS subject_name, topics.difficulty AS difficulty, user_progress.score AS score").
		Joins("JOIN topics ON user_progress.topic_id = topics.id").
		Joins("JOIN subjects ON topics.subject_id = subjects.id").
		Where("user_progress.user_id = ? AND user_progress.score < ?", userID, threshold).
		Order("user_progress.score ASC").
		Limit(limit).
		Scan(&areas).Error
	return areas, err
}

// NextTopics lists not-yet-completed topics in the given semester in
// curriculum order.
func (r *ProgressRepository) NextTopics(userID uint, semester, limit int) ([]NextTopic, error) {
	var topics []NextTopic
	err := r.DB.Model(&model.Topic{}).
		Select("topics.id AS topic_id, topics.name AS name, subjects.name AS subject_name, subjects.semester AS semester, topics.difficulty AS difficulty, topics.order_index AS order_index").
		Joins("JOIN subjects ON topics.subject_id = subjects.id").
		Joins("LEFT JOIN user_progress up ON topics.id = up.topic_id AND up.user_id = ?", userID).
		Where("subjects.semester = ? AND (up.id IS NULL OR up.completion_status != ?)", semester, model.Completed).
		Order("topics.order_index").
		Limit(limit).
		Scan(&topics).Error
	return topics, err
}
