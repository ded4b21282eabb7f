package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

// TopicWithProgress annotates a topic with the caller's progress, defaulting
// to not_started / 0 when no progress row exists or the caller is anonymous.
type TopicWithProgress struct {
	model.Topic
	UserStatus model.CompletionStatus `json:"user_status"`
	UserScore  float64                `json:"user_score"`
}

// TopicDetail joins the owning subject onto a topic.
type TopicDetail struct {
	model.Topic
	SubjectName string `json:"subject_name"`
	Semester    int    `json:"semester"`
}

func (r *TopicRepository) ListBySubject(subjectID, userID uint) ([]TopicWithProgress, error) {
	var topics []TopicWithProgress
	err := r.DB.Model(&model.Topic{}).
		Select("topics.*, COALESCE(up.completion_status, 'not_started') AS user_status, COALESCE(up.score, 0) AS user_score").
		Joins("LEFT JOIN user_progress up ON topics.id = up.topic_id AND up.user_id = ?", userID).
		Where("topics.subject_id = ?", subjectID).
		Order("topics.order_index").
		Scan(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) FindDetail(id uint) (*TopicDetail, error) {
	var detail TopicDetail
	err := r.DB.Model(&model.Topic{}).
		Select("topics.*, subjects.name AS subject_name, subjects.semester AS semester").
		Joins("JOIN subjects ON topics.subject_id = subjects.id").
		Where("topics.id = ?", id).
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
