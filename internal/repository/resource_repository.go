package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

// ListByTopic filters resources by language and, when non-empty, by type.
func (r *ResourceRepository) ListByTopic(topicID uint, language string, resourceType model.ResourceType) ([]model.LearningResource, error) {
	query := r.DB.Where("topic_id = ? AND language = ?", topicID, language)
	if resourceType != "" {
		query = query.Where("type = ?", resourceType)
	}

	var resources []model.LearningResource
	err := query.Find(&resources).Error
	return resources, err
}

func (r *ResourceRepository) FindByID(id uint) (*model.LearningResource, error) {
	var resource model.LearningResource
	err := r.DB.First(&resource, id).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}
