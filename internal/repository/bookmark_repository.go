package repository

import (
	"errors"

	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

// ErrAlreadyBookmarked signals a duplicate (user, resource) pair. Callers
// treat it as a soft success.
var ErrAlreadyBookmarked = errors.New("already bookmarked")

type BookmarkRepository struct {
	DB *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

// BookmarkedResource is a bookmark joined with its resource and curriculum
// names for the list view.
type BookmarkedResource struct {
	model.LearningResource
	BookmarkID  uint   `json:"bookmark_id"`
	TopicName   string `json:"topic_name"`
	SubjectName string `json:"subject_name"`
}

func (r *BookmarkRepository) Create(userID, resourceID uint) error {
	err := r.DB.Create(&model.Bookmark{UserID: userID, ResourceID: resourceID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyBookmarked
	}
	return err
}

func (r *BookmarkRepository) ListByUser(userID uint) ([]BookmarkedResource, error) {
	var resources []BookmarkedResource
	err := r.DB.Model(&model.Bookmark{}).
		Select("learning_resources.*, bookmarks.id AS bookmark_id, topics.name AS topic_name, subjects.name AS subject_name").
		Joins("JOIN learning_resources ON bookmarks.resource_id = learning_resources.id").
		Joins("JOIN topics ON learning_resources.topic_id = topics.id").
		Joins("JOIN subjects ON topics.subject_id = subjects.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Scan(&resources).Error
	return resources, err
}

// Delete removes the caller's bookmark. Unknown ids and other users'
// bookmarks are silent no-ops. The delete is hard: a soft-deleted row would
// keep occupying the (user, resource) unique index and block re-adding.
func (r *BookmarkRepository) Delete(userID, bookmarkID uint) error {
	return r.DB.Unscoped().Where("id = ? AND user_id = ?", bookmarkID, userID).Delete(&model.Bookmark{}).Error
}
