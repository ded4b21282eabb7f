package repository

import (
	"testing"

	"learning_path_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedResource(t *testing.T, db *gorm.DB) *model.LearningResource {
	t.Helper()

	topics := seedTopics(t, db, 1, "Limits")
	resource := model.LearningResource{
		TopicID:  topics[0].ID,
		Type:     model.Video,
		Title:    "Limits Explained",
		URL:      "https://example.com/limits",
		Language: "english",
	}
	require.NoError(t, db.Create(&resource).Error)
	return &resource
}

func TestBookmarkCreate_Duplicate(t *testing.T) {
	db := newTestDB(t)
	resource := seedResource(t, db)
	repo := NewBookmarkRepository(db)

	require.NoError(t, repo.Create(1, resource.ID))
	assert.ErrorIs(t, repo.Create(1, resource.ID), ErrAlreadyBookmarked)

	// The same resource bookmarked by someone else is not a duplicate.
	assert.NoError(t, repo.Create(2, resource.ID))
}

func TestBookmarkReAddAfterDelete(t *testing.T) {
	db := newTestDB(t)
	resource := seedResource(t, db)
	repo := NewBookmarkRepository(db)

	require.NoError(t, repo.Create(1, resource.ID))

	var bookmark model.Bookmark
	require.NoError(t, db.Where("user_id = ?", 1).First(&bookmark).Error)
	require.NoError(t, repo.Delete(1, bookmark.ID))

	// The removed row must not linger in the unique index.
	require.NoError(t, repo.Create(1, resource.ID))

	listed, err := repo.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, resource.ID, listed[0].LearningResource.ID)
}

func TestBookmarkDelete_OtherUserIsNoOp(t *testing.T) {
	db := newTestDB(t)
	resource := seedResource(t, db)
	repo := NewBookmarkRepository(db)

	require.NoError(t, repo.Create(1, resource.ID))

	var bookmark model.Bookmark
	require.NoError(t, db.Where("user_id = ?", 1).First(&bookmark).Error)
	require.NoError(t, repo.Delete(2, bookmark.ID))

	listed, err := repo.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
