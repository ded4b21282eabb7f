package service

import (
	"errors"

	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

type BookmarkService struct {
	BookmarkRepo *repository.BookmarkRepository
	ResourceRepo *repository.ResourceRepository
}

func NewBookmarkService(bookmarkRepo *repository.BookmarkRepository, resourceRepo *repository.ResourceRepository) *BookmarkService {
	return &BookmarkService{
		BookmarkRepo: bookmarkRepo,
		ResourceRepo: resourceRepo,
	}
}

func (s *BookmarkService) List(userID uint) ([]repository.BookmarkedResource, error) {
	return s.BookmarkRepo.ListByUser(userID)
}

// Add bookmarks a resource. A duplicate returns
// repository.ErrAlreadyBookmarked so the handler can answer softly.
func (s *BookmarkService) Add(userID, resourceID uint) error {
	if _, err := s.ResourceRepo.FindByID(resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrResourceNotFound
		}
		return err
	}
	return s.BookmarkRepo.Create(userID, resourceID)
}

func (s *BookmarkService) Remove(userID, bookmarkID uint) error {
	return s.BookmarkRepo.Delete(userID, bookmarkID)
}
