package service

import (
	"errors"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

// ProgressService covers the profile view and the study-session upsert.
type ProgressService struct {
	ProfileRepo  *repository.ProfileRepository
	ProgressRepo *repository.ProgressRepository
	UserRepo     *repository.UserRepository
}

func NewProgressService(profileRepo *repository.ProfileRepository, progressRepo *repository.ProgressRepository, userRepo *repository.UserRepository) *ProgressService {
	return &ProgressService{
		ProfileRepo:  profileRepo,
		ProgressRepo: progressRepo,
		UserRepo:     userRepo,
	}
}

// Profile merges the profile row, account fields and aggregate stats.
type Profile struct {
	model.StudentProfile
	Username string `json:"username"`
	Email    string `json:"email"`
	repository.ProfileStats
}

func (s *ProgressService) GetProfile(userID uint) (*Profile, error) {
	profile, err := s.ProfileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.ProfileRepo.Stats(userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		StudentProfile: *profile,
		Username:       user.Username,
		Email:          user.Email,
		ProfileStats:   *stats,
	}, nil
}

func (s *ProgressService) UpdateSemester(userID uint, semester int) error {
	if semester < 1 {
		semester = 1
	}
	return s.ProfileRepo.UpdateSemester(userID, semester)
}

// RecordProgress applies the upsert of a study session. Status defaults to
// in_progress; timeSpent accumulates onto the stored total.
func (s *ProgressService) RecordProgress(userID, topicID uint, status model.CompletionStatus, timeSpent int) error {
	if status == "" {
		status = model.InProgress
	}
	return s.ProgressRepo.UpsertStatus(userID, topicID, status, timeSpent)
}
