package service

import (
	"errors"
	"time"

	"learning_path_backend/internal/config"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register creates the user plus their student profile (semester 1).
// A taken username yields util.ErrUsernameTaken.
func (s *AuthService) Register(username, password, email string) (*model.User, error) {
	_, err := s.UserRepo.FindByUsername(username)
	if err == nil {
		return nil, util.ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hashedPassword),
		Email:    email,
	}
	profile := &model.StudentProfile{
		CurrentSemester: 1,
		LearningPace:    "moderate",
		LastActive:      time.Now(),
	}

	if err := s.UserRepo.CreateWithProfile(user, profile); err != nil {
		// Concurrent registration of the same name races past the lookup;
		// the unique index settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(username, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
