package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"
	"learning_path_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// curriculumCacheTTL bounds staleness of the anonymous subject listing.
// The curriculum is seeded once and read-only afterwards, so a generous TTL
// is safe.
const curriculumCacheTTL = time.Hour

// ContentService serves the read-only curriculum: subjects, topics and
// learning resources, annotated with per-user progress when a user is known.
type ContentService struct {
	SubjectRepo  *repository.SubjectRepository
	TopicRepo    *repository.TopicRepository
	ResourceRepo *repository.ResourceRepository
	ProgressRepo *repository.ProgressRepository
	Redis        *redis.Client
}

func NewContentService(subjectRepo *repository.SubjectRepository, topicRepo *repository.TopicRepository, resourceRepo *repository.ResourceRepository, progressRepo *repository.ProgressRepository, rdb *redis.Client) *ContentService {
	return &ContentService{
		SubjectRepo:  subjectRepo,
		TopicRepo:    topicRepo,
		ResourceRepo: resourceRepo,
		ProgressRepo: progressRepo,
		Redis:        rdb,
	}
}

// TopicView is the detail response: the topic, its subject, and the
// caller's progress row when one exists.
type TopicView struct {
	repository.TopicDetail
	Progress *model.UserProgress `json:"progress,omitempty"`
}

// ListSubjects returns subjects with the user's completed counts. Anonymous
// listings (userID 0) carry no per-user data, so they are served from the
// redis cache when one is configured; cache failures fall through to the
// database.
func (s *ContentService) ListSubjects(ctx context.Context, userID uint, semester int) ([]repository.SubjectWithCompleted, error) {
	cacheKey := fmt.Sprintf("subjects:semester:%d", semester)

	if s.Redis != nil && userID == 0 {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var subjects []repository.SubjectWithCompleted
			if err := json.Unmarshal([]byte(cached), &subjects); err == nil {
				return subjects, nil
			}
		}
	}

	subjects, err := s.SubjectRepo.List(userID, semester)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil && userID == 0 {
		if payload, err := json.Marshal(subjects); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, curriculumCacheTTL).Err(); err != nil {
				logger.Log.Warn("subject cache write failed", zap.Error(err))
			}
		}
	}

	return subjects, nil
}

func (s *ContentService) ListTopics(subjectID, userID uint) ([]repository.TopicWithProgress, error) {
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return s.TopicRepo.ListBySubject(subjectID, userID)
}

func (s *ContentService) GetTopic(topicID, userID uint) (*TopicView, error) {
	detail, err := s.TopicRepo.FindDetail(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	view := &TopicView{TopicDetail: *detail}

	if userID != 0 {
		if progress, err := s.ProgressRepo.Find(userID, topicID); err == nil {
			view.Progress = progress
		}
	}

	return view, nil
}

func (s *ContentService) ListResources(topicID uint, language string, resourceType model.ResourceType) ([]model.LearningResource, error) {
	if language == "" {
		language = "english"
	}
	return s.ResourceRepo.ListByTopic(topicID, language, resourceType)
}
