package service

import (
	"time"

	"learning_path_backend/internal/repository"
)

const (
	trendWindow      = 30 * 24 * time.Hour
	recentQuizzesCap = 10
)

// AnalyticsService is pure read-only aggregation over the progress and quiz
// tables; it never mutates anything.
type AnalyticsService struct {
	AnalyticsRepo *repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{AnalyticsRepo: analyticsRepo}
}

// AnalyticsView is the response of GET /api/progress/analytics.
// SemesterStats is present only when a semester filter was given.
type AnalyticsView struct {
	SubjectProgress  []repository.SubjectProgress `json:"subject_progress"`
	RecentQuizzes    []repository.RecentQuiz      `json:"recent_quizzes"`
	PerformanceTrend []repository.TrendPoint      `json:"performance_trend"`
	SemesterStats    *repository.SemesterStats    `json:"semester_stats,omitempty"`
}

func (s *AnalyticsService) Analytics(userID uint, semester int) (*AnalyticsView, error) {
	subjectProgress, err := s.AnalyticsRepo.SubjectProgress(userID, semester)
	if err != nil {
		return nil, err
	}

	recentQuizzes, err := s.AnalyticsRepo.RecentQuizzes(userID, recentQuizzesCap)
	if err != nil {
		return nil, err
	}

	trend, err := s.AnalyticsRepo.PerformanceTrend(userID, trendWindow)
	if err != nil {
		return nil, err
	}

	view := &AnalyticsView{
		SubjectProgress:  subjectProgress,
		RecentQuizzes:    recentQuizzes,
		PerformanceTrend: trend,
	}

	if semester > 0 {
		stats, err := s.AnalyticsRepo.SemesterStats(userID, semester)
		if err != nil {
			return nil, err
		}
		view.SemesterStats = stats
	}

	return view, nil
}
