package repository

import (
	"time"

	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// SubjectProgress is one row of the per-subject analytics view. AvgScore
// ignores zero scores; it is nil when the user has no scored progress in
// the subject.
type SubjectProgress struct {
	Subject     string   `json:"subject"`
	TotalTopics int      `json:"total_topics"`
	Completed   int      `json:"completed"`
	AvgScore    *float64 `json:"avg_score"`
}

// RecentQuiz is a quiz attempt joined with curriculum names.
type RecentQuiz struct {
	model.QuizResult
	TopicName   string `json:"topic_name"`
	SubjectName string `json:"subject_name"`
}

// TrendPoint is the daily average over the trend window.
type TrendPoint struct {
	Date      string  `json:"date"`
	AvgScore  float64 `json:"avg_score"`
	QuizCount int     `json:"quiz_count"`
}

// SemesterStats summarizes one semester when the analytics view is filtered.
type SemesterStats struct {
	TopicsTotal     int     `json:"topics_total"`
	TopicsCompleted int     `json:"topics_completed"`
	AvgScore        float64 `json:"avg_score"`
}

// SubjectProgress joins Subject -> Topic -> UserProgress. semester <= 0
// covers the whole curriculum.
func (r *AnalyticsRepository) SubjectProgress(userID uint, semester int) ([]SubjectProgress, error) {
	query := r.DB.Model(&model.Subject{}).
		Select(`subjects.name AS subject,
			COUNT(DISTINCT topics.id) AS total_topics,
			COUNT(DISTINCT CASE WHEN up.completion_status = 'completed' THEN up.topic_id END) AS completed,
			AVG(CASE WHEN up.score > 0 THEN up.score ELSE NULL END) AS avg_score`).
		Joins("JOIN topics ON subjects.id = topics.subject_id").
		Joins("LEFT JOIN user_progress up ON topics.id = up.topic_id AND up.user_id = ?", userID).
		Group("subjects.id, subjects.name, subjects.semester").
		Order("subjects.semester")

	if semester > 0 {
		query = query.Where("subjects.semester = ?", semester)
	}

	var rows []SubjectProgress
	err := query.Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepository) RecentQuizzes(userID uint, limit int) ([]RecentQuiz, error) {
	var quizzes []RecentQuiz
	err := r.DB.Model(&model.QuizResult{}).
		Select("quiz_results.*, topics.name AS topic_name, subjects.name AS subject_name").
		Joins("JOIN topics ON quiz_results.topic_id = topics.id").
		Joins("JOIN subjects ON topics.subject_id = subjects.id").
		Where("quiz_results.user_id = ?", userID).
		Order("quiz_results.completed_at DESC").
		Limit(limit).
		Scan(&quizzes).Error
	return quizzes, err
}

// PerformanceTrend buckets quiz scores per day over the trailing window.
func (r *AnalyticsRepository) PerformanceTrend(userID uint, window time.Duration) ([]TrendPoint, error) {
	since := time.Now().Add(-window)

	var points []TrendPoint
	err := r.DB.Model(&model.QuizResult{}).
		Select("DATE(completed_at) AS date, AVG(score) AS avg_score, COUNT(*) AS quiz_count").
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Group("DATE(completed_at)").
		Order("date").
		Scan(&points).Error
	return points, err
}

func (r *AnalyticsRepository) SemesterStats(userID uint, semester int) (*SemesterStats, error) {
	var stats SemesterStats
	err := r.DB.Model(&model.Topic{}).
		Select(`COUNT(DISTINCT topics.id) AS topics_total,
			COUNT(DISTINCT CASE WHEN up.completion_status = 'completed' THEN up.topic_id END) AS topics_completed,
			COALESCE(AVG(CASE WHEN up.score > 0 THEN up.score ELSE NULL END), 0) AS avg_score`).
		Joins("JOIN subjects ON topics.subject_id = subjects.id").
		Joins("LEFT JOIN user_progress up ON topics.id = up.topic_id AND up.user_id = ?", userID).
		Where("subjects.semester = ?", semester).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
