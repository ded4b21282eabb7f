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
	"learning_path_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const questionOptions = 4

type QuizService struct {
	TopicRepo    *repository.TopicRepository
	QuizRepo     *repository.QuizResultRepository
	ProgressRepo *repository.ProgressRepository
	Generator    Generator
}

func NewQuizService(topicRepo *repository.TopicRepository, quizRepo *repository.QuizResultRepository, progressRepo *repository.ProgressRepository, generator Generator) *QuizService {
	return &QuizService{
		TopicRepo:    topicRepo,
		QuizRepo:     quizRepo,
		ProgressRepo: progressRepo,
		Generator:    generator,
	}
}

// Question is one multiple-choice quiz entry. CorrectAnswer indexes Options.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Quiz is the response of GET /api/quiz/:topic_id.
type Quiz struct {
	TopicID    uint             `json:"topic_id"`
	TopicName  string           `json:"topic_name"`
	Subject    string           `json:"subject"`
	Difficulty model.Difficulty `json:"difficulty"`
	TimeLimit  int              `json:"time_limit"`
	Questions  []Question       `json:"questions"`
}

// AnswerSubmission is one answer, graded by the client.
type AnswerSubmission struct {
	QuestionID int  `json:"question_id"`
	Selected   int  `json:"selected"`
	IsCorrect  bool `json:"is_correct"`
}

// SubmissionResult is the response of POST /api/quiz/submit.
type SubmissionResult struct {
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Accuracy       float64 `json:"accuracy"`
	TimeTaken      int     `json:"time_taken"`
	Performance    string  `json:"performance"`
	AverageScore   float64 `json:"average_score"`
	AttemptCount   int64   `json:"attempt_count"`
}

// questionCount maps difficulty to quiz length.
func questionCount(difficulty model.Difficulty) int {
	switch difficulty {
	case model.Beginner:
		return 10
	case model.Intermediate:
		return 15
	default:
		return 20
	}
}

// BuildQuiz assembles a quiz for the topic. Question generation is delegated
// to the external generator when one is configured; every failure mode ends
// in the deterministic template set, so the quiz is never empty.
func (s *QuizService) BuildQuiz(ctx context.Context, topicID uint) (*Quiz, error) {
	detail, err := s.TopicRepo.FindDetail(topicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTopicNotFound
	}
	if err != nil {
		return nil, err
	}

	count := questionCount(detail.Difficulty)

	return &Quiz{
		TopicID:    topicID,
		TopicName:  detail.Name,
		Subject:    detail.SubjectName,
		Difficulty: detail.Difficulty,
		TimeLimit:  count * 60,
		Questions:  s.generateQuestions(ctx, detail.Name, detail.Difficulty, count),
	}, nil
}

func (s *QuizService) generateQuestions(ctx context.Context, topicName string, difficulty model.Difficulty, count int) []Question {
	if s.Generator == nil {
		return templateQuestions(topicName, count)
	}

	prompt := fmt.Sprintf(
		`Generate exactly %d multiple-choice questions about "%s" at %s level. `+
			`Respond with a raw JSON array only, no prose, where each element has this shape: `+
			`{"id": 1, "question": "...", "options": ["...", "...", "...", "..."], "correct_answer": 0}. `+
			`"options" must contain exactly 4 strings and "correct_answer" is the zero-based index of the right option.`,
		count, topicName, difficulty,
	)

	text, err := s.Generator.Generate(ctx, prompt)
	if errors.Is(err, ErrGenerationDisabled) {
		return templateQuestions(topicName, count)
	}
	if err != nil {
		logger.Log.Warn("question generation failed, using fallback",
			zap.String("topic", topicName), zap.Error(err))
		monitoring.GenerationFallbacks.WithLabelValues("quiz").Inc()
		return templateQuestions(topicName, count)
	}

	questions, err := parseQuestions(text, count)
	if err != nil {
		logger.Log.Warn("question generation returned unusable JSON, using fallback",
			zap.String("topic", topicName), zap.Error(err))
		monitoring.GenerationFallbacks.WithLabelValues("quiz").Inc()
		return templateQuestions(topicName, count)
	}

	return questions
}

func parseQuestions(text string, count int) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &questions); err != nil {
		return nil, err
	}

	if len(questions) != count {
		return nil, fmt.Errorf("expected %d questions, got %d", count, len(questions))
	}

	for i := range questions {
		q := &questions[i]
		if q.Question == "" || len(q.Options) != questionOptions {
			return nil, fmt.Errorf("question %d is malformed", i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= questionOptions {
			return nil, fmt.Errorf("question %d has out-of-range answer index %d", i+1, q.CorrectAnswer)
		}
		q.ID = i + 1
	}

	return questions, nil
}

// templateQuestions is the deterministic fallback: a fixed-shape question
// set derived from the topic name.
func templateQuestions(topicName string, count int) []Question {
	templates := []Question{
		{Question: fmt.Sprintf("What is the main purpose of %s?", topicName), Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 0},
		{Question: fmt.Sprintf("Key feature of %s is?", topicName), Options: []string{"X", "Y", "Z", "W"}, CorrectAnswer: 1},
		{Question: fmt.Sprintf("Which is true about %s?", topicName), Options: []string{"False", "True", "False", "False"}, CorrectAnswer: 1},
	}

	questions := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		q := templates[i%len(templates)]
		q.ID = i + 1
		questions = append(questions, q)
	}
	return questions
}

// Submit persists one immutable QuizResult row, then upserts the topic
// progress to completed with the just-computed score (last attempt wins).
func (s *QuizService) Submit(userID, topicID uint, answers []AnswerSubmission, timeTaken int) (*SubmissionResult, error) {
	total := len(answers)
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}

	// Defined as 0 for an empty answer set.
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}

	result := &model.QuizResult{
		UserID:         userID,
		TopicID:        topicID,
		Score:          score,
		TotalQuestions: total,
		TimeTaken:      timeTaken,
		Accuracy:       score,
		CompletedAt:    time.Now(),
	}
	if err := s.QuizRepo.Create(result); err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.UpsertScore(userID, topicID, score); err != nil {
		return nil, err
	}

	stats, err := s.QuizRepo.TopicStats(userID, topicID)
	if err != nil {
		return nil, err
	}

	return &SubmissionResult{
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Accuracy:       score,
		TimeTaken:      timeTaken,
		Performance:    PerformanceLabel(score),
		AverageScore:   stats.AvgScore,
		AttemptCount:   stats.AttemptCount,
	}, nil
}

// PerformanceLabel buckets a score into the coarse labels the dashboard shows.
func PerformanceLabel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	default:
		return "Needs Improvement"
	}
}
