package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"learning_path_backend/internal/config"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"
	"learning_path_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// stubGenerator returns a canned response or error.
type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func seedTopic(t *testing.T, db *gorm.DB, difficulty model.Difficulty) *model.Topic {
	t.Helper()

	subject := model.Subject{Name: "Mathematics-1", Semester: 1}
	require.NoError(t, db.Create(&subject).Error)

	topic := model.Topic{SubjectID: subject.ID, Name: "Calculus", Difficulty: difficulty, OrderIndex: 1}
	require.NoError(t, db.Create(&topic).Error)
	return &topic
}

func newQuizService(db *gorm.DB, gen Generator) *QuizService {
	return NewQuizService(
		repository.NewTopicRepository(db),
		repository.NewQuizResultRepository(db),
		repository.NewProgressRepository(db),
		gen,
	)
}

func TestQuestionCount(t *testing.T) {
	assert.Equal(t, 10, questionCount(model.Beginner))
	assert.Equal(t, 15, questionCount(model.Intermediate))
	assert.Equal(t, 20, questionCount(model.Advanced))
	assert.Equal(t, 20, questionCount(model.Difficulty("unknown")))
}

func TestPerformanceLabel(t *testing.T) {
	assert.Equal(t, "Excellent", PerformanceLabel(100))
	assert.Equal(t, "Excellent", PerformanceLabel(80))
	assert.Equal(t, "Good", PerformanceLabel(79.9))
	assert.Equal(t, "Good", PerformanceLabel(60))
	assert.Equal(t, "Needs Improvement", PerformanceLabel(59.9))
	assert.Equal(t, "Needs Improvement", PerformanceLabel(0))
}

func TestParseQuestions(t *testing.T) {
	valid := "```json\n" + `[
		{"id": 9, "question": "Q1?", "options": ["a", "b", "c", "d"], "correct_answer": 0},
		{"id": 9, "question": "Q2?", "options": ["a", "b", "c", "d"], "correct_answer": 3}
	]` + "\n```"

	questions, err := parseQuestions(valid, 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	// IDs are reassigned sequentially regardless of what the model sent.
	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, 2, questions[1].ID)
	assert.Equal(t, 3, questions[1].CorrectAnswer)
}

func TestParseQuestions_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
	}{
		{"not json", "sure, here are your questions!", 1},
		{"wrong count", `[{"question": "Q?", "options": ["a", "b", "c", "d"], "correct_answer": 0}]`, 2},
		{"too few options", `[{"question": "Q?", "options": ["a", "b"], "correct_answer": 0}]`, 1},
		{"empty question", `[{"question": "", "options": ["a", "b", "c", "d"], "correct_answer": 0}]`, 1},
		{"answer out of range", `[{"question": "Q?", "options": ["a", "b", "c", "d"], "correct_answer": 4}]`, 1},
		{"negative answer", `[{"question": "Q?", "options": ["a", "b", "c", "d"], "correct_answer": -1}]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseQuestions(tt.text, tt.count)
			assert.Error(t, err)
		})
	}
}

func TestTemplateQuestions(t *testing.T) {
	questions := templateQuestions("Thermodynamics", 10)
	require.Len(t, questions, 10)

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Question, "Thermodynamics")
	}
	// Templates cycle, so question 1 and 4 share their text.
	assert.Equal(t, questions[0].Question, questions[3].Question)
}

func TestBuildQuiz_NoGenerator(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Beginner)
	svc := newQuizService(db, nil)

	quiz, err := svc.BuildQuiz(context.Background(), topic.ID)
	require.NoError(t, err)

	assert.Equal(t, topic.ID, quiz.TopicID)
	assert.Equal(t, "Calculus", quiz.TopicName)
	assert.Equal(t, "Mathematics-1", quiz.Subject)
	assert.Equal(t, 600, quiz.TimeLimit)
	assert.Len(t, quiz.Questions, 10)
}

func TestBuildQuiz_AdvancedLength(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Advanced)
	svc := newQuizService(db, nil)

	quiz, err := svc.BuildQuiz(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 20)
	assert.Equal(t, 1200, quiz.TimeLimit)
}

func TestBuildQuiz_TopicNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db, nil)

	_, err := svc.BuildQuiz(context.Background(), 9999)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
}

func TestBuildQuiz_GeneratorErrorFallsBack(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Beginner)
	svc := newQuizService(db, &stubGenerator{err: fmt.Errorf("connection refused")})

	quiz, err := svc.BuildQuiz(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 10)
}

func TestBuildQuiz_DisabledGeneratorFallsBack(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Beginner)
	svc := newQuizService(db, NewSwappableGenerator(config.GenerationConfig{}))

	quiz, err := svc.BuildQuiz(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 10)
}

func TestBuildQuiz_MalformedGenerationFallsBack(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Beginner)
	svc := newQuizService(db, &stubGenerator{text: "here you go: [broken"})

	quiz, err := svc.BuildQuiz(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 10)
}

func TestBuildQuiz_UsesGeneratedQuestions(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Beginner)

	generated := `[`
	for i := 0; i < 10; i++ {
		if i > 0 {
			generated += ","
		}
		generated += fmt.Sprintf(`{"question": "Generated %d?", "options": ["a", "b", "c", "d"], "correct_answer": 2}`, i+1)
	}
	generated += `]`
	svc := newQuizService(db, &stubGenerator{text: generated})

	quiz, err := svc.BuildQuiz(context.Background(), topic.ID)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 10)
	assert.Equal(t, "Generated 1?", quiz.Questions[0].Question)
	assert.Equal(t, 2, quiz.Questions[0].CorrectAnswer)
}

func TestSubmit(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Beginner)
	svc := newQuizService(db, nil)

	answers := []AnswerSubmission{
		{QuestionID: 1, Selected: 0, IsCorrect: true},
		{QuestionID: 2, Selected: 1, IsCorrect: true},
		{QuestionID: 3, Selected: 2, IsCorrect: true},
		{QuestionID: 4, Selected: 3, IsCorrect: true},
		{QuestionID: 5, Selected: 0, IsCorrect: false},
	}

	result, err := svc.Submit(1, topic.ID, answers, 120)
	require.NoError(t, err)

	assert.InDelta(t, 80.0, result.Score, 0.001)
	assert.Equal(t, 4, result.CorrectAnswers)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.Equal(t, 120, result.TimeTaken)
	assert.Equal(t, "Excellent", result.Performance)
	assert.Equal(t, int64(1), result.AttemptCount)

	// Progress is marked completed with the quiz score.
	var progress model.UserProgress
	require.NoError(t, db.Where("user_id = ? AND topic_id = ?", 1, topic.ID).First(&progress).Error)
	assert.Equal(t, model.Completed, progress.CompletionStatus)
	assert.InDelta(t, 80.0, progress.Score, 0.001)
}

func TestSubmit_LastAttemptWins(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Beginner)
	svc := newQuizService(db, nil)

	_, err := svc.Submit(1, topic.ID, []AnswerSubmission{
		{QuestionID: 1, IsCorrect: true},
		{QuestionID: 2, IsCorrect: true},
	}, 60)
	require.NoError(t, err)

	result, err := svc.Submit(1, topic.ID, []AnswerSubmission{
		{QuestionID: 1, IsCorrect: true},
		{QuestionID: 2, IsCorrect: false},
	}, 60)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, result.Score, 0.001)
	assert.Equal(t, int64(2), result.AttemptCount)
	assert.InDelta(t, 75.0, result.AverageScore, 0.001)

	// The stored progress score is the latest attempt, not the best one.
	var progress model.UserProgress
	require.NoError(t, db.Where("user_id = ? AND topic_id = ?", 1, topic.ID).First(&progress).Error)
	assert.InDelta(t, 50.0, progress.Score, 0.001)

	// Both attempts remain in the result log.
	var count int64
	require.NoError(t, db.Model(&model.QuizResult{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSubmit_EmptyAnswers(t *testing.T) {
	db := newTestDB(t)
	topic := seedTopic(t, db, model.Beginner)
	svc := newQuizService(db, nil)

	result, err := svc.Submit(1, topic.ID, nil, 0)
	require.NoError(t, err)

	assert.Zero(t, result.Score)
	assert.Zero(t, result.TotalQuestions)
	assert.Equal(t, "Needs Improvement", result.Performance)
}
