package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedTopics(t *testing.T, db *gorm.DB, semester int, names ...string) []model.Topic {
	t.Helper()

	subject := model.Subject{Name: fmt.Sprintf("Subject-S%d", semester), Semester: semester}
	require.NoError(t, db.Create(&subject).Error)

	topics := make([]model.Topic, 0, len(names))
	for i, name := range names {
		topic := model.Topic{SubjectID: subject.ID, Name: name, Difficulty: model.Beginner, OrderIndex: i + 1}
		require.NoError(t, db.Create(&topic).Error)
		topics = append(topics, topic)
	}
	return topics
}

func TestUpsertStatus_CreatesThenAccumulatesTime(t *testing.T) {
	db := newTestDB(t)
	topics := seedTopics(t, db, 1, "Limits")
	repo := NewProgressRepository(db)

	require.NoError(t, repo.UpsertStatus(1, topics[0].ID, model.InProgress, 10))
	require.NoError(t, repo.UpsertStatus(1, topics[0].ID, model.Completed, 5))

	var rows []model.UserProgress
	require.NoError(t, db.Where("user_id = ?", 1).Find(&rows).Error)
	require.Len(t, rows, 1)

	// Time accumulates across sessions, status reflects the latest update.
	assert.Equal(t, 15, rows[0].TimeSpent)
	assert.Equal(t, model.Completed, rows[0].CompletionStatus)
	assert.False(t, rows[0].LastAccessed.IsZero())
}

func TestUpsertScore_OverwritesScoreKeepsTime(t *testing.T) {
	db := newTestDB(t)
	topics := seedTopics(t, db, 1, "Limits")
	repo := NewProgressRepository(db)

	require.NoError(t, repo.UpsertStatus(1, topics[0].ID, model.InProgress, 30))
	require.NoError(t, repo.UpsertScore(1, topics[0].ID, 85))
	require.NoError(t, repo.UpsertScore(1, topics[0].ID, 40))

	progress, err := repo.Find(1, topics[0].ID)
	require.NoError(t, err)

	assert.InDelta(t, 40.0, progress.Score, 0.001)
	assert.Equal(t, model.Completed, progress.CompletionStatus)
	assert.Equal(t, 30, progress.TimeSpent)
}

func TestUpsertScore_CreatesRowWhenMissing(t *testing.T) {
	db := newTestDB(t)
	topics := seedTopics(t, db, 1, "Limits")
	repo := NewProgressRepository(db)

	require.NoError(t, repo.UpsertScore(7, topics[0].ID, 60))

	progress, err := repo.Find(7, topics[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.Completed, progress.CompletionStatus)
	assert.InDelta(t, 60.0, progress.Score, 0.001)
}

func TestWeakAreas_OrderedWeakestFirst(t *testing.T) {
	db := newTestDB(t)
	topics := seedTopics(t, db, 1, "Limits", "Derivatives", "Integrals")
	repo := NewProgressRepository(db)

	require.NoError(t, repo.UpsertScore(1, topics[0].ID, 65))
	require.NoError(t, repo.UpsertScore(1, topics[1].ID, 30))
	require.NoError(t, repo.UpsertScore(1, topics[2].ID, 95))

	areas, err := repo.WeakAreas(1, 70, 5)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, "Derivatives", areas[0].Name)
	assert.InDelta(t, 30.0, areas[0].Score, 0.001)
	assert.Equal(t, "Limits", areas[1].Name)
}

func TestWeakAreas_RespectsLimitAndUser(t *testing.T) {
	db := newTestDB(t)
	topics := seedTopics(t, db, 1, "A", "B", "C")
	repo := NewProgressRepository(db)

	for _, topic := range topics {
		require.NoError(t, repo.UpsertScore(1, topic.ID, 10))
	}
	require.NoError(t, repo.UpsertScore(2, topics[0].ID, 20))

	areas, err := repo.WeakAreas(1, 70, 2)
	require.NoError(t, err)
	assert.Len(t, areas, 2)

	other, err := repo.WeakAreas(2, 70, 5)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestNextTopics_SkipsCompletedAndOtherSemesters(t *testing.T) {
	db := newTestDB(t)
	sem1 := seedTopics(t, db, 1, "Limits", "Derivatives")
	seedTopics(t, db, 2, "Vectors")
	repo := NewProgressRepository(db)

	require.NoError(t, repo.UpsertScore(1, sem1[0].ID, 90))

	topics, err := repo.NextTopics(1, 1, 5)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Derivatives", topics[0].Name)
	assert.Equal(t, 1, topics[0].Semester)
}

func TestNextTopics_IncludesInProgress(t *testing.T) {
	db := newTestDB(t)
	sem1 := seedTopics(t, db, 1, "Limits", "Derivatives")
	repo := NewProgressRepository(db)

	require.NoError(t, repo.UpsertStatus(1, sem1[0].ID, model.InProgress, 10))

	topics, err := repo.NextTopics(1, 1, 5)
	require.NoError(t, err)
	require.Len(t, topics, 2)

	// Curriculum order, not progress order.
	assert.Equal(t, "Limits", topics[0].Name)
	assert.Equal(t, "Derivatives", topics[1].Name)
}
