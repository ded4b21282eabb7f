package service

import (
	"context"
	"fmt"
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecommendationService(db *gorm.DB, gen Generator) *RecommendationService {
	return NewRecommendationService(
		repository.NewProgressRepository(db),
		repository.NewProfileRepository(db),
		gen,
	)
}

func seedCurriculumProgress(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()

	require.NoError(t, db.Create(&model.StudentProfile{UserID: userID, CurrentSemester: 1}).Error)

	subject := model.Subject{Name: "Physics", Semester: 1}
	require.NoError(t, db.Create(&subject).Error)

	weak := model.Topic{SubjectID: subject.ID, Name: "Optics", Difficulty: model.Beginner, OrderIndex: 1}
	strong := model.Topic{SubjectID: subject.ID, Name: "Mechanics", Difficulty: model.Beginner, OrderIndex: 2}
	unseen := model.Topic{SubjectID: subject.ID, Name: "Waves", Difficulty: model.Intermediate, OrderIndex: 3}
	require.NoError(t, db.Create(&weak).Error)
	require.NoError(t, db.Create(&strong).Error)
	require.NoError(t, db.Create(&unseen).Error)

	require.NoError(t, db.Create(&model.UserProgress{
		UserID: userID, TopicID: weak.ID, CompletionStatus: model.Completed, Score: 50,
	}).Error)
	require.NoError(t, db.Create(&model.UserProgress{
		UserID: userID, TopicID: strong.ID, CompletionStatus: model.Completed, Score: 90,
	}).Error)
}

func TestRecommend(t *testing.T) {
	db := newTestDB(t)
	seedCurriculumProgress(t, db, 1)
	svc := newRecommendationService(db, nil)

	recs, err := svc.Recommend(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, recs.WeakAreas, 1)
	assert.Equal(t, "Optics", recs.WeakAreas[0].Name)
	assert.Equal(t, "Physics", recs.WeakAreas[0].SubjectName)

	// Completed topics never appear as next topics, weak or not.
	require.Len(t, recs.NextTopics, 1)
	assert.Equal(t, "Waves", recs.NextTopics[0].Name)

	require.Len(t, recs.Recommendations, 3)
	assert.Equal(t, "revision", recs.Recommendations[0].Type)
	assert.Equal(t, "high", recs.Recommendations[0].Priority)
	assert.Equal(t, "progress", recs.Recommendations[1].Type)
	assert.Contains(t, recs.Recommendations[1].Message, "Waves")
	assert.Contains(t, recs.Recommendations[1].Message, "Physics")
	assert.Equal(t, "practice", recs.Recommendations[2].Type)
	assert.Equal(t, "low", recs.Recommendations[2].Priority)
}

func TestRecommend_NoProfileDefaultsToSemesterOne(t *testing.T) {
	db := newTestDB(t)
	subject := model.Subject{Name: "Chemistry", Semester: 1}
	require.NoError(t, db.Create(&subject).Error)
	require.NoError(t, db.Create(&model.Topic{SubjectID: subject.ID, Name: "Atoms", OrderIndex: 1}).Error)

	svc := newRecommendationService(db, nil)
	recs, err := svc.Recommend(context.Background(), 42)
	require.NoError(t, err)

	assert.Empty(t, recs.WeakAreas)
	require.Len(t, recs.NextTopics, 1)
	assert.Equal(t, "Atoms", recs.NextTopics[0].Name)
}

func TestFallbackRecommendations_Empty(t *testing.T) {
	recs := fallbackRecommendations(nil, nil)

	// With nothing to study, only the constant practice nudge remains.
	require.Len(t, recs, 1)
	assert.Equal(t, "practice", recs[0].Type)
	assert.Equal(t, "low", recs[0].Priority)
}

func TestFallbackRecommendations_WeakAreasOnly(t *testing.T) {
	weak := []repository.WeakArea{
		{Name: "Optics", SubjectName: "Physics", Score: 40},
		{Name: "Waves", SubjectName: "Physics", Score: 55},
	}

	recs := fallbackRecommendations(weak, nil)
	require.Len(t, recs, 2)
	assert.Equal(t, "revision", recs[0].Type)
	assert.Contains(t, recs[0].Message, "2 weak topics")
}

func TestGenerateRecommendations_UsesGeneratedList(t *testing.T) {
	db := newTestDB(t)
	seedCurriculumProgress(t, db, 1)
	svc := newRecommendationService(db, &stubGenerator{
		text: "```json\n" + `[{"type": "revision", "priority": "high", "message": "Revise Optics"}]` + "\n```",
	})

	recs, err := svc.Recommend(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs.Recommendations, 1)
	assert.Equal(t, "Revise Optics", recs.Recommendations[0].Message)
}

func TestGenerateRecommendations_FallsBackOnError(t *testing.T) {
	db := newTestDB(t)
	seedCurriculumProgress(t, db, 1)
	svc := newRecommendationService(db, &stubGenerator{err: fmt.Errorf("timeout")})

	recs, err := svc.Recommend(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs.Recommendations, 3)
	assert.Equal(t, "revision", recs.Recommendations[0].Type)
}

func TestParseRecommendations_Rejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "I suggest you study more."},
		{"empty array", "[]"},
		{"missing message", `[{"type": "revision", "priority": "high", "message": ""}]`},
		{"missing type", `[{"type": "", "priority": "high", "message": "do things"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRecommendations(tt.text)
			assert.Error(t, err)
		})
	}
}
