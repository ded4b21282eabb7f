package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"learning_path_backend/internal/repository"
	"learning_path_backend/pkg/logger"
	"learning_path_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	// Topics scoring below this are considered weak areas.
	weakScoreThreshold = 70
	// Both recommendation lists are capped at this many entries.
	recommendationCap = 5
)

type RecommendationService struct {
	ProgressRepo *repository.ProgressRepository
	ProfileRepo  *repository.ProfileRepository
	Generator    Generator
}

func NewRecommendationService(progressRepo *repository.ProgressRepository, profileRepo *repository.ProfileRepository, generator Generator) *RecommendationService {
	return &RecommendationService{
		ProgressRepo: progressRepo,
		ProfileRepo:  profileRepo,
		Generator:    generator,
	}
}

// Recommendation is one human-readable suggestion.
type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// Recommendations is the response of GET /api/recommendations.
type Recommendations struct {
	WeakAreas       []repository.WeakArea  `json:"weak_areas"`
	NextTopics      []repository.NextTopic `json:"next_topics"`
	Recommendations []Recommendation       `json:"recommendations"`
}

// Recommend computes weak areas and next topics for the user's current
// semester and produces the recommendation list, delegating to the external
// generator when available and falling back deterministically otherwise.
func (s *RecommendationService) Recommend(ctx context.Context, userID uint) (*Recommendations, error) {
	semester := 1
	if profile, err := s.ProfileRepo.FindByUserID(userID); err == nil {
		semester = profile.CurrentSemester
	}

	weakAreas, err := s.ProgressRepo.WeakAreas(userID, weakScoreThreshold, recommendationCap)
	if err != nil {
		return nil, err
	}

	nextTopics, err := s.ProgressRepo.NextTopics(userID, semester, recommendationCap)
	if err != nil {
		return nil, err
	}

	return &Recommendations{
		WeakAreas:       weakAreas,
		NextTopics:      nextTopics,
		Recommendations: s.generateRecommendations(ctx, weakAreas, nextTopics),
	}, nil
}

func (s *RecommendationService) generateRecommendations(ctx context.Context, weakAreas []repository.WeakArea, nextTopics []repository.NextTopic) []Recommendation {
	if s.Generator == nil {
		return fallbackRecommendations(weakAreas, nextTopics)
	}

	text, err := s.Generator.Generate(ctx, recommendationPrompt(weakAreas, nextTopics))
	if errors.Is(err, ErrGenerationDisabled) {
		return fallbackRecommendations(weakAreas, nextTopics)
	}
	if err != nil {
		logger.Log.Warn("recommendation generation failed, using fallback", zap.Error(err))
		monitoring.GenerationFallbacks.WithLabelValues("recommendation").Inc()
		return fallbackRecommendations(weakAreas, nextTopics)
	}

	recs, err := parseRecommendations(text)
	if err != nil {
		logger.Log.Warn("recommendation generation returned unusable JSON, using fallback", zap.Error(err))
		monitoring.GenerationFallbacks.WithLabelValues("recommendation").Inc()
		return fallbackRecommendations(weakAreas, nextTopics)
	}

	return recs
}

func recommendationPrompt(weakAreas []repository.WeakArea, nextTopics []repository.NextTopic) string {
	var b strings.Builder
	b.WriteString("A student has the following weak topics (score below 70):\n")
	if len(weakAreas) == 0 {
		b.WriteString("- none\n")
	}
	for _, w := range weakAreas {
		fmt.Fprintf(&b, "- %s (%s), score %.0f\n", w.Name, w.SubjectName, w.Score)
	}
	b.WriteString("Upcoming topics in curriculum order:\n")
	if len(nextTopics) == 0 {
		b.WriteString("- none\n")
	}
	for _, n := range nextTopics {
		fmt.Fprintf(&b, "- %s (%s)\n", n.Name, n.SubjectName)
	}
	b.WriteString(`Write 2-3 short study recommendations. Respond with a raw JSON array only, no prose. ` +
		`Each element: {"type": "revision|progress|practice", "priority": "high|medium|low", "message": "..."}.`)
	return b.String()
}

func parseRecommendations(text string) ([]Recommendation, error) {
	var recs []Recommendation
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &recs); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("empty recommendation list")
	}
	for i, r := range recs {
		if r.Type == "" || r.Priority == "" || r.Message == "" {
			return nil, fmt.Errorf("recommendation %d is missing fields", i+1)
		}
	}
	return recs, nil
}

// fallbackRecommendations is the deterministic generation path: a
// high-priority revision nudge when weak areas exist, a continue-with
// pointer at the first upcoming topic, and a constant practice reminder.
func fallbackRecommendations(weakAreas []repository.WeakArea, nextTopics []repository.NextTopic) []Recommendation {
	var recs []Recommendation

	if len(weakAreas) > 0 {
		recs = append(recs, Recommendation{
			Type:     "revision",
			Priority: "high",
			Message:  fmt.Sprintf("Focus on revising %d weak topics to strengthen fundamentals", len(weakAreas)),
		})
	}

	if len(nextTopics) > 0 {
		recs = append(recs, Recommendation{
			Type:     "progress",
			Priority: "medium",
			Message:  fmt.Sprintf("Continue learning with %s in %s", nextTopics[0].Name, nextTopics[0].SubjectName),
		})
	}

	recs = append(recs, Recommendation{
		Type:     "practice",
		Priority: "low",
		Message:  "Take more quizzes to improve retention and identify knowledge gaps",
	})

	return recs
}
