package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"learning_path_backend/internal/config"
)

// Generator produces free-form text from a prompt. Quiz and recommendation
// generation treat it as strictly best-effort: any error from Generate makes
// the caller use its deterministic fallback, never the HTTP client's problem.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrGenerationDisabled means no API key is configured. Callers fall back
// without logging or counting it as a failure.
var ErrGenerationDisabled = errors.New("generation disabled")

// SwappableGenerator lets the config watcher replace the underlying client
// at runtime without touching the services that hold it.
type SwappableGenerator struct {
	current atomic.Pointer[OpenAIGenerator]
}

func NewSwappableGenerator(cfg config.GenerationConfig) *SwappableGenerator {
	s := &SwappableGenerator{}
	s.Reload(cfg)
	return s
}

// Reload swaps in a client built from cfg. An empty API key disables
// generation until the next reload.
func (s *SwappableGenerator) Reload(cfg config.GenerationConfig) {
	if cfg.APIKey == "" {
		s.current.Store(nil)
		return
	}
	s.current.Store(NewOpenAIGenerator(cfg))
}

func (s *SwappableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g := s.current.Load()
	if g == nil {
		return "", ErrGenerationDisabled
	}
	return g.Generate(ctx, prompt)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIGenerator calls an OpenAI-compatible chat completions endpoint with
// a bounded timeout.
type OpenAIGenerator struct {
	cfg    config.GenerationConfig
	client *http.Client
}

func NewOpenAIGenerator(cfg config.GenerationConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a learning assistant for engineering students. Respond with exactly what is asked for, nothing else."},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("generation API error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("generation API returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

// stripCodeFence unwraps ```json ... ``` blocks models like to emit even
// when asked for raw JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
