package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learning_path_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(baseURL string) *OpenAIGenerator {
	return NewOpenAIGenerator(config.GenerationConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		TimeoutSeconds: 2,
	})
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "say hi", req.Messages[1].Content)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hi"}},
			},
		})
	}))
	defer server.Close()

	text, err := newTestGenerator(server.URL).Generate(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestOpenAIGenerator_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "say hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIGenerator_Generate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), "say hi")
	assert.Error(t, err)
}

func TestOpenAIGenerator_Generate_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestGenerator(server.URL).Generate(ctx, "say hi")
	assert.Error(t, err)
}

func TestSwappableGenerator_Reload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hi"}},
			},
		})
	}))
	defer server.Close()

	// No API key means disabled, not an HTTP failure.
	g := NewSwappableGenerator(config.GenerationConfig{BaseURL: server.URL})
	_, err := g.Generate(context.Background(), "say hi")
	assert.ErrorIs(t, err, ErrGenerationDisabled)

	g.Reload(config.GenerationConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		TimeoutSeconds: 2,
	})
	text, err := g.Generate(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", text)

	// Clearing the key disables it again.
	g.Reload(config.GenerationConfig{BaseURL: server.URL})
	_, err = g.Generate(context.Background(), "say hi")
	assert.ErrorIs(t, err, ErrGenerationDisabled)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `[{"id": 1}]`, `[{"id": 1}]`},
		{"json fence", "```json\n[{\"id\": 1}]\n```", `[{"id": 1}]`},
		{"bare fence", "```\n[1, 2]\n```", `[1, 2]`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n  ", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}
