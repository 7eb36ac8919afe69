package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/screenclash/screenclash/internal/config"
	visiondomain "github.com/screenclash/screenclash/internal/vision/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.VisionConfig{
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		Model:     "gpt-4o",
		MaxTokens: 1000,
	}, zap.NewNop())
}

func chatReply(content string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return raw
}

func TestExtractParsesPlainJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		assert.InDelta(t, 0.1, req.Temperature, 1e-9)
		assert.Equal(t, 1000, req.MaxTokens)

		w.Write(chatReply(`{"totalTime":"2h 53m","date":"Today","apps":[{"name":"Instagram","time":"1h 20m"}],"categories":[],"updatedAt":"Updated today at 15:04"}`))
	})

	extraction, err := client.Extract(context.Background(), visiondomain.ExtractRequest{
		ImageBase64: "aGVsbG8=",
		MimeType:    "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "2h 53m", extraction.TotalTime)
	assert.Equal(t, "Today", extraction.Date)
	require.Len(t, extraction.Apps, 1)
	assert.Equal(t, "Instagram", extraction.Apps[0].Name)
}

func TestExtractUnwrapsMarkdownFence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write(chatReply("```json\n{\"totalTime\":\"45m\",\"date\":\"Today\"}\n```"))
	})

	extraction, err := client.Extract(context.Background(), visiondomain.ExtractRequest{ImageBase64: "aGVsbG8="})
	require.NoError(t, err)
	assert.Equal(t, "45m", extraction.TotalTime)
}

func TestExtractRejectsMissingTotalTime(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write(chatReply(`{"date":"Today"}`))
	})

	_, err := client.Extract(context.Background(), visiondomain.ExtractRequest{ImageBase64: "aGVsbG8="})
	assert.ErrorIs(t, err, visiondomain.ErrExtractionFailed)
}

func TestExtractSurfacesBackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	})

	_, err := client.Extract(context.Background(), visiondomain.ExtractRequest{ImageBase64: "aGVsbG8="})
	require.Error(t, err)
	assert.ErrorIs(t, err, visiondomain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestExtractWithoutKeyOrImage(t *testing.T) {
	unconfigured := NewClient(config.VisionConfig{}, zap.NewNop())
	_, err := unconfigured.Extract(context.Background(), visiondomain.ExtractRequest{ImageBase64: "aGVsbG8="})
	assert.ErrorIs(t, err, visiondomain.ErrNotConfigured)

	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {})
	_, err = client.Extract(context.Background(), visiondomain.ExtractRequest{})
	assert.ErrorIs(t, err, visiondomain.ErrInvalidImage)
}
