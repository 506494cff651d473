package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newChatService(t *testing.T, handler http.HandlerFunc) *ChatService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChatService(srv.URL, "test-key", "gemini-1.5-flash", zap.NewNop())
}

func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestTranslate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest
	svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("안녕하세요"))
	})

	out, err := svc.Translate(context.Background(), "Korean", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "안녕하세요", out)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, 0.2, gotBody.GenerationConfig.Temperature)
	require.Len(t, gotBody.Contents, 1)
	assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "Hello")
	assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "Korean")
}

func TestTranslate_Validation(t *testing.T) {
	svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called on invalid input")
	})

	_, err := svc.Translate(context.Background(), "", "Hello")
	assert.ErrorIs(t, err, ErrLanguageRequired)
	_, err = svc.Translate(context.Background(), "Korean", "  ")
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestChat_GenerationConfig(t *testing.T) {
	var gotBody geminiRequest
	svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("네, 가능합니다."))
	})

	out, err := svc.Chat(context.Background(), "보증금 조정 가능한가요?")
	require.NoError(t, err)
	assert.Equal(t, "네, 가능합니다.", out)
	assert.Equal(t, 0.5, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 40, gotBody.GenerationConfig.TopK)
	assert.Equal(t, 0.95, gotBody.GenerationConfig.TopP)
	assert.Equal(t, 400, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestChat_MessageRequired(t *testing.T) {
	svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called on invalid input")
	})
	_, err := svc.Chat(context.Background(), "")
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestChat_UpstreamErrors(t *testing.T) {
	svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := svc.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrChatUpstream)
}

func TestChat_EmptyCandidates(t *testing.T) {
	svc := newChatService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	})
	_, err := svc.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrChatUpstream)
}
