package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/adapters/driven/llm"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

func TestService_Chat_LiftsSystemPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))

		var req messagesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "translate to en", req.System)
		assert.Equal(t, 0.0, req.Temperature)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
		}

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Hel"},{"type":"text","text":"lo"}],"stop_reason":"end_turn"}`))
	}))
	defer srv.Close()

	svc, err := New(Config{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	got, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "translate to en"},
		{Role: "user", Content: "こんにちは"},
	}, driven.ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestService_Chat_MaxTokensFollowsInput(t *testing.T) {
	var budgets []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		budgets = append(budgets, req.MaxTokens)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer srv.Close()

	svc, err := New(Config{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	for _, text := range []string{"短い", strings.Repeat("長", 1000), strings.Repeat("長", 10000)} {
		_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: text}}, driven.ChatOptions{})
		require.NoError(t, err)
	}

	assert.Equal(t, []int{256, 2000, MaxOutputTokens}, budgets)
}

func TestService_Chat_Truncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Hel"}],"stop_reason":"max_tokens"}`))
	}))
	defer srv.Close()

	svc, err := New(Config{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "x"}}, driven.ChatOptions{})

	assert.ErrorIs(t, err, llm.ErrTruncated)
}

func TestService_Chat_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	svc, err := New(Config{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), nil, driven.ChatOptions{})

	assert.Error(t, err)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
