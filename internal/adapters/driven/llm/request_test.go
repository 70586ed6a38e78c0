package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abcd", 1},
		{"hello world", 3},
		{"こんにちは", 5},
		{"Go言語", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateTokens(tt.text), tt.text)
	}
}

func TestMaxTokens(t *testing.T) {
	msgs := func(user string) []driven.ChatMessage {
		return []driven.ChatMessage{
			{Role: RoleSystem, Content: "a long system prompt that is not counted towards the reply"},
			{Role: RoleUser, Content: user},
		}
	}
	long := strings.Repeat("字", 500)

	assert.Equal(t, minOutputTokens, MaxTokens(msgs("短い"), driven.ChatOptions{}, 0))
	assert.Equal(t, 1000, MaxTokens(msgs(long), driven.ChatOptions{}, 0))
	assert.Equal(t, 600, MaxTokens(msgs(long), driven.ChatOptions{}, 600))
	assert.Equal(t, 10, MaxTokens(msgs(long), driven.ChatOptions{MaxTokens: 10}, 600))
}

func TestTemperature(t *testing.T) {
	assert.Equal(t, 0.0, Temperature(driven.ChatOptions{}))
	v := 0.7
	assert.Equal(t, 0.7, Temperature(driven.ChatOptions{Temperature: &v}))
}

func TestSplitSystem(t *testing.T) {
	system, rest := SplitSystem([]driven.ChatMessage{
		{Role: RoleSystem, Content: "one"},
		{Role: RoleUser, Content: "text"},
		{Role: RoleSystem, Content: "two"},
	})

	assert.Equal(t, "one\n\ntwo", system)
	assert.Equal(t, []driven.ChatMessage{{Role: RoleUser, Content: "text"}}, rest)
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if r.Header.Get("X-Key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"text":"ok"}`))
	}))
	defer srv.Close()

	var out struct{ Text string }
	header := http.Header{}
	header.Set("X-Key", "k")

	require.NoError(t, PostJSON(context.Background(), srv.Client(), "test", srv.URL, header, map[string]string{}, &out))
	assert.Equal(t, "ok", out.Text)

	err := PostJSON(context.Background(), srv.Client(), "test", srv.URL, nil, map[string]string{}, &out)
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)
}

func TestGetOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok" {
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	assert.NoError(t, GetOK(context.Background(), srv.Client(), "test", srv.URL+"/ok", nil))
	assert.ErrorIs(t, GetOK(context.Background(), srv.Client(), "test", srv.URL+"/busy", nil), domain.ErrRateLimited)
}
