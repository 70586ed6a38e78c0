package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaktech/transqiita/internal/core/domain"
)

func newTestTranslator(t *testing.T, handler http.HandlerFunc) *Translator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tr, err := New(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return tr
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestTranslator_Translate(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.Form.Get("key"))
		assert.Equal(t, "en", r.Form.Get("target"))
		assert.Equal(t, "text", r.Form.Get("format"))
		assert.Equal(t, "こんにちは", r.Form.Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hello &amp; bye","detectedSourceLanguage":"ja"}]}}`))
	})

	got, err := tr.Translate(context.Background(), "こんにちは", "en")

	require.NoError(t, err)
	assert.Equal(t, "Hello &amp; bye", got)
	assert.Equal(t, "google", tr.Name())
}

func TestTranslator_Translate_KeepsEntities(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		body, err := json.Marshal(map[string]any{
			"data": map[string]any{
				"translations": []map[string]string{{"translatedText": r.Form.Get("q")}},
			},
		})
		assert.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})

	text := "Write `&lt;div&gt;` or &amp; in Markdown"
	got, err := tr.Translate(context.Background(), text, "en")

	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestTranslator_DetectLanguage(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/detect"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"detections":[[` +
			`{"language":"en","confidence":0.2},{"language":"ja","confidence":0.9}]]}}`))
	})

	got, err := tr.DetectLanguage(context.Background(), "記事")

	require.NoError(t, err)
	assert.Equal(t, "ja", got)
}

func TestTranslator_DetectLanguage_Undetermined(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"detections":[[{"language":"und","confidence":0}]]}}`))
	})

	_, err := tr.DetectLanguage(context.Background(), "???")

	assert.Error(t, err)
}

func TestTranslator_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota"}}`, domain.ErrRateLimited},
		{"forbidden", http.StatusForbidden, `{"error":{"code":403,"message":"denied"}}`, domain.ErrAuthInvalid},
		{"bad key", http.StatusBadRequest,
			`{"error":{"code":400,"message":"API key not valid","errors":[{"reason":"keyInvalid"}]}}`, domain.ErrAuthInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTranslator(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := tr.Translate(context.Background(), "x", "en")

			assert.ErrorIs(t, err, tt.want)
		})
	}
}
