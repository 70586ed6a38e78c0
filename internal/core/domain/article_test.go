package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticle_TagNames(t *testing.T) {
	a := Article{Tags: []Tag{{Name: "Go"}, {Name: "Qiita", Versions: []string{"v2"}}, {Name: "API"}}}

	assert.Equal(t, []string{"Go", "Qiita", "API"}, a.TagNames())
	assert.Empty(t, Article{}.TagNames())
}

func TestArticle_References(t *testing.T) {
	tests := []struct {
		name string
		body string
		id   string
		want bool
	}{
		{"banner marker", "This article is an automatic translation of the article[abc123] below.", "abc123", true},
		{"id anywhere in body", "see abc123 for details", "abc123", true},
		{"missing", "unrelated text", "abc123", false},
		{"empty id never matches", "anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Article{Body: tt.body}.References(tt.id))
		})
	}
}

func TestBaseLanguageCode(t *testing.T) {
	tests := map[string]string{
		"en":    "en",
		"en-US": "en",
		"EN_gb": "en",
		" ja ":  "ja",
		"zh-CN": "zh",
		"":      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, BaseLanguageCode(in), "input %q", in)
	}
}

func TestClassifyLanguage(t *testing.T) {
	assert.Equal(t, LanguageTarget, ClassifyLanguage("en", "en"))
	assert.Equal(t, LanguageTarget, ClassifyLanguage("en-US", "en"))
	assert.Equal(t, LanguageSource, ClassifyLanguage("ja", "en"))
	assert.Equal(t, LanguageSource, ClassifyLanguage("", "en"))
}
