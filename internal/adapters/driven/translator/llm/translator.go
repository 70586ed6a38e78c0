// Package llm adapts a chat model into a driven.Translator.
package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Ensure Translator implements the interfaces.
var (
	_ driven.Translator       = (*Translator)(nil)
	_ driven.PromptStoreAware = (*Translator)(nil)
)

// Fallback prompts used when no PromptStore is configured.
const (
	defaultTranslatePrompt = `Translate the user's text into the language with ISO 639-1 code "%s".
Output only the translation. Keep Markdown syntax, inline code and URLs unchanged.`

	defaultDetectPrompt = `Identify the language of the following text.
Answer with the ISO 639-1 code only.

Text:
%s`
)

// detectSampleRunes bounds how much text is sent for language detection.
const detectSampleRunes = 500

// Translator translates through an LLM.
type Translator struct {
	llm         driven.LLMService
	provider    string
	promptStore driven.PromptStore
}

// New creates an LLM translator. provider names the backend, e.g. "openai".
func New(svc driven.LLMService, provider string) *Translator {
	return &Translator{llm: svc, provider: provider}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (t *Translator) SetPromptStore(store driven.PromptStore) {
	t.promptStore = store
}

// Name returns "provider/model".
func (t *Translator) Name() string {
	return t.provider + "/" + t.llm.ModelName()
}

// Translate renders text in the target language.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	system := fmt.Sprintf(t.loadPrompt(driven.PromptTranslateSystem, defaultTranslatePrompt), targetLanguage)

	out, err := t.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: text},
	}, driven.ChatOptions{})
	if err != nil {
		return "", fmt.Errorf("%s translate: %w", t.provider, err)
	}
	return strings.TrimSpace(out), nil
}

// DetectLanguage asks the model for the ISO code of text.
func (t *Translator) DetectLanguage(ctx context.Context, text string) (string, error) {
	sample := []rune(text)
	if len(sample) > detectSampleRunes {
		sample = sample[:detectSampleRunes]
	}
	prompt := fmt.Sprintf(t.loadPrompt(driven.PromptDetectLanguage, defaultDetectPrompt), string(sample))

	out, err := t.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: prompt},
	}, driven.ChatOptions{MaxTokens: 10})
	if err != nil {
		return "", fmt.Errorf("%s detect: %w", t.provider, err)
	}

	code := ParseLanguageCode(out)
	if code == "" {
		return "", fmt.Errorf("%s detect: no language code in reply %q", t.provider, out)
	}
	return code, nil
}

// ParseLanguageCode extracts a code like "ja" or "pt-BR" from a model reply
// that may carry quotes, punctuation or a trailing explanation.
func ParseLanguageCode(reply string) string {
	for _, field := range strings.Fields(reply) {
		field = strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && r != '-' && r != '_'
		})
		if isCode(field) {
			return strings.ToLower(strings.ReplaceAll(field, "_", "-"))
		}
	}
	return ""
}

func isCode(s string) bool {
	base, _, _ := strings.Cut(strings.ReplaceAll(s, "_", "-"), "-")
	if len(base) < 2 || len(base) > 3 {
		return false
	}
	for _, r := range base {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func (t *Translator) loadPrompt(name, fallback string) string {
	if t.promptStore == nil {
		return fallback
	}
	prompt, err := t.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
