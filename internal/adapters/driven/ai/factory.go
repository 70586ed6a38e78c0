// Package ai builds translation backends from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/speaktech/transqiita/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/speaktech/transqiita/internal/adapters/driven/llm/ollama"
	openaillm "github.com/speaktech/transqiita/internal/adapters/driven/llm/openai"
	"github.com/speaktech/transqiita/internal/adapters/driven/translator/google"
	llmtranslator "github.com/speaktech/transqiita/internal/adapters/driven/translator/llm"
	"github.com/speaktech/transqiita/internal/adapters/driven/translator/throttle"
	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 10 * time.Second

// CreateTranslator creates the translator named by settings, throttled to
// settings.RequestsPerSecond. prompts may be nil for LLM providers, in which
// case built-in prompts are used.
func CreateTranslator(
	ctx context.Context,
	settings *domain.TranslatorSettings,
	prompts driven.PromptStore,
) (driven.Translator, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no translator settings", domain.ErrInvalidInput)
	}
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: translator %q", domain.ErrUnsupportedType, settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: %s needs an API key. Run 'transqiita settings translator' to fix",
			domain.ErrTranslatorUnavailable, settings.Provider)
	}

	var tr driven.Translator
	if settings.Provider == domain.TranslatorGoogle {
		g, err := google.New(ctx, google.Config{APIKey: settings.APIKey, BaseURL: settings.BaseURL})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTranslatorUnavailable, err)
		}
		tr = g
	} else {
		svc, err := CreateLLMService(settings)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTranslatorUnavailable, err)
		}
		lt := llmtranslator.New(svc, settings.Provider.String())
		if prompts != nil {
			lt.SetPromptStore(prompts)
		}
		tr = lt
	}

	return throttle.Wrap(tr, settings.RequestsPerSecond), nil
}

// CreateLLMService creates the chat model for an LLM provider.
func CreateLLMService(settings *domain.TranslatorSettings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.TranslatorOllama:
		return ollamallm.New(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.TranslatorOpenAI:
		return openaillm.New(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.TranslatorAnthropic:
		return anthropicllm.New(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: %s is not an LLM provider", domain.ErrUnsupportedType, settings.Provider)
	}
}

// ValidateTranslatorConfig checks a configuration reaches its backend.
// LLM providers are pinged; Google runs one detection.
func ValidateTranslatorConfig(settings *domain.TranslatorSettings) error {
	if settings == nil || !settings.Provider.IsValid() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if settings.Provider.IsLLM() {
		svc, err := CreateLLMService(settings)
		if err != nil {
			return err
		}
		defer svc.Close()
		return svc.Ping(ctx)
	}

	tr, err := CreateTranslator(ctx, settings, nil)
	if err != nil {
		return err
	}
	_, err = tr.DetectLanguage(ctx, "hello")
	return err
}
