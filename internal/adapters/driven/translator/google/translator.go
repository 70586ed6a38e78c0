// Package google provides a driven.Translator backed by the Cloud
// Translation v2 API.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Ensure Translator implements the interface.
var _ driven.Translator = (*Translator)(nil)

// Name is the backend name reported to history and logs.
const Name = "google"

// Config holds configuration for the Google translator.
type Config struct {
	// APIKey is the Cloud Translation API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Mostly for tests.
	BaseURL string
}

// Translator calls Cloud Translation v2.
type Translator struct {
	svc *translate.Service
}

// New creates a Google translator.
func New(ctx context.Context, cfg Config) (*Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: google translate API key", domain.ErrAuthRequired)
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translate service: %w", err)
	}
	return &Translator{svc: svc}, nil
}

// Name returns "google".
func (t *Translator) Name() string {
	return Name
}

// Translate renders text in the target language. The text format keeps
// Markdown punctuation from being HTML-escaped.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	resp, err := t.svc.Translations.List([]string{text}, targetLanguage).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Translations) == 0 {
		return "", errors.New("google: empty translation response")
	}
	return resp.Translations[0].TranslatedText, nil
}

// DetectLanguage returns the most confident detection for text.
func (t *Translator) DetectLanguage(ctx context.Context, text string) (string, error) {
	resp, err := t.svc.Detections.List([]string{text}).Context(ctx).Do()
	if err != nil {
		return "", classify(err)
	}

	var best *translate.DetectionsResourceItem
	for _, group := range resp.Detections {
		for _, d := range group {
			if d != nil && (best == nil || d.Confidence > best.Confidence) {
				best = d
			}
		}
	}
	if best == nil || best.Language == "" || best.Language == "und" {
		return "", errors.New("google: language could not be detected")
	}
	return best.Language, nil
}

// classify maps API failures onto domain sentinels.
func classify(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("google: %w", err)
	}
	switch gerr.Code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: google: %w", domain.ErrRateLimited, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: google: %w", domain.ErrAuthInvalid, err)
	case http.StatusBadRequest:
		for _, item := range gerr.Errors {
			if item.Reason == "keyInvalid" {
				return fmt.Errorf("%w: google: %w", domain.ErrAuthInvalid, err)
			}
		}
	}
	return fmt.Errorf("google: %w", err)
}
