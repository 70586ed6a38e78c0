// Package throttle rate-limits calls to a translation backend.
package throttle

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Ensure Translator implements the interface.
var _ driven.Translator = (*Translator)(nil)

// Translator wraps another translator with a token bucket.
type Translator struct {
	next    driven.Translator
	limiter *rate.Limiter
}

// Wrap limits next to rps calls per second with a burst of one.
// A non-positive rps returns next unchanged.
func Wrap(next driven.Translator, rps float64) driven.Translator {
	if rps <= 0 {
		return next
	}
	return &Translator{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Name returns the wrapped backend's name.
func (t *Translator) Name() string {
	return t.next.Name()
}

// DetectLanguage waits for a token, then delegates.
func (t *Translator) DetectLanguage(ctx context.Context, text string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.next.DetectLanguage(ctx, text)
}

// Translate waits for a token, then delegates.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.next.Translate(ctx, text, targetLanguage)
}
