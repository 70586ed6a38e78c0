package driving

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// TranslationService translates articles while preserving Markdown structure.
type TranslationService interface {
	// TranslateTitle translates a title in a single backend call.
	TranslateTitle(ctx context.Context, article domain.Article) (string, error)

	// TranslateBody translates the prose of a body, keeps code verbatim,
	// prepends the back-reference banner and repairs whitespace.
	TranslateBody(ctx context.Context, article domain.Article) (string, error)

	// TargetLanguage returns the language code translations are produced in.
	TargetLanguage() string

	// TranslatorName identifies the backend.
	TranslatorName() string
}
