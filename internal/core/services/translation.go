package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
	"github.com/speaktech/transqiita/internal/logger"
	"github.com/speaktech/transqiita/internal/postprocessors/chunker"
)

// Ensure TranslationService implements the interface.
var _ driving.TranslationService = (*TranslationService)(nil)

// TranslationService translates article titles and bodies.
type TranslationService struct {
	translator driven.Translator
	target     string
	banner     string
	splitter   *chunker.Splitter
	repair     driven.TextPipeline
}

// TranslationOption configures the translation service.
type TranslationOption func(*TranslationService)

// WithMaxChunkSize bounds each prose piece sent to the backend.
func WithMaxChunkSize(size int) TranslationOption {
	return func(s *TranslationService) {
		s.splitter = chunker.New(chunker.WithMaxChunkSize(size))
	}
}

// WithBanner overrides the back-reference banner template. The template
// must contain the %s verb for the original id; templates without it are
// ignored because siblings could never be matched.
func WithBanner(template string) TranslationOption {
	return func(s *TranslationService) {
		if strings.Contains(template, "%s") {
			s.banner = template
		}
	}
}

// WithRepair sets the pipeline applied to each translated prose chunk.
func WithRepair(p driven.TextPipeline) TranslationOption {
	return func(s *TranslationService) {
		s.repair = p
	}
}

// NewTranslationService creates a translation service producing targetLanguage.
func NewTranslationService(translator driven.Translator, targetLanguage string, opts ...TranslationOption) *TranslationService {
	s := &TranslationService{
		translator: translator,
		target:     targetLanguage,
		banner:     domain.BannerTemplate,
		splitter:   chunker.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TargetLanguage returns the language code translations are produced in.
func (s *TranslationService) TargetLanguage() string {
	return s.target
}

// TranslatorName identifies the backend.
func (s *TranslationService) TranslatorName() string {
	return s.translator.Name()
}

// Banner renders the back-reference banner for an article.
func (s *TranslationService) Banner(article domain.Article) string {
	if strings.Count(s.banner, "%s") >= 2 {
		return fmt.Sprintf(s.banner, article.ID, article.URL)
	}
	return fmt.Sprintf(s.banner, article.ID)
}

// TranslateTitle translates the raw title in one call.
func (s *TranslationService) TranslateTitle(ctx context.Context, article domain.Article) (string, error) {
	title, err := s.translator.Translate(ctx, article.Title, s.target)
	if err != nil {
		return "", fmt.Errorf("%w: title of %s: %w", domain.ErrTranslation, article.ID, err)
	}
	return title, nil
}

// TranslateBody translates prose, keeps code verbatim and prepends the banner.
//
// Fences are reinserted with blank-line padding on the prose side because
// backends drop the newlines that surround a prose chunk.
func (s *TranslationService) TranslateBody(ctx context.Context, article domain.Article) (string, error) {
	chunks := s.splitter.Split(article.Body)
	fence := s.splitter.Fence()
	last := len(chunks) - 1

	logger.Debug("article %s: %d chunks, %d code", article.ID, len(chunks), chunker.CountCode(chunks))

	var b strings.Builder
	b.WriteString(s.Banner(article))

	for i, c := range chunks {
		if c.IsCode() {
			b.WriteString(c.Text)
			if i < last {
				b.WriteString(fence + "\n\n")
			}
			continue
		}

		text, err := s.translateProse(ctx, article.ID, c)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		if i < last {
			b.WriteString("\n\n" + fence)
		}
	}

	return b.String(), nil
}

// translateProse translates each piece of a prose chunk in order and
// repairs the joined result. Blank chunks are returned unchanged.
func (s *TranslationService) translateProse(ctx context.Context, articleID string, c domain.Chunk) (string, error) {
	if strings.TrimSpace(c.Text) == "" {
		return c.Text, nil
	}

	var b strings.Builder
	lastPiece := len(c.Pieces) - 1
	for n, piece := range c.Pieces {
		if strings.TrimSpace(piece) == "" {
			b.WriteString(piece)
			continue
		}

		// Whitespace at a mechanical cut is kept out of the request and
		// restored around the reply, since backends trim it.
		var lead, trail string
		core := piece
		if n > 0 {
			trimmed := strings.TrimLeftFunc(core, unicode.IsSpace)
			lead, core = core[:len(core)-len(trimmed)], trimmed
		}
		if n < lastPiece {
			trimmed := strings.TrimRightFunc(core, unicode.IsSpace)
			trail, core = core[len(trimmed):], trimmed
		}

		logger.Debug("article %s: translating chunk %d piece %d (%d bytes)", articleID, c.Position, n, len(core))
		out, err := s.translator.Translate(ctx, core, s.target)
		if err != nil {
			return "", fmt.Errorf("%w: article %s chunk %d: %w", domain.ErrTranslation, articleID, c.Position, err)
		}
		if lead != "" {
			out = strings.TrimLeftFunc(out, unicode.IsSpace)
		}
		if trail != "" {
			out = strings.TrimRightFunc(out, unicode.IsSpace)
		}
		b.WriteString(lead)
		b.WriteString(out)
		b.WriteString(trail)
	}

	if s.repair == nil {
		return b.String(), nil
	}
	repaired, err := s.repair.Process(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("%w: repair chunk %d: %w", domain.ErrTranslation, c.Position, err)
	}
	return repaired, nil
}
