package services

import (
	"context"
	"fmt"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/logger"
)

// Classifier sorts articles into source and target language buckets.
type Classifier struct {
	translator driven.Translator
	target     string
}

// NewClassifier creates a classifier for the given target language.
func NewClassifier(translator driven.Translator, targetLanguage string) *Classifier {
	return &Classifier{
		translator: translator,
		target:     targetLanguage,
	}
}

// Language detects the bucket of a single article from its title.
func (c *Classifier) Language(ctx context.Context, article domain.Article) (domain.Language, error) {
	code, err := c.translator.DetectLanguage(ctx, article.Title)
	if err != nil {
		return "", fmt.Errorf("%w: article %s: %w", domain.ErrClassification, article.ID, err)
	}
	lang := domain.ClassifyLanguage(code, c.target)
	logger.Debug("classified %s as %s (%s)", article.ID, lang, code)
	return lang, nil
}

// Partition splits the corpus, preserving corpus order within each bucket.
// The first failed detection aborts the whole partition.
func (c *Classifier) Partition(ctx context.Context, corpus []domain.Article) (source, target []domain.Article, err error) {
	source = make([]domain.Article, 0, len(corpus))
	target = make([]domain.Article, 0, len(corpus))

	for _, article := range corpus {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		lang, err := c.Language(ctx, article)
		if err != nil {
			return nil, nil, err
		}
		if lang == domain.LanguageTarget {
			target = append(target, article)
		} else {
			source = append(source, article)
		}
	}

	return source, target, nil
}
