package services

import (
	"context"
	"fmt"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
	"github.com/speaktech/transqiita/internal/logger"
)

// Ensure WorklistService implements the interface.
var _ driving.WorklistService = (*WorklistService)(nil)

// WorklistService fetches the corpus once, classifies it once and matches it once.
type WorklistService struct {
	repo       driven.ContentRepository
	classifier *Classifier
}

// NewWorklistService creates a new worklist service.
func NewWorklistService(repo driven.ContentRepository, classifier *Classifier) *WorklistService {
	return &WorklistService{
		repo:       repo,
		classifier: classifier,
	}
}

// Build fetches, classifies and matches the user's articles.
func (s *WorklistService) Build(ctx context.Context) (domain.Worklist, error) {
	logger.Section("Worklist")
	defer logger.Timed("worklist")()

	corpus, err := s.repo.ListAuthored(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	logger.Info("fetched %d articles from %s", len(corpus), s.repo.Kind())

	source, target, err := s.Classify(ctx, corpus)
	if err != nil {
		return nil, err
	}

	worklist := s.Match(source, target)
	newCount, staleCount := worklist.Counts()
	logger.Info("worklist: %d new, %d updated", newCount, staleCount)

	return worklist, nil
}

// Classify splits a corpus into source and target buckets.
func (s *WorklistService) Classify(ctx context.Context, corpus []domain.Article) (source, target []domain.Article, err error) {
	source, target, err = s.classifier.Partition(ctx, corpus)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("classified %d source, %d target", len(source), len(target))
	return source, target, nil
}

// Match pairs source articles with translated siblings.
func (s *WorklistService) Match(source, target []domain.Article) domain.Worklist {
	return MatchArticles(source, target)
}
