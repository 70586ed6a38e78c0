package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
	"github.com/speaktech/transqiita/internal/logger"
)

// Ensure PublishService implements the interface.
var _ driving.PublishService = (*PublishService)(nil)

// PublishService translates worklist items and writes them to the repository.
// Nothing is published until both title and body are fully translated.
type PublishService struct {
	repo        driven.ContentRepository
	translation driving.TranslationService
	history     driven.HistoryStore
	now         func() time.Time
}

// NewPublishService creates a new publish service.
// history may be nil, in which case nothing is recorded.
func NewPublishService(
	repo driven.ContentRepository,
	translation driving.TranslationService,
	history driven.HistoryStore,
) *PublishService {
	return &PublishService{
		repo:        repo,
		translation: translation,
		history:     history,
		now:         time.Now,
	}
}

// TranslateAndPublish translates one item and creates or updates the
// remote article according to its disposition.
func (s *PublishService) TranslateAndPublish(
	ctx context.Context,
	item domain.WorkItem,
	req driving.PublishRequest,
) (*domain.PublishResult, error) {
	if !item.Disposition.IsValid() {
		return nil, fmt.Errorf("%w: disposition %q", domain.ErrInvalidInput, item.Disposition)
	}
	if !item.IsNew() && item.SiblingID == "" {
		return nil, fmt.Errorf("%w: stale item %s has no sibling", domain.ErrInvalidInput, item.Article.ID)
	}

	title, err := s.translation.TranslateTitle(ctx, item.Article)
	if err != nil {
		return nil, err
	}
	body, err := s.translation.TranslateBody(ctx, item.Article)
	if err != nil {
		return nil, err
	}

	result := &domain.PublishResult{
		Item: item,
		Draft: domain.Draft{
			Title:   title,
			Body:    body,
			Tags:    item.Article.Tags,
			Private: item.Article.Private || req.Options.Private,
		},
		DryRun: req.DryRun,
	}
	if req.DryRun {
		return result, nil
	}

	var published *domain.Article
	if item.IsNew() {
		published, err = s.repo.Create(ctx, result.Draft, req.Options)
	} else {
		published, err = s.repo.Update(ctx, item.SiblingID, result.Draft)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrPublish, item.Article.ID, err)
	}
	result.Published = *published

	s.record(ctx, result)
	return result, nil
}

// PublishAll processes items one at a time in worklist order.
// Without KeepGoing the first failure stops the run; with it, failures are
// joined and returned after every item has been attempted.
func (s *PublishService) PublishAll(
	ctx context.Context,
	items domain.Worklist,
	req driving.PublishRequest,
	progress driving.ProgressFunc,
) ([]domain.PublishResult, error) {
	logger.Section("Publish")

	results := make([]domain.PublishResult, 0, len(items))
	var errs []error

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return results, errors.Join(append(errs, err)...)
		}

		result, err := s.TranslateAndPublish(ctx, item, req)
		if progress != nil {
			progress(i, len(items), result, err)
		}
		if err != nil {
			logger.Warn("article %s failed: %v", item.Article.ID, err)
			if !req.KeepGoing {
				return results, err
			}
			errs = append(errs, err)
			continue
		}
		results = append(results, *result)
	}

	return results, errors.Join(errs...)
}

// record writes a history entry. History is best effort.
func (s *PublishService) record(ctx context.Context, result *domain.PublishResult) {
	if s.history == nil {
		return
	}
	rec := domain.PublishRecord{
		ID:           uuid.New().String(),
		SourceID:     result.Item.Article.ID,
		TranslatedID: result.Published.ID,
		Title:        result.Published.Title,
		URL:          result.Published.URL,
		Disposition:  result.Item.Disposition,
		Translator:   s.translation.TranslatorName(),
		Repository:   s.repo.Kind().String(),
		PublishedAt:  s.now(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn("failed to record history for %s: %v", rec.SourceID, err)
	}
}
