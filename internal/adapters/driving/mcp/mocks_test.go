package mcp

import (
	"context"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
)

// mockWorklistService is a mock implementation of driving.WorklistService.
type mockWorklistService struct {
	worklist domain.Worklist
	err      error
}

func (m *mockWorklistService) Build(_ context.Context) (domain.Worklist, error) {
	return m.worklist, m.err
}

func (m *mockWorklistService) Classify(_ context.Context, corpus []domain.Article) ([]domain.Article, []domain.Article, error) {
	return corpus, nil, m.err
}

func (m *mockWorklistService) Match(_, _ []domain.Article) domain.Worklist {
	return m.worklist
}

// mockPublishService records the last request it was given.
type mockPublishService struct {
	lastItem domain.WorkItem
	lastReq  driving.PublishRequest
	err      error
}

func (m *mockPublishService) TranslateAndPublish(
	_ context.Context,
	item domain.WorkItem,
	req driving.PublishRequest,
) (*domain.PublishResult, error) {
	m.lastItem, m.lastReq = item, req
	if m.err != nil {
		return nil, m.err
	}
	result := &domain.PublishResult{
		Item:   item,
		Draft:  domain.Draft{Title: "EN " + item.Article.Title, Body: "translated"},
		DryRun: req.DryRun,
	}
	if !req.DryRun {
		result.Published = domain.Article{ID: "pub-" + item.Article.ID, URL: "https://example.com/pub"}
	}
	return result, nil
}

func (m *mockPublishService) PublishAll(
	_ context.Context,
	_ domain.Worklist,
	_ driving.PublishRequest,
	_ driving.ProgressFunc,
) ([]domain.PublishResult, error) {
	return nil, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.PublishRecord
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.PublishRecord, error) {
	return m.records, m.err
}

func (m *mockHistoryService) ForArticle(_ context.Context, sourceID string) (*domain.PublishRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].SourceID == sourceID {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func testWorklist() domain.Worklist {
	return domain.Worklist{
		domain.NewWorkItem(domain.Article{ID: "a1", Title: "新規"}, 0),
		domain.StaleWorkItem(domain.Article{ID: "a2", Title: "更新"}, "t2", 1),
	}
}
