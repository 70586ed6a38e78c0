package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/speaktech/transqiita/internal/core/domain"
)

const (
	uriScheme = "transqiita://"

	historyLimit = 50
)

type recordInfo struct {
	SourceID     string    `json:"source_id"`
	TranslatedID string    `json:"translated_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Disposition  string    `json:"disposition"`
	Translator   string    `json:"translator"`
	PublishedAt  time.Time `json:"published_at"`
}

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recently published translations",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{articleId}",
		Name:        "article-history",
		Description: "Last published translation of an article",
		MIMEType:    "application/json",
	}, s.handleArticleHistoryResource)
}

// handleHistoryResource returns recent publish records, newest first.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	records, err := s.ports.History.Recent(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	infos := make([]recordInfo, len(records))
	for i, r := range records {
		infos[i] = toRecordInfo(r)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleArticleHistoryResource returns the last record for one article.
func (s *Server) handleArticleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractArticleID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.History.ForArticle(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting history: %w", err)
	}

	data, err := json.MarshalIndent(toRecordInfo(*record), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

func toRecordInfo(r domain.PublishRecord) recordInfo {
	return recordInfo{
		SourceID:     r.SourceID,
		TranslatedID: r.TranslatedID,
		Title:        r.Title,
		URL:          r.URL,
		Disposition:  r.Disposition.Label(),
		Translator:   r.Translator,
		PublishedAt:  r.PublishedAt,
	}
}

// extractArticleID extracts the id from transqiita://history/{articleId}.
func extractArticleID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
