package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// ListWorklistInput is the input schema for the list_worklist tool.
type ListWorklistInput struct{}

// ListWorklistOutput is the output schema for the list_worklist tool.
type ListWorklistOutput struct {
	Items   []WorkItemOutput `json:"items"`
	Count   int              `json:"count"`
	New     int              `json:"new"`
	Updated int              `json:"updated"`
}

// WorkItemOutput is one worklist entry.
type WorkItemOutput struct {
	Index       int    `json:"index"`
	Disposition string `json:"disposition"`
	ArticleID   string `json:"article_id"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	SiblingID   string `json:"sibling_id,omitempty"`
}

// TranslateInput is the input schema for the translate_article tool.
type TranslateInput struct {
	Index   int  `json:"index" jsonschema:"1-based worklist index as returned by list_worklist"`
	DryRun  bool `json:"dry_run,omitempty" jsonschema:"translate without publishing"`
	Private bool `json:"private,omitempty" jsonschema:"publish new articles as private"`
}

// TranslateOutput is the output schema for the translate_article tool.
type TranslateOutput struct {
	Disposition string `json:"disposition"`
	SourceID    string `json:"source_id"`
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	DryRun      bool   `json:"dry_run"`
	Body        string `json:"body,omitempty"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_worklist",
		Description: "List articles that need a new or updated translation",
	}, s.handleListWorklist)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "translate_article",
		Description: "Translate one worklist article and publish it",
	}, s.handleTranslate)
}

func (s *Server) handleListWorklist(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListWorklistInput,
) (*mcp.CallToolResult, ListWorklistOutput, error) {
	worklist, err := s.ports.Worklist.Build(ctx)
	if err != nil {
		return nil, ListWorklistOutput{}, err
	}

	newCount, staleCount := worklist.Counts()
	output := ListWorklistOutput{
		Items:   make([]WorkItemOutput, len(worklist)),
		Count:   len(worklist),
		New:     newCount,
		Updated: staleCount,
	}
	for i, item := range worklist {
		output.Items[i] = WorkItemOutput{
			Index:       i + 1,
			Disposition: item.Disposition.Label(),
			ArticleID:   item.Article.ID,
			Title:       item.Article.Title,
			URL:         item.Article.URL,
			SiblingID:   item.SiblingID,
		}
	}
	return nil, output, nil
}

// handleTranslate rebuilds the worklist so the index refers to current state.
func (s *Server) handleTranslate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TranslateInput,
) (*mcp.CallToolResult, TranslateOutput, error) {
	worklist, err := s.ports.Worklist.Build(ctx)
	if err != nil {
		return nil, TranslateOutput{}, err
	}
	if input.Index < 1 || input.Index > len(worklist) {
		return nil, TranslateOutput{}, fmt.Errorf("%w: index %d out of range 1..%d",
			domain.ErrInvalidInput, input.Index, len(worklist))
	}

	req := s.ports.Defaults
	req.DryRun = req.DryRun || input.DryRun
	req.Options.Private = req.Options.Private || input.Private

	item := worklist[input.Index-1]
	result, err := s.ports.Publish.TranslateAndPublish(ctx, item, req)
	if err != nil {
		return nil, TranslateOutput{}, err
	}

	output := TranslateOutput{
		Disposition: item.Disposition.Label(),
		SourceID:    item.Article.ID,
		Title:       result.Draft.Title,
		DryRun:      result.DryRun,
	}
	if result.DryRun {
		output.Body = result.Draft.Body
	} else {
		output.ID = result.Published.ID
		output.URL = result.Published.URL
	}
	return nil, output, nil
}
