package mcp

import (
	"github.com/speaktech/transqiita/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Worklist selects articles to translate.
	Worklist driving.WorklistService

	// Publish translates and publishes one article.
	Publish driving.PublishService

	// History exposes past publishes. Optional.
	History driving.HistoryService

	// Defaults are applied to every translate_article call.
	Defaults driving.PublishRequest
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Worklist == nil {
		return ErrMissingWorklistService
	}
	if p.Publish == nil {
		return ErrMissingPublishService
	}
	return nil
}
