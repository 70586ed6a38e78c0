// Package tui provides the interactive worklist picker.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/speaktech/transqiita/internal/core/ports/driving"
)

// Ports aggregates the driving ports the picker calls.
type Ports struct {
	// Worklist builds the list of articles to offer.
	Worklist driving.WorklistService

	// Publish translates and publishes the chosen articles.
	Publish driving.PublishService

	// Request configures every publish started from the picker.
	Request driving.PublishRequest
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
