package ai

import (
	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.TranslatorValidator = (*ConfigValidator)(nil)

// ConfigValidator validates translator configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new translator config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateTranslator validates a configuration by contacting the backend.
func (v *ConfigValidator) ValidateTranslator(config *domain.TranslatorSettings) error {
	return ValidateTranslatorConfig(config)
}
