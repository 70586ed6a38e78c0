package driven

import "github.com/speaktech/transqiita/internal/core/domain"

// TranslatorValidator validates translator configurations by testing
// connectivity to the backend.
type TranslatorValidator interface {
	// ValidateTranslator returns nil if the configuration is valid or not configured.
	ValidateTranslator(config *domain.TranslatorSettings) error
}
