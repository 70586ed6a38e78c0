package driving

import "github.com/speaktech/transqiita/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetTranslator configures the translation backend.
	SetTranslator(provider domain.TranslatorProvider, model, apiKey string) error

	// SetTargetLanguage sets the language translations are produced in.
	SetTargetLanguage(code string) error

	// SetRepository configures the content repository.
	SetRepository(kind domain.RepositoryKind, location string) error

	// SetPublishDefaults sets the default publish options.
	SetPublishDefaults(opts domain.PublishOptions) error

	// Validate checks the settings are complete enough to run.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
