package services

import (
	"errors"
	"fmt"
	"os"

	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyTranslatorProvider = "translation.provider"
	keyTranslatorModel    = "translation.model"
	keyTranslatorBaseURL  = "translation.base_url"
	keyTranslatorAPIKey   = "translation.api_key"
	keyTargetLanguage     = "translation.target_language"
	keyMaxChunkSize       = "translation.max_chunk_size"
	keyRequestsPerSecond  = "translation.requests_per_second"
	keyRepositoryKind     = "repository.kind"
	keyRepositoryBaseURL  = "repository.base_url"
	keyRepositoryToken    = "repository.token"
	keyRepositoryDir      = "repository.directory"
	keyPublishPrivate     = "publish.private"
	keyPublishGist        = "publish.gist"
	keyPublishTweet       = "publish.tweet"
	keyPipelineBanner     = "pipeline.banner"
	keyPipelineProcessors = "pipeline.processors"
	keyScheduleCron       = "schedule.cron"
	keyScheduleKeepGoing  = "schedule.keep_going"
)

// Environment variables holding credentials. They take precedence over
// values stored in the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvQiitaToken      = "QIITA_ACCESS_TOKEN"
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvGoogleAPIKey    = "GOOGLE_TRANSLATE_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validator   driven.TranslatorValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
// validator may be nil, in which case connectivity is not checked.
func NewSettingsService(configStore driven.ConfigStore, validator driven.TranslatorValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validator:   validator,
		getenv:      os.Getenv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(getenv func(string) string) *SettingsService {
	s.getenv = getenv
	return s
}

// Get retrieves current application settings, with credentials from the
// environment overriding stored ones.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	if key := s.getenv(translatorEnv(settings.Translator.Provider)); key != "" {
		settings.Translator.APIKey = key
	}
	if token := s.getenv(repositoryEnv(settings.Repository.Kind)); token != "" {
		settings.Repository.Token = token
	}
	return settings, nil
}

// stored reads the settings as persisted, without environment overrides.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Translator: domain.TranslatorSettings{
			Provider:          domain.TranslatorProvider(s.getString(keyTranslatorProvider, defaults.Translator.Provider.String())),
			Model:             s.configStore.GetString(keyTranslatorModel),
			BaseURL:           s.configStore.GetString(keyTranslatorBaseURL),
			APIKey:            s.configStore.GetString(keyTranslatorAPIKey),
			TargetLanguage:    s.getString(keyTargetLanguage, defaults.Translator.TargetLanguage),
			MaxChunkSize:      s.getInt(keyMaxChunkSize, defaults.Translator.MaxChunkSize),
			RequestsPerSecond: s.configStore.GetFloat(keyRequestsPerSecond),
		},
		Repository: domain.RepositorySettings{
			Kind:      domain.RepositoryKind(s.getString(keyRepositoryKind, defaults.Repository.Kind.String())),
			BaseURL:   s.configStore.GetString(keyRepositoryBaseURL),
			Token:     s.configStore.GetString(keyRepositoryToken),
			Directory: s.configStore.GetString(keyRepositoryDir),
		},
		Publish: domain.PublishOptions{
			Private: s.configStore.GetBool(keyPublishPrivate),
			Gist:    s.configStore.GetBool(keyPublishGist),
			Tweet:   s.configStore.GetBool(keyPublishTweet),
		},
		Pipeline: domain.PipelineConfig{
			Banner:     s.getString(keyPipelineBanner, defaults.Pipeline.Banner),
			Processors: defaults.Pipeline.Processors,
		},
		Schedule: domain.ScheduleSettings{
			Cron:      s.getString(keyScheduleCron, defaults.Schedule.Cron),
			KeepGoing: s.configStore.GetBool(keyScheduleKeepGoing),
		},
	}
	if _, ok := s.configStore.Get(keyPipelineProcessors); ok {
		settings.Pipeline.Processors = s.configStore.GetStringSlice(keyPipelineProcessors)
	}
	return settings
}

// Save persists application settings. Empty credentials and credentials
// supplied by the environment are not written, so environment-only setups
// keep the file free of secrets.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	apiKey := settings.Translator.APIKey
	if apiKey == s.getenv(translatorEnv(settings.Translator.Provider)) {
		apiKey = ""
	}
	token := settings.Repository.Token
	if token == s.getenv(repositoryEnv(settings.Repository.Kind)) {
		token = ""
	}

	values := []struct {
		key   string
		value any
		skip  bool
	}{
		{keyTranslatorProvider, settings.Translator.Provider.String(), false},
		{keyTranslatorModel, settings.Translator.Model, false},
		{keyTranslatorBaseURL, settings.Translator.BaseURL, false},
		{keyTranslatorAPIKey, apiKey, apiKey == ""},
		{keyTargetLanguage, settings.Translator.TargetLanguage, false},
		{keyMaxChunkSize, settings.Translator.MaxChunkSize, false},
		{keyRequestsPerSecond, settings.Translator.RequestsPerSecond, false},
		{keyRepositoryKind, settings.Repository.Kind.String(), false},
		{keyRepositoryBaseURL, settings.Repository.BaseURL, false},
		{keyRepositoryToken, token, token == ""},
		{keyRepositoryDir, settings.Repository.Directory, false},
		{keyPublishPrivate, settings.Publish.Private, false},
		{keyPublishGist, settings.Publish.Gist, false},
		{keyPublishTweet, settings.Publish.Tweet, false},
		{keyPipelineBanner, settings.Pipeline.Banner, false},
		{keyPipelineProcessors, settings.Pipeline.Processors, false},
		{keyScheduleCron, settings.Schedule.Cron, false},
		{keyScheduleKeepGoing, settings.Schedule.KeepGoing, false},
	}

	for _, v := range values {
		if v.skip {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetTranslator configures the translation backend.
func (s *SettingsService) SetTranslator(provider domain.TranslatorProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: translator %s", domain.ErrUnsupportedType, provider)
	}

	settings := s.stored()

	if apiKey == "" && settings.Translator.Provider == provider {
		apiKey = settings.Translator.APIKey
	}
	if apiKey == "" {
		apiKey = s.getenv(translatorEnv(provider))
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.Translator.Provider = provider
	settings.Translator.APIKey = apiKey

	// Set model - use provided or default
	settings.Translator.Model = model
	if model == "" {
		settings.Translator.Model = domain.DefaultLLMModels()[provider]
	}

	if provider.IsLocal() {
		if settings.Translator.BaseURL == "" {
			settings.Translator.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.Translator.BaseURL = ""
	}

	if s.validator != nil {
		if err := s.validator.ValidateTranslator(&settings.Translator); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrTranslatorUnavailable, err)
		}
	}

	return s.Save(settings)
}

// SetTargetLanguage sets the language translations are produced in.
func (s *SettingsService) SetTargetLanguage(code string) error {
	base := domain.BaseLanguageCode(code)
	if base == "" {
		return fmt.Errorf("%w: empty language code", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyTargetLanguage, base)
}

// SetRepository configures the content repository. location is the base URL
// for remote repositories and the directory for local ones.
func (s *SettingsService) SetRepository(kind domain.RepositoryKind, location string) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: repository %s", domain.ErrUnsupportedType, kind)
	}
	if kind == domain.RepositoryLocal && location == "" {
		return fmt.Errorf("%w: local repository needs a directory", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyRepositoryKind, kind.String()); err != nil {
		return err
	}
	key := keyRepositoryBaseURL
	if kind == domain.RepositoryLocal {
		key = keyRepositoryDir
	}
	return s.configStore.Set(key, location)
}

// SetPublishDefaults sets the default publish options.
func (s *SettingsService) SetPublishDefaults(opts domain.PublishOptions) error {
	settings := s.stored()
	settings.Publish = opts
	return s.Save(settings)
}

// Validate checks the settings are complete enough to run.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if !settings.Translator.Provider.IsValid() {
		errs = append(errs, fmt.Errorf("%w: translator %s", domain.ErrUnsupportedType, settings.Translator.Provider))
	} else if !settings.Translator.IsConfigured() {
		errs = append(errs, fmt.Errorf("%w: %s needs an API key (%s)",
			domain.ErrTranslatorUnavailable, settings.Translator.Provider, translatorEnv(settings.Translator.Provider)))
	}
	if !settings.Repository.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("%w: repository %s", domain.ErrUnsupportedType, settings.Repository.Kind))
	} else if !settings.Repository.IsConfigured() {
		if settings.Repository.Kind.RequiresToken() {
			errs = append(errs, fmt.Errorf("%w: %s needs a token (%s)",
				domain.ErrAuthRequired, settings.Repository.Kind, repositoryEnv(settings.Repository.Kind)))
		} else {
			errs = append(errs, fmt.Errorf("%w: %s needs a directory", domain.ErrInvalidInput, settings.Repository.Kind))
		}
	}
	if settings.Translator.MaxChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: max chunk size must be positive", domain.ErrInvalidInput))
	}

	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return def
}

func translatorEnv(p domain.TranslatorProvider) string {
	switch p {
	case domain.TranslatorGoogle:
		return EnvGoogleAPIKey
	case domain.TranslatorOpenAI:
		return EnvOpenAIAPIKey
	case domain.TranslatorAnthropic:
		return EnvAnthropicAPIKey
	default:
		return ""
	}
}

func repositoryEnv(k domain.RepositoryKind) string {
	switch k {
	case domain.RepositoryQiita:
		return EnvQiitaToken
	case domain.RepositoryGist:
		return EnvGitHubToken
	default:
		return ""
	}
}
