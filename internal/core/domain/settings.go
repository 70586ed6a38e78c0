package domain

const unknownDescription = "Unknown"

// TranslatorProvider identifies a machine-translation backend.
type TranslatorProvider string

// Available translator providers.
const (
	// TranslatorGoogle is the Google Cloud Translation v2 API.
	TranslatorGoogle TranslatorProvider = "google"

	// TranslatorOllama is a local Ollama instance prompted to translate.
	TranslatorOllama TranslatorProvider = "ollama"

	// TranslatorOpenAI is the OpenAI chat API prompted to translate.
	TranslatorOpenAI TranslatorProvider = "openai"

	// TranslatorAnthropic is the Anthropic messages API prompted to translate.
	TranslatorAnthropic TranslatorProvider = "anthropic"
)

// IsValid returns true if the provider is recognised.
func (p TranslatorProvider) IsValid() bool {
	switch p {
	case TranslatorGoogle, TranslatorOllama, TranslatorOpenAI, TranslatorAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p TranslatorProvider) RequiresAPIKey() bool {
	return p == TranslatorGoogle || p == TranslatorOpenAI || p == TranslatorAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p TranslatorProvider) IsLocal() bool {
	return p == TranslatorOllama
}

// IsLLM returns true if the provider is a chat model driven by prompts.
func (p TranslatorProvider) IsLLM() bool {
	return p == TranslatorOllama || p == TranslatorOpenAI || p == TranslatorAnthropic
}

// String returns the string representation.
func (p TranslatorProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p TranslatorProvider) Description() string {
	switch p {
	case TranslatorGoogle:
		return "Google Cloud Translation (cloud)"
	case TranslatorOllama:
		return "Ollama (local LLM)"
	case TranslatorOpenAI:
		return "OpenAI (cloud LLM)"
	case TranslatorAnthropic:
		return "Anthropic (cloud LLM)"
	default:
		return unknownDescription
	}
}

// RepositoryKind identifies where articles are read from and published to.
type RepositoryKind string

// Available repository kinds.
const (
	// RepositoryQiita is the Qiita API v2.
	RepositoryQiita RepositoryKind = "qiita"

	// RepositoryGist stores articles as GitHub gists.
	RepositoryGist RepositoryKind = "gist"

	// RepositoryLocal stores articles as Markdown files in a directory.
	RepositoryLocal RepositoryKind = "local"
)

// IsValid returns true if the repository kind is recognised.
func (k RepositoryKind) IsValid() bool {
	switch k {
	case RepositoryQiita, RepositoryGist, RepositoryLocal:
		return true
	default:
		return false
	}
}

// RequiresToken returns true if the repository needs an access token.
func (k RepositoryKind) RequiresToken() bool {
	return k == RepositoryQiita || k == RepositoryGist
}

// String returns the string representation.
func (k RepositoryKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the repository kind.
func (k RepositoryKind) Description() string {
	switch k {
	case RepositoryQiita:
		return "Qiita (qiita.com API v2)"
	case RepositoryGist:
		return "GitHub Gists"
	case RepositoryLocal:
		return "Local Markdown directory"
	default:
		return unknownDescription
	}
}

// TranslatorSettings holds translation backend configuration.
type TranslatorSettings struct {
	// Provider is the translation backend.
	Provider TranslatorProvider

	// Model is the LLM model name (LLM providers only).
	Model string

	// BaseURL overrides the API endpoint.
	BaseURL string

	// APIKey is the backend API key.
	APIKey string

	// TargetLanguage is the language code translations are produced in.
	TargetLanguage string

	// MaxChunkSize bounds each prose piece, in characters.
	MaxChunkSize int

	// RequestsPerSecond throttles backend calls. Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured returns true if the translator is set up.
func (t TranslatorSettings) IsConfigured() bool {
	if !t.Provider.IsValid() {
		return false
	}
	if t.Provider.RequiresAPIKey() && t.APIKey == "" {
		return false
	}
	return true
}

// RepositorySettings holds content repository configuration.
type RepositorySettings struct {
	// Kind is the repository type.
	Kind RepositoryKind

	// BaseURL overrides the API endpoint (qiita, gist).
	BaseURL string

	// Token is the access token (qiita, gist).
	Token string

	// Directory is the article directory (local).
	Directory string
}

// IsConfigured returns true if the repository can be opened.
func (r RepositorySettings) IsConfigured() bool {
	if !r.Kind.IsValid() {
		return false
	}
	if r.Kind.RequiresToken() && r.Token == "" {
		return false
	}
	if r.Kind == RepositoryLocal && r.Directory == "" {
		return false
	}
	return true
}

// BannerTemplate is the default back-reference banner. The first verb is the
// original article id, the second its URL.
const BannerTemplate = "This article is an automatic translation of the article[%s] below.\n%s\n\n"

// PipelineConfig holds the translation pipeline configuration.
type PipelineConfig struct {
	// Banner is a fmt template taking the original id then URL.
	Banner string

	// Processors is the ordered list of text processors applied to
	// translated prose.
	Processors []string
}

// ScheduleSettings holds unattended run configuration.
type ScheduleSettings struct {
	// Cron is a standard five-field cron expression.
	Cron string

	// KeepGoing continues past failed articles.
	KeepGoing bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Translator TranslatorSettings
	Repository RepositorySettings
	Publish    PublishOptions
	Pipeline   PipelineConfig
	Schedule   ScheduleSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Credentials are left empty and must come from the environment or the
// settings command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Translator: TranslatorSettings{
			Provider:       TranslatorGoogle,
			TargetLanguage: "en",
			MaxChunkSize:   DefaultMaxChunkSize,
		},
		Repository: RepositorySettings{
			Kind: RepositoryQiita,
		},
		Pipeline: DefaultPipelineConfig(),
		Schedule: ScheduleSettings{
			Cron: "0 * * * *",
		},
	}
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Banner:     BannerTemplate,
		Processors: []string{"markdown_spacing"},
	}
}

// AllTranslatorProviders returns all available translator providers.
func AllTranslatorProviders() []TranslatorProvider {
	return []TranslatorProvider{
		TranslatorGoogle,
		TranslatorOllama,
		TranslatorOpenAI,
		TranslatorAnthropic,
	}
}

// AllRepositoryKinds returns all available repository kinds.
func AllRepositoryKinds() []RepositoryKind {
	return []RepositoryKind{
		RepositoryQiita,
		RepositoryGist,
		RepositoryLocal,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[TranslatorProvider]string {
	return map[TranslatorProvider]string{
		TranslatorOllama:    "llama3.2",
		TranslatorOpenAI:    "gpt-4o-mini",
		TranslatorAnthropic: "claude-3-5-sonnet-latest",
	}
}
