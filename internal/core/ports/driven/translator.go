package driven

import "context"

// Translator is a machine-translation backend.
//
// Implementations include:
//   - Google Cloud Translation v2
//   - LLM providers (OpenAI, Anthropic, Ollama) driven by prompts
type Translator interface {
	// Name identifies the backend for logging and history.
	Name() string

	// DetectLanguage returns the language code of text (e.g. "ja", "en").
	DetectLanguage(ctx context.Context, text string) (string, error)

	// Translate returns text rendered in the target language code.
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}
