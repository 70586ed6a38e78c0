// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ContentRepository: Lists, creates and updates authored articles
//   - Translator: Detects languages and translates text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Publish history. Without it, history is not recorded.
//   - LLMService: Chat model backing the LLM translators.
//   - PromptStore: Editable prompt templates. Without it, defaults are used.
//   - TextProcessor: Post-translation text repair stages.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
