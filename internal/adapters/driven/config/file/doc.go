// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the transqiita config directory
// (~/.transqiita by default).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: User-editable LLM prompt templates
package file
