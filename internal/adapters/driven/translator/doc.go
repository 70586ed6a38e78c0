// Package translator groups the machine-translation backends.
//
//   - google: Cloud Translation v2 with an API key
//   - llm: any driven.LLMService prompted to translate
//   - throttle: a rate-limiting decorator for either
package translator
