package llm

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// minOutputTokens is the smallest reply budget sized from the input.
const minOutputTokens = 256

// ErrTruncated reports a reply cut off by the token limit. A truncated
// translation must never be published.
var ErrTruncated = errors.New("reply truncated at the token limit")

// EstimateTokens approximates the token count of s: about four ASCII
// characters per token, one token per other rune.
func EstimateTokens(s string) int {
	ascii, other := 0, 0
	for _, r := range s {
		if r < utf8.RuneSelf {
			ascii++
		} else {
			other++
		}
	}
	return (ascii+3)/4 + other
}

// PromptTokens estimates the tokens of every message.
func PromptTokens(messages []driven.ChatMessage) int {
	n := 0
	for _, m := range messages {
		n += EstimateTokens(m.Content)
	}
	return n
}

// MaxTokens returns the reply budget for a request. An explicit
// opts.MaxTokens wins; otherwise the budget is twice the user text, at
// least minOutputTokens. limit caps both when positive.
func MaxTokens(messages []driven.ChatMessage, opts driven.ChatOptions, limit int) int {
	budget := opts.MaxTokens
	if budget <= 0 {
		n := 0
		for _, m := range messages {
			if m.Role == RoleUser {
				n += EstimateTokens(m.Content)
			}
		}
		budget = max(2*n, minOutputTokens)
	}
	if limit > 0 {
		budget = min(budget, limit)
	}
	return budget
}

// Temperature returns the sampling temperature, 0 unless overridden.
func Temperature(opts driven.ChatOptions) float64 {
	if opts.Temperature != nil {
		return *opts.Temperature
	}
	return 0
}

// SplitSystem separates system messages from the conversation. Several
// system messages are joined with a blank line.
func SplitSystem(messages []driven.ChatMessage) (string, []driven.ChatMessage) {
	var system []string
	rest := make([]driven.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}
