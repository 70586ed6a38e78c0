// Package anthropic runs translation prompts through the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/speaktech/transqiita/internal/adapters/driven/llm"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

var _ driven.LLMService = (*Service)(nil)

// Defaults.
const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-3-5-sonnet-latest"
	DefaultTimeout = 120 * time.Second

	// MaxOutputTokens caps the reply budget of one request.
	MaxOutputTokens = 8192

	apiVersion = "2023-06-01"
)

// Config configures the service. APIKey is required.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Service is a chat model on the Anthropic API.
type Service struct {
	client  *http.Client
	baseURL string
	header  http.Header
	model   string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesRequest carries the system prompt in its own field; the API
// rejects system-role messages.
type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// New creates the service.
func New(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	header := http.Header{}
	header.Set("x-api-key", cfg.APIKey)
	header.Set("anthropic-version", apiVersion)
	return &Service{
		client:  llm.Client(cfg.HTTPClient, cfg.Timeout),
		baseURL: cfg.BaseURL,
		header:  header,
		model:   cfg.Model,
	}, nil
}

// Chat sends one Messages request.
func (s *Service) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	system, rest := llm.SplitSystem(messages)
	req := messagesRequest{
		Model:       s.model,
		System:      system,
		Messages:    make([]message, len(rest)),
		MaxTokens:   llm.MaxTokens(messages, opts, MaxOutputTokens),
		Temperature: llm.Temperature(opts),
	}
	for i, m := range rest {
		req.Messages[i] = message{Role: m.Role, Content: m.Content}
	}

	var resp messagesResponse
	if err := llm.PostJSON(ctx, s.client, "anthropic", s.baseURL+"/v1/messages", s.header, req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("anthropic error: %s", resp.Error.Message)
	}
	if resp.StopReason == "max_tokens" {
		return "", fmt.Errorf("anthropic: %w (%d tokens)", llm.ErrTruncated, req.MaxTokens)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("anthropic: no text in response")
	}
	return text.String(), nil
}

// ModelName returns the model.
func (s *Service) ModelName() string {
	return s.model
}

// Ping lists models to check the key.
func (s *Service) Ping(ctx context.Context) error {
	return llm.GetOK(ctx, s.client, "anthropic", s.baseURL+"/v1/models", s.header)
}

// Close is a no-op.
func (s *Service) Close() error {
	return nil
}
