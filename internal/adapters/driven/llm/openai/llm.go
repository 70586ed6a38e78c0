// Package openai runs translation prompts through the OpenAI chat
// completions API and compatible servers.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/speaktech/transqiita/internal/adapters/driven/llm"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
)

var _ driven.LLMService = (*Service)(nil)

// Defaults.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second

	// MaxOutputTokens caps the reply budget of one request.
	MaxOutputTokens = 16384

	// seed makes repeated translations of the same text agree.
	seed = 7
)

// Config configures the service. APIKey is required.
type Config struct {
	APIKey     string
	BaseURL    string // also Azure OpenAI or compatible servers
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Service is a chat model on the OpenAI API.
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

// completionRequest keeps the system prompt as the leading message.
// Temperature is always sent so that 0 is not replaced by the API default.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Seed        int       `json:"seed"`
}

type completionResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// New creates the service.
func New(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
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
	header.Set("Authorization", "Bearer "+cfg.APIKey)
	return &Service{
		client:  llm.Client(cfg.HTTPClient, cfg.Timeout),
		baseURL: cfg.BaseURL,
		header:  header,
		model:   cfg.Model,
	}, nil
}

// Chat sends one completion request.
func (s *Service) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req := completionRequest{
		Model:       s.model,
		Messages:    make([]message, len(messages)),
		MaxTokens:   llm.MaxTokens(messages, opts, MaxOutputTokens),
		Temperature: llm.Temperature(opts),
		Seed:        seed,
	}
	for i, m := range messages {
		req.Messages[i] = message{Role: m.Role, Content: m.Content}
	}

	var resp completionResponse
	if err := llm.PostJSON(ctx, s.client, "openai", s.baseURL+"/chat/completions", s.header, req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("openai error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "length" {
		return "", fmt.Errorf("openai: %w (%d tokens)", llm.ErrTruncated, req.MaxTokens)
	}
	return choice.Message.Content, nil
}

// ModelName returns the model.
func (s *Service) ModelName() string {
	return s.model
}

// Ping lists models to check the key.
func (s *Service) Ping(ctx context.Context) error {
	return llm.GetOK(ctx, s.client, "openai", s.baseURL+"/models", s.header)
}

// Close is a no-op.
func (s *Service) Close() error {
	return nil
}
