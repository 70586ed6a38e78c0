// Package ollama runs translation prompts on a local Ollama server.
package ollama

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
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 300 * time.Second

	// MaxOutputTokens caps the reply budget of one request.
	MaxOutputTokens = 8192

	// Context windows are sized in steps of contextStep up to maxContext.
	// contextStep is also Ollama's default window.
	contextStep = 2048
	maxContext  = 32768

	seed = 7
)

// Config configures the service.
type Config struct {
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Service is a chat model served by Ollama.
type Service struct {
	client  *http.Client
	baseURL string
	model   string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type options struct {
	NumPredict  int     `json:"num_predict"`
	NumCtx      int     `json:"num_ctx"`
	Temperature float64 `json:"temperature"`
	Seed        int     `json:"seed"`
}

// chatRequest keeps the system prompt as a system-role message, which
// Ollama applies through the model's own template.
type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  options   `json:"options"`
}

type chatResponse struct {
	Message    message `json:"message"`
	DoneReason string  `json:"done_reason"`
}

// New creates the service.
func New(cfg Config) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{
		client:  llm.Client(cfg.HTTPClient, cfg.Timeout),
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Chat sends one non-streaming chat request.
func (s *Service) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	budget := llm.MaxTokens(messages, opts, MaxOutputTokens)
	req := chatRequest{
		Model:    s.model,
		Messages: make([]message, len(messages)),
		Options: options{
			NumPredict:  budget,
			NumCtx:      ContextWindow(llm.PromptTokens(messages) + budget),
			Temperature: llm.Temperature(opts),
			Seed:        seed,
		},
	}
	for i, m := range messages {
		req.Messages[i] = message{Role: m.Role, Content: m.Content}
	}

	var resp chatResponse
	if err := llm.PostJSON(ctx, s.client, "ollama", s.baseURL+"/api/chat", nil, req, &resp); err != nil {
		return "", err
	}
	if resp.DoneReason == "length" {
		return "", fmt.Errorf("ollama: %w (%d tokens)", llm.ErrTruncated, budget)
	}
	return resp.Message.Content, nil
}

// ContextWindow rounds tokens up to a multiple of contextStep, so prompt and
// reply fit without Ollama silently dropping the start of the prompt.
func ContextWindow(tokens int) int {
	n := (tokens + contextStep - 1) / contextStep * contextStep
	return min(max(n, contextStep), maxContext)
}

// ModelName returns the model.
func (s *Service) ModelName() string {
	return s.model
}

// Ping lists local models to check the server is up.
func (s *Service) Ping(ctx context.Context) error {
	if err := llm.GetOK(ctx, s.client, "ollama", s.baseURL+"/api/tags", nil); err != nil {
		return fmt.Errorf("%w (is ollama running at %s?)", err, s.baseURL)
	}
	return nil
}

// Close is a no-op.
func (s *Service) Close() error {
	return nil
}
