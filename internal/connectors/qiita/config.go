package qiita

import (
	"fmt"
	"regexp"
	"time"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// Defaults.
const (
	DefaultBaseURL = "https://qiita.com"
	DefaultTimeout = 30 * time.Second
	DefaultPerPage = 100
)

// tokenPattern is the shape of a Qiita personal access token.
var tokenPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Config holds Qiita repository configuration.
type Config struct {
	// Token is the personal access token (required).
	Token string

	// BaseURL is the site root (default: https://qiita.com). Qiita Team
	// hosts use https://<team>.qiita.com.
	BaseURL string

	// PerPage is the listing page size, at most 100.
	PerPage int

	// RequestsPerSecond throttles API calls (default: ProactiveRate).
	RequestsPerSecond float64

	// Timeout is the HTTP request timeout.
	Timeout time.Duration
}

// ValidateToken checks the token is present and well formed.
func ValidateToken(token string) error {
	if token == "" {
		return fmt.Errorf("%w: qiita access token", domain.ErrAuthRequired)
	}
	if !tokenPattern.MatchString(token) {
		return fmt.Errorf("%w: qiita access token must be 40 lower-case hex characters", domain.ErrAuthInvalid)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.PerPage <= 0 || c.PerPage > DefaultPerPage {
		c.PerPage = DefaultPerPage
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}
