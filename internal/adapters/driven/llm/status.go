// Package llm holds the request shaping and HTTP plumbing shared by the
// chat model adapters.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// maxBodyInError bounds how much of a response body is echoed in errors.
const maxBodyInError = 512

// StatusError converts a non-200 response into an error. Authentication and
// rate limit statuses wrap the matching domain sentinel.
func StatusError(provider string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxBodyInError {
		msg = msg[:maxBodyInError] + "..."
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s (status %d): %s", domain.ErrAuthInvalid, provider, status, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s (status %d): %s", domain.ErrRateLimited, provider, status, msg)
	default:
		return fmt.Errorf("%s error (status %d): %s", provider, status, msg)
	}
}

// Client returns hc, or a client with the given timeout on the default
// transport, which honours HTTP_PROXY and HTTPS_PROXY.
func Client(hc *http.Client, timeout time.Duration) *http.Client {
	if hc != nil {
		return hc
	}
	return &http.Client{Timeout: timeout}
}

// PostJSON sends in as JSON to url and decodes a 200 reply into out.
func PostJSON(ctx context.Context, hc *http.Client, provider, url string, header http.Header, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", provider, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := send(hc, req)
	if err != nil {
		return fmt.Errorf("%s: %w", provider, err)
	}
	if status != http.StatusOK {
		return StatusError(provider, status, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", provider, err)
	}
	return nil
}

// GetOK issues a GET to url and fails unless it answers 200. Adapters use it
// to check credentials without running inference.
func GetOK(ctx context.Context, hc *http.Client, provider, url string, header http.Header) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: create ping request: %w", provider, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	body, status, err := send(hc, req)
	if err != nil {
		return fmt.Errorf("%s: ping failed: %w", provider, err)
	}
	if status != http.StatusOK {
		return StatusError(provider, status, body)
	}
	return nil
}

func send(hc *http.Client, req *http.Request) ([]byte, int, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
