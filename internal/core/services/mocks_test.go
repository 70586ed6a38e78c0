package services

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var errBackend = errors.New("backend unavailable")

// mockTranslator implements driven.Translator for testing.
// Detection is keyed by text; unknown texts are detected as Japanese.
type mockTranslator struct {
	mu        sync.Mutex
	languages map[string]string
	detectErr error
	failOn    string
	render    func(string) string

	detected   []string
	translated []string
}

func newMockTranslator() *mockTranslator {
	return &mockTranslator{languages: make(map[string]string)}
}

func (m *mockTranslator) Name() string { return "mock" }

func (m *mockTranslator) DetectLanguage(_ context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detected = append(m.detected, text)
	if m.detectErr != nil {
		return "", m.detectErr
	}
	if code, ok := m.languages[text]; ok {
		return code, nil
	}
	return "ja", nil
}

func (m *mockTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.translated = append(m.translated, text)
	if m.failOn != "" && strings.Contains(text, m.failOn) {
		return "", errBackend
	}
	if m.render != nil {
		return m.render(text), nil
	}
	return "tr(" + strings.TrimSpace(text) + ")", nil
}

func (m *mockTranslator) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.translated...)
}
