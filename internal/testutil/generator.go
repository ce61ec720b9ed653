package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/biomentor-ai/biomentor/internal/llm"
)

// MockGenerator is a deterministic generation backend for tests. It
// matches the prompt against registered patterns (first match wins) and
// returns the paired response; unmatched prompts get the fallback.
//
// Thread-safe for concurrent use.
type MockGenerator struct {
	mu       sync.Mutex
	rules    []mockRule
	fallback string
	err      error
	calls    []MockCall
}

type mockRule struct {
	pattern  string
	response string
}

// MockCall records one call to the mock backend.
type MockCall struct {
	Model  string
	Prompt string
}

// NewMockGenerator creates a mock backend with the given fallback
// response.
func NewMockGenerator(fallback string) *MockGenerator {
	return &MockGenerator{fallback: fallback}
}

// AddResponse registers a pattern-response pair. When a prompt contains
// the pattern (case-insensitive), the response is returned.
func (m *MockGenerator) AddResponse(pattern, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{pattern: strings.ToLower(pattern), response: response})
}

// FailWith makes every subsequent call return err. Pass nil to restore
// normal behavior.
func (m *MockGenerator) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns a copy of all recorded calls.
func (m *MockGenerator) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]MockCall, len(m.calls))
	copy(cp, m.calls)
	return cp
}

// Generate implements llm.Generator.
func (m *MockGenerator) Generate(_ context.Context, model string, req llm.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Model: model, Prompt: req.Prompt})
	if m.err != nil {
		return "", m.err
	}

	promptLower := strings.ToLower(req.Prompt)
	for _, rule := range m.rules {
		if strings.Contains(promptLower, rule.pattern) {
			return rule.response, nil
		}
	}
	return m.fallback, nil
}
