// Package llm wraps generation-backend calls with model fallback, retry,
// and rate-limit cooldown handling so callers always get either a live
// result or a typed error they can degrade from.
package llm

import "context"

// GenerationConfig carries the per-feature sampling parameters for one
// generation call.
type GenerationConfig struct {
	Temperature     float64
	TopP            float64
	MaxOutputTokens int32
	// JSONOutput asks the backend for structured JSON instead of prose.
	JSONOutput bool
}

// Request is a single generation request: an optional system instruction
// plus the fully assembled user prompt.
type Request struct {
	System string
	Prompt string
	Config GenerationConfig
}

// Result is a successful generation: the text and the model that
// actually served it (primary or fallback).
type Result struct {
	Text  string
	Model string
}

// Generator performs one raw generation call against a named model. The
// Orchestrator layers retry and fallback on top; implementations should
// return backend errors unwrapped so rate-limit markers survive.
type Generator interface {
	Generate(ctx context.Context, model string, req Request) (string, error)
}
