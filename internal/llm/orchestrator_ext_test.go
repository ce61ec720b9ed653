package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/biomentor-ai/biomentor/internal/llm"
	"github.com/biomentor-ai/biomentor/internal/testutil"
)

// Black-box coverage of the public orchestrator surface, driven by the
// shared mock backend.

func TestOrchestrator_MockBackend(t *testing.T) {
	t.Parallel()

	gen := testutil.NewMockGenerator("generic answer")
	gen.AddResponse("photosynthesis", "chlorophyll captures light")

	orch := llm.NewOrchestrator(gen, llm.NewTracker(), "gemini-2.5-flash", nil)

	res, err := orch.Generate(context.Background(), llm.Request{Prompt: "Explain photosynthesis"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Text != "chlorophyll captures light" {
		t.Errorf("Text = %q, want pattern response", res.Text)
	}
	if res.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, want primary", res.Model)
	}

	res, err = orch.Generate(context.Background(), llm.Request{Prompt: "something else"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Text != "generic answer" {
		t.Errorf("Text = %q, want fallback response", res.Text)
	}

	calls := gen.Calls()
	if len(calls) != 2 {
		t.Fatalf("len(calls) = %d, want 2", len(calls))
	}
	if calls[0].Prompt != "Explain photosynthesis" {
		t.Errorf("recorded prompt = %q", calls[0].Prompt)
	}
}

func TestOrchestrator_MockBackendFatalError(t *testing.T) {
	t.Parallel()

	gen := testutil.NewMockGenerator("unused")
	gen.FailWith(errors.New("invalid request"))

	orch := llm.NewOrchestrator(gen, llm.NewTracker(), "gemini-2.5-flash", []string{"gemini-2.0-flash-lite"})

	if _, err := orch.Generate(context.Background(), llm.Request{Prompt: "q"}); err == nil {
		t.Fatal("expected error from failing backend")
	}
	// A non-rate-limit error must not trigger fallback attempts.
	if got := len(gen.Calls()); got != 1 {
		t.Errorf("len(calls) = %d, want 1", got)
	}
}
