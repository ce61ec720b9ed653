package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/biomentor-ai/biomentor/internal/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedGenerator returns its outcomes in order, recording which model
// served each call. The last outcome repeats if calls continue.
type scriptedGenerator struct {
	outcomes []scriptedOutcome
	calls    []string
}

type scriptedOutcome struct {
	text string
	err  error
}

func (s *scriptedGenerator) Generate(_ context.Context, model string, _ Request) (string, error) {
	s.calls = append(s.calls, model)
	i := len(s.calls) - 1
	if i >= len(s.outcomes) {
		i = len(s.outcomes) - 1
	}
	return s.outcomes[i].text, s.outcomes[i].err
}

// newTestOrchestrator builds an orchestrator with instant sleeps,
// recording every requested backoff duration.
func newTestOrchestrator(gen Generator, tr *Tracker, opts ...OrchestratorOption) (*Orchestrator, *[]time.Duration) {
	var slept []time.Duration
	opts = append(opts, WithOrchestratorLogger(log.NewNop()))
	o := NewOrchestrator(gen, tr, "m1", []string{"m2", "m3"}, opts...)
	o.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return o, &slept
}

func TestOrchestratorSuccessFirstTry(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{outcomes: []scriptedOutcome{{text: "answer"}}}
	o, slept := newTestOrchestrator(gen, NewTracker())

	got, err := o.Generate(context.Background(), Request{Prompt: "q"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Text != "answer" || got.Model != "m1" {
		t.Errorf("Generate() = %+v, want answer from m1", got)
	}
	if len(*slept) != 0 {
		t.Errorf("Generate() slept %v, want no backoff", *slept)
	}
}

func TestOrchestratorSuccessClearsCooldown(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	// A stale record that happens to be expired: success must remove it.
	tr.MarkUnavailable("m1", -time.Second)

	gen := &scriptedGenerator{outcomes: []scriptedOutcome{{text: "ok"}}}
	o, _ := newTestOrchestrator(gen, tr)

	if _, err := o.Generate(context.Background(), Request{Prompt: "q"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	tr.mu.Lock()
	_, marked := tr.until["m1"]
	tr.mu.Unlock()
	if marked {
		t.Error("cooldown record survived a successful call")
	}
}

func TestOrchestratorTransientRetrySameModel(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{outcomes: []scriptedOutcome{
		{err: errors.New("429: rate limit, retry in 2s")},
		{text: "recovered"},
	}}
	o, slept := newTestOrchestrator(gen, NewTracker())

	got, err := o.Generate(context.Background(), Request{Prompt: "q"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Text != "recovered" || got.Model != "m1" {
		t.Errorf("Generate() = %+v, want recovery on m1", got)
	}
	if len(gen.calls) != 2 || gen.calls[0] != "m1" || gen.calls[1] != "m1" {
		t.Errorf("calls = %v, want two attempts on m1", gen.calls)
	}
	if len(*slept) != 1 || (*slept)[0] != 3*time.Second {
		t.Errorf("slept = %v, want one parsed 2s+1s buffer backoff", *slept)
	}
}

func TestOrchestratorTransientExhaustsAttempts(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{outcomes: []scriptedOutcome{
		{err: errors.New("429: rate limit, retry in 2s")},
	}}
	tr := NewTracker()
	o, slept := newTestOrchestrator(gen, tr)

	_, err := o.Generate(context.Background(), Request{Prompt: "q"})
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("Generate() error = %v, want ErrAttemptsExhausted", err)
	}
	if len(gen.calls) != DefaultMaxAttempts {
		t.Errorf("made %d calls, want %d", len(gen.calls), DefaultMaxAttempts)
	}
	// Two sleeps: between attempts 1-2 and 2-3; the final failure
	// sidelines the model instead of sleeping.
	if len(*slept) != DefaultMaxAttempts-1 {
		t.Errorf("slept %d times, want %d", len(*slept), DefaultMaxAttempts-1)
	}
	if tr.Available("m1") {
		t.Error("m1 should be in cooldown after exhausting attempts")
	}
}

func TestOrchestratorDailyQuotaSwitchesModel(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{outcomes: []scriptedOutcome{
		{err: errors.New("429: quota exceeded, limit: 0, requests per_day")},
		{text: "from fallback"},
	}}
	tr := NewTracker()
	o, slept := newTestOrchestrator(gen, tr)

	got, err := o.Generate(context.Background(), Request{Prompt: "q"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Model != "m2" {
		t.Errorf("Generate() served by %q, want fallback m2", got.Model)
	}
	if len(*slept) != 0 {
		t.Errorf("slept = %v, want no backoff on a model switch", *slept)
	}
	if tr.Available("m1") {
		t.Error("m1 should be in long cooldown after daily quota exhaustion")
	}
}

func TestOrchestratorDailyQuotaDoesNotConsumeAttempts(t *testing.T) {
	t.Parallel()

	// Two daily-quota switches, then a transient failure cycle on the
	// last model: the full attempt budget must still be available.
	daily := errors.New("429: quota exceeded, limit: 0")
	transient := errors.New("429: rate limit, retry in 1s")
	gen := &scriptedGenerator{outcomes: []scriptedOutcome{
		{err: daily},
		{err: daily},
		{err: transient},
		{err: transient},
		{text: "third attempt"},
	}}
	o, _ := newTestOrchestrator(gen, NewTracker())

	got, err := o.Generate(context.Background(), Request{Prompt: "q"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Model != "m3" {
		t.Errorf("Generate() served by %q, want m3", got.Model)
	}
	if len(gen.calls) != 5 {
		t.Errorf("made %d calls, want 5 (two switches plus three attempts)", len(gen.calls))
	}
}

func TestOrchestratorFatalErrorNoRetry(t *testing.T) {
	t.Parallel()

	fatal := errors.New("invalid request: prompt blocked")
	gen := &scriptedGenerator{outcomes: []scriptedOutcome{{err: fatal}}}
	o, slept := newTestOrchestrator(gen, NewTracker())

	_, err := o.Generate(context.Background(), Request{Prompt: "q"})
	if !errors.Is(err, fatal) {
		t.Fatalf("Generate() error = %v, want wrapped fatal error", err)
	}
	if len(gen.calls) != 1 {
		t.Errorf("made %d calls, want 1 (no retry on non-rate-limit errors)", len(gen.calls))
	}
	if len(*slept) != 0 {
		t.Errorf("slept = %v, want none", *slept)
	}
}

func TestOrchestratorAllModelsUnavailable(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	for _, m := range []string{"m1", "m2", "m3"} {
		tr.MarkUnavailable(m, time.Hour)
	}
	gen := &scriptedGenerator{outcomes: []scriptedOutcome{{text: "unreachable"}}}
	o, _ := newTestOrchestrator(gen, tr)

	_, err := o.Generate(context.Background(), Request{Prompt: "q"})
	if !errors.Is(err, ErrNoModelAvailable) {
		t.Fatalf("Generate() error = %v, want ErrNoModelAvailable", err)
	}
	if len(gen.calls) != 0 {
		t.Errorf("made %d calls, want none when every model is cooling down", len(gen.calls))
	}
}

func TestOrchestratorBackoffHonorsCancellation(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{outcomes: []scriptedOutcome{
		{err: errors.New("429: rate limit, retry in 30s")},
	}}
	o, _ := newTestOrchestrator(gen, NewTracker())
	o.sleep = sleepCtx

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Generate(ctx, Request{Prompt: "q"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
}
