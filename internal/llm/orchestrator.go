package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMaxAttempts bounds generation attempts per logical call,
// across all models tried.
const DefaultMaxAttempts = 3

// Orchestrator drives one generation call through model selection,
// retry with parsed backoff, and fallback. The flow per call:
//
//	pick model → invoke → success? done.
//	  rate-limited (daily quota)  → hour-long cooldown, next model,
//	                                attempt not consumed
//	  rate-limited (per-minute)   → sleep the suggested delay, retry the
//	                                same model while attempts remain;
//	                                then cooldown and ErrAttemptsExhausted
//	  anything else               → fail immediately, no retry
//
// Orchestrator is safe for concurrent use; concurrent calls share the
// tracker and rate limiter.
type Orchestrator struct {
	gen         Generator
	tracker     *Tracker
	primary     string
	fallbacks   []string
	maxAttempts int
	limiter     *rate.Limiter
	logger      *slog.Logger

	// sleep is replaced in tests so backoff is deterministic.
	sleep func(ctx context.Context, d time.Duration) error
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithMaxAttempts overrides the per-call attempt budget.
func WithMaxAttempts(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithRateLimiter throttles outbound generation calls process-wide.
func WithRateLimiter(l *rate.Limiter) OrchestratorOption {
	return func(o *Orchestrator) { o.limiter = l }
}

// WithOrchestratorLogger sets the orchestrator logger.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator wires a generator to the shared availability tracker
// with a primary model and ordered fallbacks.
func NewOrchestrator(gen Generator, tracker *Tracker, primary string, fallbacks []string, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		gen:         gen,
		tracker:     tracker,
		primary:     primary,
		fallbacks:   fallbacks,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate runs the resilient call flow and returns the first
// successful result. Errors are sentinel-wrapped so callers can decide
// how to degrade; they never contain user-facing text.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	attempts := 0
	var lastErr error

	for attempts < o.maxAttempts {
		model, err := o.tracker.Pick(o.primary, o.fallbacks)
		if err != nil {
			return Result{}, fmt.Errorf("selecting model: %w", err)
		}

		// Inner loop retries the same model on transient limits.
		for {
			if o.limiter != nil {
				if err := o.limiter.Wait(ctx); err != nil {
					return Result{}, fmt.Errorf("waiting for rate limiter: %w", err)
				}
			}

			attempts++
			text, err := o.gen.Generate(ctx, model, req)
			if err == nil {
				o.tracker.Clear(model)
				return Result{Text: text, Model: model}, nil
			}
			lastErr = err

			if !isRateLimited(err) {
				return Result{}, fmt.Errorf("generating with %s: %w", model, err)
			}

			if isDailyQuota(err) {
				// Switching models costs nothing against the budget.
				attempts--
				o.tracker.MarkUnavailable(model, dailyQuotaCooldown)
				o.logger.Warn("daily quota exhausted, switching model",
					"model", model, "cooldown", dailyQuotaCooldown)
				break
			}

			delay := retryDelay(err)
			if attempts >= o.maxAttempts {
				o.tracker.MarkUnavailable(model, delay)
				o.logger.Warn("rate limited with no attempts left",
					"model", model, "cooldown", delay)
				return Result{}, fmt.Errorf("%w: %w", ErrAttemptsExhausted, lastErr)
			}

			o.logger.Info("rate limited, retrying",
				"model", model, "delay", delay, "attempt", attempts)
			if err := o.sleep(ctx, delay); err != nil {
				return Result{}, fmt.Errorf("backoff interrupted: %w", err)
			}
		}
	}

	return Result{}, fmt.Errorf("%w: %w", ErrAttemptsExhausted, lastErr)
}

// sleepCtx sleeps for d or until the context is done, whichever comes
// first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
