package llm

import (
	"sync"
	"time"
)

// Tracker records which models are in rate-limit cooldown and until
// when. One instance is shared by everything that generates; entries
// expire lazily on read.
//
// Tracker is safe for concurrent use by multiple goroutines.
type Tracker struct {
	mu    sync.Mutex
	until map[string]time.Time

	// now is replaced in tests for deterministic expiry checks.
	now func() time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		until: make(map[string]time.Time),
		now:   time.Now,
	}
}

// MarkUnavailable puts the model in cooldown for the given duration,
// overwriting any earlier expiry.
func (t *Tracker) MarkUnavailable(model string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.until[model] = t.now().Add(d)
}

// Clear removes any cooldown record for the model.
func (t *Tracker) Clear(model string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.until, model)
}

// Available reports whether the model is currently usable, clearing a
// stale record if its cooldown has expired.
func (t *Tracker) Available(model string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.availableLocked(model)
}

func (t *Tracker) availableLocked(model string) bool {
	expiry, marked := t.until[model]
	if !marked {
		return true
	}
	if t.now().After(expiry) {
		delete(t.until, model)
		return true
	}
	return false
}

// Pick returns the primary model if it is usable, otherwise the first
// usable fallback in priority order. ErrNoModelAvailable means every
// candidate is in cooldown.
func (t *Tracker) Pick(primary string, fallbacks []string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.availableLocked(primary) {
		return primary, nil
	}
	for _, model := range fallbacks {
		if t.availableLocked(model) {
			return model, nil
		}
	}
	return "", ErrNoModelAvailable
}
