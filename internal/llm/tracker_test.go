package llm

import (
	"errors"
	"testing"
	"time"
)

func newTestTracker(start time.Time) (*Tracker, *time.Time) {
	now := start
	tr := NewTracker()
	tr.now = func() time.Time { return now }
	return tr, &now
}

func TestTrackerPickPrefersPrimary(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTracker(time.Now())
	got, err := tr.Pick("m1", []string{"m2", "m3"})
	if err != nil {
		t.Fatalf("Pick() error = %v", err)
	}
	if got != "m1" {
		t.Errorf("Pick() = %q, want primary m1", got)
	}
}

func TestTrackerCooldownAndLazyExpiry(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr, now := newTestTracker(start)

	tr.MarkUnavailable("m1", 60*time.Second)

	// Ten seconds in, the primary is still cooling down.
	*now = start.Add(10 * time.Second)
	got, err := tr.Pick("m1", []string{"m2"})
	if err != nil {
		t.Fatalf("Pick() error = %v", err)
	}
	if got != "m2" {
		t.Errorf("Pick() at T+10s = %q, want fallback m2", got)
	}

	// Past expiry the primary comes back and its record is cleared.
	*now = start.Add(61 * time.Second)
	got, err = tr.Pick("m1", []string{"m2"})
	if err != nil {
		t.Fatalf("Pick() error = %v", err)
	}
	if got != "m1" {
		t.Errorf("Pick() at T+61s = %q, want m1", got)
	}

	tr.mu.Lock()
	_, stillMarked := tr.until["m1"]
	tr.mu.Unlock()
	if stillMarked {
		t.Error("expired cooldown record for m1 was not cleared on read")
	}
}

func TestTrackerPickFallbackOrder(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTracker(time.Now())
	tr.MarkUnavailable("m1", time.Minute)
	tr.MarkUnavailable("f1", time.Minute)

	got, err := tr.Pick("m1", []string{"f1", "f2"})
	if err != nil {
		t.Fatalf("Pick() error = %v", err)
	}
	if got != "f2" {
		t.Errorf("Pick() = %q, want first available fallback f2", got)
	}
}

func TestTrackerPickAllUnavailable(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTracker(time.Now())
	tr.MarkUnavailable("m1", time.Minute)
	tr.MarkUnavailable("m2", time.Minute)

	_, err := tr.Pick("m1", []string{"m2"})
	if !errors.Is(err, ErrNoModelAvailable) {
		t.Errorf("Pick() error = %v, want ErrNoModelAvailable", err)
	}
}

func TestTrackerMarkOverwrites(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr, now := newTestTracker(start)

	tr.MarkUnavailable("m1", time.Minute)
	tr.MarkUnavailable("m1", 5*time.Second)

	*now = start.Add(6 * time.Second)
	if !tr.Available("m1") {
		t.Error("Available() = false after the overwritten shorter cooldown expired")
	}
}

func TestTrackerClear(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTracker(time.Now())
	tr.MarkUnavailable("m1", time.Hour)
	tr.Clear("m1")
	if !tr.Available("m1") {
		t.Error("Available() = false after Clear()")
	}
}
