package llm

import (
	"errors"
	"testing"
	"time"
)

func TestIsRateLimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "http 429", err: errors.New("googleapi: Error 429: Resource has been exhausted"), want: true},
		{name: "grpc status", err: errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), want: true},
		{name: "quota prose", err: errors.New("quota exceeded for quota metric"), want: true},
		{name: "rate limit prose", err: errors.New("you are being rate limited"), want: true},
		{name: "underscore marker", err: errors.New("RATE_LIMIT hit for project"), want: true},
		{name: "plain failure", err: errors.New("connection reset by peer"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isRateLimited(tt.err); got != tt.want {
				t.Errorf("isRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsDailyQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "zero remaining", err: errors.New("429: quota exceeded, limit: 0"), want: true},
		{name: "per day metric", err: errors.New("GenerateRequestsPerDayPerProjectPerModel exceeded"), want: true},
		{name: "per_day metric", err: errors.New("quota metric requests_per_day exceeded"), want: true},
		{name: "per minute limit", err: errors.New("429: rate limit, retry in 12s"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isDailyQuota(tt.err); got != tt.want {
				t.Errorf("isDailyQuota(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryDelay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want time.Duration
	}{
		{name: "integer seconds", err: errors.New("429: please retry in 12s"), want: 13 * time.Second},
		{name: "fractional seconds", err: errors.New("429: Please retry in 7.5s"), want: 7500*time.Millisecond + time.Second},
		{name: "space before unit", err: errors.New("retry in 3 s"), want: 4 * time.Second},
		{name: "no hint", err: errors.New("429: too many requests"), want: defaultRetryDelay},
		{name: "nil", err: nil, want: defaultRetryDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := retryDelay(tt.err); got != tt.want {
				t.Errorf("retryDelay(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
