package llm

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors surfaced by the orchestrator. Callers treat both as a
// signal to serve a degraded response; they are never shown to end users.
var (
	// ErrNoModelAvailable means every configured model is in cooldown.
	ErrNoModelAvailable = errors.New("no generation model available")
	// ErrAttemptsExhausted means the per-call attempt budget ran out
	// before any model produced a result.
	ErrAttemptsExhausted = errors.New("generation attempts exhausted")
)

const (
	// defaultRetryDelay is used when a rate-limit error carries no
	// parseable retry hint.
	defaultRetryDelay = 5 * time.Second
	// retryDelayBuffer pads the backend's suggested delay so we do not
	// retry a hair before the window reopens.
	retryDelayBuffer = time.Second
	// dailyQuotaCooldown sidelines a model whose daily quota is spent.
	dailyQuotaCooldown = time.Hour
)

// rateLimitMarkers identify capacity errors across the backend's error
// shapes (HTTP status text, gRPC status names, prose messages).
var rateLimitMarkers = []string{
	"429",
	"quota",
	"resource_exhausted",
	"rate limit",
	"rate_limit",
}

// dailyQuotaMarkers distinguish a spent daily quota from a per-minute
// limit. "limit: 0" appears when the remaining daily allowance is zero.
var dailyQuotaMarkers = []string{
	"limit: 0",
	"per_day",
	"perday",
}

// retryDelayPattern matches the backend's "retry in 7.52s" hint.
var retryDelayPattern = regexp.MustCompile(`retry in (\d+(?:\.\d+)?)\s*s`)

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isDailyQuota(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range dailyQuotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// retryDelay extracts the backend's suggested wait from a rate-limit
// error, padded with a safety buffer. Unparseable errors get the default.
func retryDelay(err error) time.Duration {
	if err == nil {
		return defaultRetryDelay
	}
	m := retryDelayPattern.FindStringSubmatch(strings.ToLower(err.Error()))
	if len(m) < 2 {
		return defaultRetryDelay
	}
	seconds, parseErr := strconv.ParseFloat(m[1], 64)
	if parseErr != nil {
		return defaultRetryDelay
	}
	return time.Duration(seconds*float64(time.Second)) + retryDelayBuffer
}
