// Package ratelimit provides the shared admission controls for outbound
// dictionary requests: a trailing-window rate limiter and a
// bounded-concurrency gate. Both are constructed explicitly and passed to
// their users so tests can instantiate isolated instances with deterministic
// parameters.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Limiter bounds the aggregate request rate across all concurrent lookups to
// at most maxCalls admissions within any trailing period. Admissions are
// spaced at least period/maxCalls apart, so the bound holds for every
// trailing window, not just the first one after start.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter returns an error for non-positive limits so that a
// misconfiguration fails before any network activity.
func NewLimiter(maxCalls int, period time.Duration) (*Limiter, error) {
	if maxCalls < 1 {
		return nil, fmt.Errorf("maxCalls must be at least 1, got %d", maxCalls)
	}
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %s", period)
	}
	// Round the spacing up so that truncation can never squeeze an extra
	// admission into a window when period is not a multiple of maxCalls.
	interval := period / time.Duration(maxCalls)
	if interval*time.Duration(maxCalls) < period {
		interval++
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Wait blocks until issuing one more request stays within the configured
// budget, or until ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("limiter.Wait > %w", err)
	}
	return nil
}

// Gate caps how many tasks run at once. Separate instances bound whole-word
// resolution and nested phrasal-verb sub-fetches independently.
type Gate struct {
	sem *semaphore.Weighted
}

func NewGate(maxConcurrent int) (*Gate, error) {
	if maxConcurrent < 1 {
		return nil, fmt.Errorf("maxConcurrent must be at least 1, got %d", maxConcurrent)
	}
	return &Gate{sem: semaphore.NewWeighted(int64(maxConcurrent))}, nil
}

// Enter blocks until a slot is free or ctx is done.
func (g *Gate) Enter(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("sem.Acquire > %w", err)
	}
	return nil
}

// Leave releases one slot. It must be called exactly once per successful Enter.
func (g *Gate) Leave() {
	g.sem.Release(1)
}
