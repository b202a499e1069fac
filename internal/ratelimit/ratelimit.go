// Package ratelimit implements a fixed-window request counter keyed by client.
package ratelimit

import (
	"context"
	"time"
)

// Store increments the counter for key inside the current window and reports
// the new count with the time left until the window resets.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Result describes the outcome of a single Consume call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

// Limiter allows at most Points requests per Window for each key.
type Limiter struct {
	store  Store
	points int
	window time.Duration
}

// New creates a Limiter.
func New(store Store, points int, window time.Duration) *Limiter {
	return &Limiter{store: store, points: points, window: window}
}

// Consume counts one request for key.
// On a store error the request is allowed and the error is returned for logging.
func (l *Limiter) Consume(ctx context.Context, key string) (Result, error) {
	count, ttl, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return Result{Allowed: true, Limit: l.points, Remaining: l.points, ResetAfter: l.window}, err
	}

	if ttl <= 0 {
		ttl = l.window
	}

	remaining := l.points - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:    count <= int64(l.points),
		Limit:      l.points,
		Remaining:  remaining,
		ResetAfter: ttl,
	}, nil
}
