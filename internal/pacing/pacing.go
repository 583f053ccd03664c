// Package pacing spaces out outbound requests to short-link hosts.
package pacing

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Pacer blocks between network-bound operations.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Fixed pauses for the same duration on every call.
type Fixed time.Duration

// Wait sleeps for the fixed duration or until ctx is done. A non-positive
// duration returns immediately.
func (f Fixed) Wait(ctx context.Context) error {
	d := time.Duration(f)
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "pacing: wait cancelled")
	case <-t.C:
		return nil
	}
}

// None never pauses.
var None Pacer = Fixed(0)

// Rate keeps successive calls at least one interval apart, measured from the
// previous call rather than slept unconditionally.
type Rate struct {
	limiter *rate.Limiter
}

// NewRate creates a Rate allowing one call per interval with the given burst.
func NewRate(every time.Duration, burst int) *Rate {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if every > 0 {
		limit = rate.Every(every)
	}
	return &Rate{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until the limiter admits another call.
func (r *Rate) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "pacing: rate limiter wait")
	}
	return nil
}

// FromConfig builds a Pacer for the given mode ("fixed" or "rate").
func FromConfig(mode string, delay time.Duration) (Pacer, error) {
	switch mode {
	case "", "fixed":
		return Fixed(delay), nil
	case "rate":
		return NewRate(delay, 1), nil
	default:
		return nil, eris.Errorf("pacing: unknown mode %q", mode)
	}
}
