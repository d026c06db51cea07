// Package worker holds the concurrency primitives around the pipeline:
// request pacing for the insight service, the batch pool, and the
// single-flight guard for full passes.
package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive requests to the insight service. The
// provider rate-limits per API key, so one limiter covers the whole
// process; the fixed inter-request delay rides on top of it.
type Pacer struct {
	limiter *rate.Limiter
	delay   time.Duration
}

// NewPacer creates a pacer allowing requestsPerSecond sustained with
// the given burst, plus a fixed delay between consecutive requests.
func NewPacer(requestsPerSecond float64, burst int, delay time.Duration) *Pacer {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		delay:   delay,
	}
}

// Wait blocks until the next request may go out, or until the context
// is done. The inter-request delay applies after limiter clearance so
// cancellation interrupts both phases.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}
	}

	return nil
}

// Allow reports whether a request could go out right now, without
// waiting. The fixed delay is not consulted.
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}
