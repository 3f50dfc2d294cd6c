package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles how often extractor processes are launched. A nil
// Limiter never waits.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing perSecond launches with the given
// burst. It returns nil, meaning unlimited, when perSecond is not positive.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until a launch is allowed or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether a launch is allowed now, consuming a token if so
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}
