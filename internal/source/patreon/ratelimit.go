package patreon

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outgoing requests.
type Limiter interface {
	Wait(ctx context.Context) error
}

// NewRateLimiter allows one request per delay with no bursting, which keeps a
// strictly sequential caller at least delay apart between requests.
func NewRateLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

type unlimited struct{}

func (unlimited) Wait(context.Context) error { return nil }

// Unlimited never blocks. Useful for tests and replay tooling.
var Unlimited Limiter = unlimited{}
