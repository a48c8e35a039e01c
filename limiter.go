package emailscout

import (
	"context"
	"time"
)

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Sleeper pauses for a random duration between polite requests.
type Sleeper interface {
	// Sleep blocks for a duration drawn uniformly from [min, max].
	// Returns the context error if ctx ends first.
	Sleep(ctx context.Context, min, max time.Duration) error
}
