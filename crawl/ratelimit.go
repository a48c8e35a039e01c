package crawl

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/emailscout"
	"golang.org/x/time/rate"
)

// DefaultHostInterval is the minimum gap between two requests to one host.
const DefaultHostInterval = 2 * time.Second

var _ emailscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to each host using token buckets.
// Every host gets its own limiter so concurrent crawls of different
// sites do not slow each other down.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing one request per
// interval to each host, with no bursting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(interval),
	}
}

// Wait blocks until the host's limiter grants a request.
// Host names are compared case-insensitively.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	domain = strings.ToLower(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.every, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
