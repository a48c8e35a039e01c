package mock

import (
	"context"
	"time"

	"github.com/fwojciec/emailscout"
)

var _ emailscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of emailscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ emailscout.Sleeper = (*Sleeper)(nil)

// Sleeper is a mock implementation of emailscout.Sleeper.
type Sleeper struct {
	SleepFn func(ctx context.Context, min, max time.Duration) error
}

func (s *Sleeper) Sleep(ctx context.Context, min, max time.Duration) error {
	return s.SleepFn(ctx, min, max)
}
