package crawl

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fwojciec/emailscout"
)

var _ emailscout.Sleeper = (*RandomSleeper)(nil)

// RandomSleeper waits a uniformly random duration so request timing does
// not follow a fixed rhythm. It is safe for concurrent use.
type RandomSleeper struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSleeper creates a RandomSleeper drawing from rng.
// A nil rng gets a randomly seeded source.
func NewRandomSleeper(rng *rand.Rand) *RandomSleeper {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomSleeper{rng: rng}
}

// Sleep blocks for a duration in [min, max], returning early with the
// context's error if ctx is done first.
func (s *RandomSleeper) Sleep(ctx context.Context, min, max time.Duration) error {
	d := s.Duration(min, max)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Duration draws the next delay in [min, max]. When max <= min it
// returns min.
func (s *RandomSleeper) Duration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + time.Duration(s.rng.Int64N(int64(max-min)+1))
}
