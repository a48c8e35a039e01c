package crawl_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/fwojciec/emailscout/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSleeper(t *testing.T) {
	t.Parallel()

	t.Run("draws durations within the range", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewRandomSleeper(rand.New(rand.NewPCG(1, 2)))

		for range 1000 {
			d := s.Duration(3*time.Second, 7*time.Second)
			assert.GreaterOrEqual(t, d, 3*time.Second)
			assert.LessOrEqual(t, d, 7*time.Second)
		}
	})

	t.Run("returns min when the range is empty", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewRandomSleeper(nil)

		assert.Equal(t, time.Second, s.Duration(time.Second, time.Second))
		assert.Equal(t, time.Second, s.Duration(time.Second, 0))
	})

	t.Run("sleeps for the drawn duration", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewRandomSleeper(nil)

		start := time.Now()
		err := s.Sleep(context.Background(), 20*time.Millisecond, 30*time.Millisecond)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("returns early when the context is canceled", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewRandomSleeper(nil)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := s.Sleep(ctx, time.Minute, 2*time.Minute)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})
}
