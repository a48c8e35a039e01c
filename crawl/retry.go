package crawl

import (
	"context"
	"log/slog"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// BackoffDelays returns n doubling delays starting at one second:
// 1s, 2s, 4s, ... A non-positive n means no retries.
func BackoffDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// FetchWithRetry calls fetch once, then once more after each of delays
// while it keeps failing. With no delays it is a single attempt.
// Each retry is logged at debug level if logger is non-nil.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger.Debug("retrying fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return "", lastErr
}
