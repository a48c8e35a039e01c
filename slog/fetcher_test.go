package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/emailscout/mock"
	scoutslog "github.com/fwojciec/emailscout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// debugLogger returns a text logger that records debug output in buf.
func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := scoutslog.NewLoggingFetcher(inner, debugLogger(&buf))
		html, err := fetcher.Fetch(context.Background(), "https://example.com/contact")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/contact")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("HTTP 403 for https://example.com")
			},
		}

		fetcher := scoutslog.NewLoggingFetcher(inner, debugLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="HTTP 403 for https://example.com"`)
	})

	t.Run("stays quiet above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "ok", nil
			},
		}

		_, err := scoutslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
