package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/emailscout"
)

var (
	_ emailscout.Renderer      = (*LoggingRenderer)(nil)
	_ emailscout.RenderSession = (*loggingSession)(nil)
)

// LoggingRenderer wraps a Renderer so that browser launches and every
// render in the returned sessions are logged.
type LoggingRenderer struct {
	next   emailscout.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next emailscout.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Open delegates to the wrapped renderer and logs the launch.
func (r *LoggingRenderer) Open(ctx context.Context, userAgent string) (emailscout.RenderSession, error) {
	begin := time.Now()
	session, err := r.next.Open(ctx, userAgent)
	r.logger.Debug("browser open",
		"user_agent", userAgent,
		"duration", time.Since(begin),
		"err", err,
	)
	if err != nil {
		return nil, err
	}
	return &loggingSession{next: session, logger: r.logger, opened: begin}, nil
}

type loggingSession struct {
	next   emailscout.RenderSession
	logger *slog.Logger
	opened time.Time
}

func (s *loggingSession) Render(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Render(ctx, url)
}

func (s *loggingSession) Close() (err error) {
	defer func() {
		s.logger.Debug("browser close",
			"lifetime", time.Since(s.opened),
			"err", err,
		)
	}()
	return s.next.Close()
}
