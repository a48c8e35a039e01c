package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/emailscout"
)

// Ensure LoggingPolicy implements emailscout.PolicyChecker.
var _ emailscout.PolicyChecker = (*LoggingPolicy)(nil)

// LoggingPolicy wraps a PolicyChecker with debug logging.
type LoggingPolicy struct {
	next   emailscout.PolicyChecker
	logger *slog.Logger
}

// NewLoggingPolicy creates a new LoggingPolicy.
func NewLoggingPolicy(next emailscout.PolicyChecker, logger *slog.Logger) *LoggingPolicy {
	return &LoggingPolicy{next: next, logger: logger}
}

// CanScrape delegates to the wrapped checker and logs the decision.
func (p *LoggingPolicy) CanScrape(ctx context.Context, url string) (allowed bool) {
	defer func(begin time.Time) {
		p.logger.Debug("robots check",
			"url", url,
			"allowed", allowed,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.CanScrape(ctx, url)
}
