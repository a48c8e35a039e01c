package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/emailscout"
)

// Ensure LoggingSitemapService implements emailscout.SitemapService.
var _ emailscout.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   emailscout.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next emailscout.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how many
// contact-like URLs the sitemap produced.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *emailscout.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("sitemap discovery",
			"site", baseURL,
			"matched", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
