package mock

import (
	"context"

	"github.com/fwojciec/emailscout"
)

var _ emailscout.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of emailscout.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *emailscout.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *emailscout.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
