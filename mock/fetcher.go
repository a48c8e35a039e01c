package mock

import (
	"context"

	"github.com/fwojciec/emailscout"
)

var _ emailscout.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of emailscout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ emailscout.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of emailscout.Renderer.
type Renderer struct {
	OpenFn func(ctx context.Context, userAgent string) (emailscout.RenderSession, error)
}

func (r *Renderer) Open(ctx context.Context, userAgent string) (emailscout.RenderSession, error) {
	return r.OpenFn(ctx, userAgent)
}

var _ emailscout.RenderSession = (*RenderSession)(nil)

// RenderSession is a mock implementation of emailscout.RenderSession.
type RenderSession struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (s *RenderSession) Render(ctx context.Context, url string) (string, error) {
	return s.RenderFn(ctx, url)
}

func (s *RenderSession) Close() error {
	return s.CloseFn()
}

var _ emailscout.UserAgentProvider = (*UserAgentProvider)(nil)

// UserAgentProvider is a mock implementation of emailscout.UserAgentProvider.
type UserAgentProvider struct {
	UserAgentFn func() string
}

func (p *UserAgentProvider) UserAgent() string {
	return p.UserAgentFn()
}

var _ emailscout.PolicyChecker = (*PolicyChecker)(nil)

// PolicyChecker is a mock implementation of emailscout.PolicyChecker.
type PolicyChecker struct {
	CanScrapeFn func(ctx context.Context, url string) bool
}

func (p *PolicyChecker) CanScrape(ctx context.Context, url string) bool {
	return p.CanScrapeFn(ctx, url)
}
