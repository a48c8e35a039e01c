// Package rod implements the emailscout rendering fallback with go-rod,
// driving a real Chrome instance for pages that need JavaScript or block
// plain HTTP clients.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/emailscout"
)

// DefaultSettleDelay is how long a page is left to run scripts after the
// load event before its DOM is captured.
const DefaultSettleDelay = 5 * time.Second

// DefaultRenderTimeout bounds a single navigation, settle delay included.
const DefaultRenderTimeout = 45 * time.Second

// Ensure Renderer implements emailscout.Renderer at compile time.
var _ emailscout.Renderer = (*Renderer)(nil)

// Renderer launches one Chrome instance per session.
type Renderer struct {
	settle   time.Duration
	timeout  time.Duration
	headless bool
	bin      string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSettleDelay sets the wait after page load.
// Defaults to DefaultSettleDelay (5s) if not specified.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.settle = d
	}
}

// WithRenderTimeout sets the per-page timeout.
// Defaults to DefaultRenderTimeout (45s) if not specified.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithHeadless controls whether Chrome runs without a window.
// Defaults to true.
func WithHeadless(headless bool) Option {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// WithBrowserBin uses the given Chrome binary instead of letting the
// launcher find or download one.
func WithBrowserBin(path string) Option {
	return func(r *Renderer) {
		r.bin = path
	}
}

// NewRenderer creates a new Renderer. No browser is started until Open.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		settle:   DefaultSettleDelay,
		timeout:  DefaultRenderTimeout,
		headless: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open launches Chrome presenting userAgent. The returned session must be
// closed by the caller.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func (r *Renderer) Open(ctx context.Context, userAgent string) (emailscout.RenderSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := launchSession(r, userAgent)
	if err != nil {
		return nil, err
	}
	return s, nil
}
