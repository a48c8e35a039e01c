// Package useragent supplies randomized browser user-agent strings drawn
// from the uarand catalogue, a user-supplied file, or a built-in list.
package useragent

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/corpix/uarand"
	"github.com/fwojciec/emailscout"
)

// Ensure Provider implements emailscout.UserAgentProvider at compile time.
var _ emailscout.UserAgentProvider = (*Provider)(nil)

// Defaults is the built-in pool used when no other source has entries.
var Defaults = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36 Edg/129.0.0.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:131.0) Gecko/20100101 Firefox/131.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14.7; rv:131.0) Gecko/20100101 Firefox/131.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:131.0) Gecko/20100101 Firefox/131.0",
}

// maxFileBytes caps the size of a user-agent file.
const maxFileBytes = 1 << 20

// Provider picks a user agent uniformly at random on every call.
// It is safe for concurrent use.
type Provider struct {
	rng    *rand.Rand
	agents *uarand.UARand
}

// Option configures a Provider.
type Option func(*Provider)

// WithRand sets the random source. Tests use a seeded source for
// reproducible picks.
func WithRand(r *rand.Rand) Option {
	return func(p *Provider) {
		p.rng = r
	}
}

// New creates a Provider over agents. An empty pool uses the uarand
// catalogue, and Defaults if that is empty too.
func New(agents []string, opts ...Option) *Provider {
	p := &Provider{}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p.agents = &uarand.UARand{
		Randomizer: randomizer{p.rng},
		UserAgents: pool(agents, uarand.UserAgents),
	}
	return p
}

// pool returns the first non-empty of agents, catalogue and Defaults.
func pool(agents, catalogue []string) []string {
	switch {
	case len(agents) > 0:
		return agents
	case len(catalogue) > 0:
		return catalogue
	default:
		return Defaults
	}
}

// randomizer adapts a math/rand/v2 source to uarand.Randomizer.
type randomizer struct {
	*rand.Rand
}

func (r randomizer) Intn(n int) int {
	return r.IntN(n)
}

// Load reads one user agent per line from path, ignoring blank lines and
// lines starting with '#'. A missing file is not an error: the provider
// falls back to the catalogue, as it does for a file with no entries.
func Load(path string, opts ...Option) (*Provider, error) {
	if path == "" {
		return New(nil, opts...), nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return New(nil, opts...), nil
	} else if err != nil {
		return nil, fmt.Errorf("opening user agents: %w", err)
	}
	defer f.Close()

	var agents []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxFileBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		agents = append(agents, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading user agents: %w", err)
	}

	return New(agents, opts...), nil
}

// UserAgent returns a randomly chosen user agent.
func (p *Provider) UserAgent() string {
	return p.agents.GetRandom()
}

// Len returns the size of the pool.
func (p *Provider) Len() int {
	return len(p.agents.UserAgents)
}
