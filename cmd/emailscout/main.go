package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/emailscout"
	"github.com/fwojciec/emailscout/chromedp"
	"github.com/fwojciec/emailscout/crawl"
	"github.com/fwojciec/emailscout/fs"
	"github.com/fwojciec/emailscout/goquery"
	scouthttp "github.com/fwojciec/emailscout/http"
	"github.com/fwojciec/emailscout/rod"
	scoutslog "github.com/fwojciec/emailscout/slog"
	"github.com/fwojciec/emailscout/sqlite"
	"github.com/fwojciec/emailscout/useragent"
)

// robotsAgent is the product token matched against robots.txt groups in
// strict mode.
const robotsAgent = "emailscout"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// DB is the results database when the output is SQLite.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// commands are the subcommand names, for routing --help.
var commands = []string{"scrape", "runs", "results"}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defer m.Close()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("emailscout"),
		kong.Description("Collect contact email addresses from a list of websites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Kong's help hook would otherwise fall through to a crawl.
	if slices.ContainsFunc(args, func(a string) bool { return a == "--help" || a == "-h" || a == "help" }) {
		helpArgs := []string{"--help"}
		if len(args) > 0 && slices.Contains(commands, args[0]) {
			helpArgs = []string{args[0], "--help"}
		}
		_, _ = parser.Parse(helpArgs)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	var command string
	if f := strings.Fields(kongCtx.Command()); len(f) > 0 {
		command = f[0]
	}

	switch command {
	case "runs":
		if deps.Results, err = m.openDB(cli.Runs.Path); err != nil {
			return err
		}
	case "results":
		if deps.Results, err = m.openDB(cli.Results.Path); err != nil {
			return err
		}
	default:
		if err := m.wireScrape(&cli.Scrape, deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// openDB opens an existing results database.
func (m *Main) openDB(path string) (*sqlite.DB, error) {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open results database at %q: %w", path, err)
	}
	return m.DB, nil
}

// wireScrape builds the crawl services for the scrape command.
func (m *Main) wireScrape(cmd *ScrapeCmd, deps *Dependencies) error {
	if cmd.Concurrency < 1 {
		return emailscout.Errorf(emailscout.EINVALID, "concurrency must be at least 1")
	}
	if cmd.Retries < 0 {
		return emailscout.Errorf(emailscout.EINVALID, "retries cannot be negative")
	}

	logger := newLogger(deps.Stderr, cmd.Verbose)
	deps.Logger = logger
	deps.Source = fs.NewCSVSource(cmd.Input)

	var err error
	if deps.Sink, err = m.openSink(cmd.Output, cmd.Input, logger); err != nil {
		return err
	}

	scraper, err := newStrategy(cmd, logger)
	if err != nil {
		return err
	}

	deps.Crawler = &crawl.Orchestrator{
		Scraper:     scraper,
		Sink:        deps.Sink,
		Sleeper:     crawl.NewRandomSleeper(nil),
		Concurrency: cmd.Concurrency,
		Logger:      logger,
	}
	return nil
}

// newLogger returns a logger writing timestamped lines to w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return slog.New(handler)
}

// openSink picks the result sink from the output file's extension.
func (m *Main) openSink(output, input string, logger *slog.Logger) (emailscout.ResultSink, error) {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".db", ".sqlite", ".sqlite3":
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		m.DB = sqlite.NewDB(output)
		if err := m.DB.Open(); err != nil {
			return nil, err
		}
		sink := sqlite.NewResultSink(m.DB, input)
		logger.Info("storing results in sqlite", "path", output, "run", sink.RunID())
		return sink, nil
	default:
		return fs.NewCSVSink(output), nil
	}
}

// newStrategy wires the per-site scraper from the scrape flags.
func newStrategy(cmd *ScrapeCmd, logger *slog.Logger) (*crawl.Strategy, error) {
	agents, err := useragent.Load(cmd.UserAgents)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: scouthttp.DefaultFetchTimeout}

	var robotsOpts []scouthttp.RobotsOption
	if cmd.StrictRobots {
		robotsOpts = append(robotsOpts, scouthttp.WithStrictRules(robotsAgent))
	}

	var fetcher emailscout.Fetcher = scouthttp.NewFetcher(agents)
	var policy emailscout.PolicyChecker = scouthttp.NewRobotsChecker(client, robotsOpts...)

	var render emailscout.Renderer
	switch cmd.Engine {
	case "rod":
		render = rod.NewRenderer(rod.WithHeadless(cmd.Headless))
	case "chromedp":
		render = chromedp.NewRenderer(chromedp.WithHeadless(cmd.Headless))
	}

	var sitemaps emailscout.SitemapService
	if cmd.Sitemap {
		sitemaps = scouthttp.NewSitemapService(client)
	}

	if cmd.Verbose {
		fetcher = scoutslog.NewLoggingFetcher(fetcher, logger)
		policy = scoutslog.NewLoggingPolicy(policy, logger)
		if render != nil {
			render = scoutslog.NewLoggingRenderer(render, logger)
		}
		if sitemaps != nil {
			sitemaps = scoutslog.NewLoggingSitemapService(sitemaps, logger)
		}
	}

	return &crawl.Strategy{
		Policy:      policy,
		Fetcher:     fetcher,
		Extractor:   goquery.NewEmailExtractor(),
		Locator:     goquery.NewContactLocator(),
		UserAgents:  agents,
		Sleeper:     crawl.NewRandomSleeper(nil),
		Renderer:    render,
		Sitemaps:    sitemaps,
		RateLimiter: crawl.NewDomainLimiter(crawl.DefaultHostInterval),
		RetryDelays: crawl.BackoffDelays(cmd.Retries),
		Logger:      logger,
	}, nil
}
