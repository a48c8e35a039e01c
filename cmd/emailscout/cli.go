package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/emailscout"
)

// Crawler runs the scrape over a list of sites. *crawl.Orchestrator
// implements it.
type Crawler interface {
	Run(ctx context.Context, sites []string, progress emailscout.CrawlProgressFunc) ([]*emailscout.ScrapeResult, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Source  emailscout.SiteSource
	Sink    emailscout.ResultSink
	Crawler Crawler

	// Results reads a SQLite results file for the runs and results commands.
	Results emailscout.ResultStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape  ScrapeCmd  `cmd:"" default:"withargs" help:"Scrape sites for contact emails (default)"`
	Runs    RunsCmd    `cmd:"" help:"List the crawl runs stored in a SQLite results file"`
	Results ResultsCmd `cmd:"" help:"Show the stored results of one run"`
}

// ScrapeCmd reads the input sites, crawls them and reports a summary.
type ScrapeCmd struct {
	Input        string `short:"i" env:"EMAILSCOUT_INPUT" default:"assets/email_scrap.csv" help:"CSV file with a website column"`
	Output       string `short:"o" env:"EMAILSCOUT_OUTPUT" default:"emails_output.csv" help:"Output file; .db, .sqlite or .sqlite3 stores results in SQLite"`
	Engine       string `env:"EMAILSCOUT_ENGINE" default:"rod" enum:"rod,chromedp,none" help:"Browser for the rendering fallback (rod, chromedp, none)"`
	Headless     bool   `default:"true" negatable:"" help:"Run the browser without a window"`
	Concurrency  int    `short:"c" default:"1" help:"Sites scraped at once; sites on one host never overlap"`
	Retries      int    `default:"0" help:"Extra attempts for failed page fetches"`
	Sitemap      bool   `help:"Also visit contact pages listed in the site's sitemap"`
	StrictRobots bool   `name:"strict-robots" help:"Apply per-path robots.txt rules instead of only honoring a site-wide block"`
	UserAgents   string `name:"user-agents" env:"EMAILSCOUT_USER_AGENTS" help:"File with one user agent per line"`
	Verbose      bool   `short:"v" help:"Log every request"`
	Progress     bool   `help:"Show a progress spinner on a terminal"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Path string `arg:"" type:"existingfile" help:"SQLite results file"`
}

// ResultsCmd is the "results" subcommand.
type ResultsCmd struct {
	Path   string `arg:"" type:"existingfile" help:"SQLite results file"`
	RunID  string `arg:"" name:"run-id" help:"Run ID as shown by the runs command"`
	Status string `short:"s" help:"Only show sites with this status (ok, no_emails_found, skipped, error)"`
	Limit  int    `short:"n" help:"Show at most this many sites"`
	Offset int    `help:"Skip this many sites"`
}
