package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/emailscout"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	sites, err := deps.Source.ReadSites(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", emailscout.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Loaded %d sites from %s\n", len(sites), c.Input)

	p := newProgress(deps.Stderr, c.Progress)
	p.Start()
	results, err := deps.Crawler.Run(deps.Ctx, sites, p.Update)
	p.Stop()

	printSummary(deps.Stdout, results)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(deps.Stdout, "Interrupted: saved %d of %d sites to %s\n", len(results), len(sites), c.Output)
		}
		return err
	}
	fmt.Fprintf(deps.Stdout, "Results written to %s\n", c.Output)
	return nil
}

// printSummary writes how the scraped sites concluded.
func printSummary(w io.Writer, results []*emailscout.ScrapeResult) {
	counts := make(map[emailscout.Status]int)
	emails := 0
	for _, r := range results {
		counts[r.Status]++
		emails += r.Emails.Len()
	}
	fmt.Fprintf(w, "Scraped %d sites: %d with emails (%d addresses), %d without, %d skipped, %d failed\n",
		len(results),
		counts[emailscout.StatusOK],
		emails,
		counts[emailscout.StatusNoEmailsFound],
		counts[emailscout.StatusSkipped],
		counts[emailscout.StatusError],
	)
}
