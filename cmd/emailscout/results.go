package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/emailscout"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Results.FindRuns(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", emailscout.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Scrape with an --output ending in .db to store one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d sites  %s\n", r.ID, r.StartedAt.Local().Format(time.DateTime), r.Sites, r.Input)
	}
	return nil
}

// Run executes the results command.
func (c *ResultsCmd) Run(deps *Dependencies) error {
	filter := emailscout.ResultFilter{RunID: c.RunID, Limit: c.Limit, Offset: c.Offset}
	if c.Status != "" {
		status := emailscout.Status(c.Status)
		switch status {
		case emailscout.StatusOK, emailscout.StatusNoEmailsFound, emailscout.StatusSkipped, emailscout.StatusError:
		default:
			err := emailscout.Errorf(emailscout.EINVALID, "unknown status %q", c.Status)
			fmt.Fprintf(deps.Stderr, "error: %s\n", emailscout.ErrorMessage(err))
			return err
		}
		filter.Status = &status
	}

	results, err := deps.Results.FindResults(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", emailscout.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for run %s.\n", c.RunID)
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.Site, r.Status, emailscout.FormatEmails(r.Emails))
	}
	return nil
}
