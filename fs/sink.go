package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/emailscout"
)

// Ensure CSVSink implements emailscout.ResultSink at compile time.
var _ emailscout.ResultSink = (*CSVSink)(nil)

// CSVSink writes results as a website,emails CSV file.
//
// Every write replaces the whole file atomically: rows go to a temporary
// file in the same directory which is then renamed over the target, so
// readers never observe a partially written file.
type CSVSink struct {
	path string
}

// NewCSVSink creates a CSVSink writing path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// WriteResults replaces the file's contents with results.
func (s *CSVSink) WriteResults(ctx context.Context, results []*emailscout.ScrapeResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if err := writeCSV(tmp, results); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, s.path)
}

func writeCSV(f *os.File, results []*emailscout.ScrapeResult) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{WebsiteColumn, "emails"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Site, emailscout.FormatEmails(r.Emails)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
