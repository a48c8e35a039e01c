// Package fs reads the site list from and writes results to CSV files.
package fs

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/emailscout"
)

// WebsiteColumn is the header of the input column holding site URLs.
const WebsiteColumn = "website"

// Ensure CSVSource implements emailscout.SiteSource at compile time.
var _ emailscout.SiteSource = (*CSVSource)(nil)

// CSVSource reads sites from the website column of a CSV file.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSVSource reading path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// ReadSites returns the column's values that start with "http", in file
// order. The header is matched ignoring case, surrounding whitespace and a
// UTF-8 byte order mark.
func (s *CSVSource) ReadSites(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, emailscout.Errorf(emailscout.ENOTFOUND, "input file %s not found", s.path)
	} else if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, emailscout.Errorf(emailscout.EINVALID, "input file %s is empty", s.path)
	} else if err != nil {
		return nil, fmt.Errorf("reading input header: %w", err)
	}

	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), WebsiteColumn) {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, emailscout.Errorf(emailscout.EINVALID, "input file %s has no %q column", s.path, WebsiteColumn)
	}

	var sites []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		if col >= len(record) {
			continue
		}
		site := strings.TrimSpace(record[col])
		if strings.HasPrefix(site, "http") {
			sites = append(sites, site)
		}
	}
	return sites, nil
}
