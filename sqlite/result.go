package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/emailscout"
	"github.com/google/uuid"
)

// emailSeparator joins a site's addresses in the emails column.
const emailSeparator = ", "

// Compile-time interface verification.
var (
	_ emailscout.ResultSink  = (*ResultSink)(nil)
	_ emailscout.ResultStore = (*DB)(nil)
)

// ResultSink writes the results of one crawl run.
// Every write replaces the run's rows in a single transaction, so earlier
// runs stay intact and a run never shows a partial checkpoint.
type ResultSink struct {
	db    *DB
	runID string
	input string
	now   func() time.Time
}

// NewResultSink creates a sink for a new run with a random ID. input is
// recorded with the run to tell runs apart.
func NewResultSink(db *DB, input string) *ResultSink {
	return &ResultSink{
		db:    db,
		runID: uuid.New().String(),
		input: input,
		now:   time.Now,
	}
}

// RunID returns the ID under which results are stored.
func (s *ResultSink) RunID() string {
	return s.runID
}

// WriteResults replaces the run's stored results with results.
func (s *ResultSink) WriteResults(ctx context.Context, results []*emailscout.ScrapeResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, input, started_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
	`, s.runID, s.input, now, now); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE run_id = ?`, s.runID); err != nil {
		return fmt.Errorf("clearing results: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, position, website, emails, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range results {
		emails := strings.Join(r.Emails.Sorted(), emailSeparator)
		if _, err := stmt.ExecContext(ctx, s.runID, i, r.Site, emails, string(r.Status), now); err != nil {
			return fmt.Errorf("inserting result for %s: %w", r.Site, err)
		}
	}

	return tx.Commit()
}

// FindRuns returns every stored run, most recent first.
func (db *DB) FindRuns(ctx context.Context) ([]*emailscout.Run, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.input, r.started_at, r.updated_at, COUNT(res.position)
		FROM runs r
		LEFT JOIN results res ON res.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*emailscout.Run
	for rows.Next() {
		var run emailscout.Run
		var startedAt, updatedAt string
		if err := rows.Scan(&run.ID, &run.Input, &startedAt, &updatedAt, &run.Sites); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// FindResults returns a run's results in input order.
func (db *DB) FindResults(ctx context.Context, filter emailscout.ResultFilter) ([]*emailscout.ScrapeResult, error) {
	if filter.RunID == "" {
		return nil, emailscout.Errorf(emailscout.EINVALID, "run ID required")
	}

	var query strings.Builder
	query.WriteString(`SELECT website, emails, status FROM results WHERE run_id = ?`)
	args := []any{filter.RunID}
	if filter.Status != nil {
		query.WriteString(` AND status = ?`)
		args = append(args, string(*filter.Status))
	}
	query.WriteString(` ORDER BY position`)
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*emailscout.ScrapeResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResult(rows *sql.Rows) (*emailscout.ScrapeResult, error) {
	var site, emails, status string
	if err := rows.Scan(&site, &emails, &status); err != nil {
		return nil, err
	}
	set := emailscout.NewEmailSet()
	if emails != "" {
		for _, e := range strings.Split(emails, emailSeparator) {
			set.Add(e)
		}
	}
	return &emailscout.ScrapeResult{Site: site, Emails: set, Status: emailscout.Status(status)}, nil
}
