package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 parses a stored timestamp, naming field in the error.
func parseRFC3339(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return t, nil
}

// appendPagination adds LIMIT and OFFSET for positive values.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			// SQLite only accepts OFFSET after a LIMIT.
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
