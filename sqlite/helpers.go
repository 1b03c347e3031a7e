package sqlite

import (
	"strings"
	"time"

	"github.com/fwojciec/symdex"
)

// parseTimestamp parses an index timestamp column. Values are written as
// RFC3339 by the index service, so a parse failure means a corrupt row.
func parseTimestamp(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, symdex.Errorf(symdex.EINTERNAL, "index %s %q is not RFC3339", column, value)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses for positive values.
// SQLite only accepts OFFSET after LIMIT, so an offset alone is written
// with an unbounded limit.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
