package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// DBTX is the subset of *sql.DB and *sql.Tx the query methods need.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries exposes the hand-written SQL operations for every entity kind.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// ListParams holds the common list filter: tenant site, optional language
// filter (empty matches all languages) and LIMIT/OFFSET pagination.
type ListParams struct {
	Site     string
	Language string
	Limit    int64
	Offset   int64
}

// encodeTags serializes a tag set for storage as a JSON array.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeTags parses a stored JSON tag array; malformed data yields nil.
func decodeTags(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil
	}
	return tags
}

// nullTime converts an optional timestamp to its SQL representation.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// timePtr converts a scanned SQL timestamp back to an optional value.
func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// countRows counts rows for a site, optionally restricted by language and by
// rows whose timestamp column is at or after since. Table and column names
// come from a fixed set inside this package, never from caller input.
func (q *Queries) countRows(ctx context.Context, table, timeCol, site, language string, since *time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM ` + table + ` WHERE site = ?`
	args := []any{site}

	if language != "" {
		query += ` AND language = ?`
		args = append(args, language)
	}
	if since != nil {
		// Timestamps are stored as UTC text; a bound time.Time with a
		// non-zero offset would compare lexicographically, not as an
		// instant.
		query += ` AND ` + timeCol + ` >= ?`
		args = append(args, (*since).UTC())
	}

	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}
