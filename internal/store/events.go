package store

import (
	"context"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertEvent stores an admin activity log entry.
func (q *Queries) InsertEvent(ctx context.Context, e model.Event) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (id, level, category, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Level, e.Category, e.Message, e.Metadata, e.CreatedAt)
	return err
}

// ListEvents returns the most recent activity log entries, newest first.
func (q *Queries) ListEvents(ctx context.Context, limit, offset int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, level, category, message, metadata, created_at
		FROM events
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// CountEvents counts all activity log entries.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}
