package store

import (
	"context"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertSession stores a new admin session.
func (q *Queries) InsertSession(ctx context.Context, s model.Session) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO sessions (token, admin_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		s.Token, s.AdminID, s.CreatedAt, s.ExpiresAt)
	return err
}

// GetSession fetches a session by token. Returns sql.ErrNoRows when absent.
func (q *Queries) GetSession(ctx context.Context, token string) (model.Session, error) {
	var s model.Session
	err := q.db.QueryRowContext(ctx, `
		SELECT token, admin_id, created_at, expires_at
		FROM sessions WHERE token = ?`, token).
		Scan(&s.Token, &s.AdminID, &s.CreatedAt, &s.ExpiresAt)
	return s, err
}

// DeleteSession removes a session by token and reports the rows affected.
func (q *Queries) DeleteSession(ctx context.Context, token string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteExpiredSessions removes every session that expired at or before the
// given instant and reports how many were purged.
func (q *Queries) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
