package store

import (
	"context"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertUser stores a new user.
func (q *Queries) InsertUser(ctx context.Context, u model.User) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO users (id, site, username, password_hash, role, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Site, u.Username, u.PasswordHash, u.Role, u.Active, u.CreatedAt, u.UpdatedAt)
	return err
}

// GetUser fetches a user by ID. Returns sql.ErrNoRows when absent.
func (q *Queries) GetUser(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, username, password_hash, role, active, created_at, updated_at
		FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Site, &u.Username, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUserByUsername fetches a user by username. Returns sql.ErrNoRows when absent.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, username, password_hash, role, active, created_at, updated_at
		FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Site, &u.Username, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// ListUsers returns a page of users in insertion order.
func (q *Queries) ListUsers(ctx context.Context, arg ListParams) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, site, username, password_hash, role, active, created_at, updated_at
		FROM users
		WHERE site = ?
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		arg.Site, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Site, &u.Username, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

// CountUsers counts users for a site.
func (q *Queries) CountUsers(ctx context.Context, site string) (int64, error) {
	return q.countRows(ctx, "users", "created_at", site, "", nil)
}

// UpdateUser rewrites a user's mutable fields and reports the number of rows
// affected.
func (q *Queries) UpdateUser(ctx context.Context, u model.User) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE users
		SET username = ?, password_hash = ?, role = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		u.Username, u.PasswordHash, u.Role, u.Active, u.UpdatedAt, u.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteUser removes a user and reports the rows affected. Sessions of the
// user go with it through the foreign key cascade.
func (q *Queries) DeleteUser(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
