package store

import (
	"context"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertNewsletter stores a new newsletter subscription.
func (q *Queries) InsertNewsletter(ctx context.Context, n model.Newsletter) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO newsletters (id, site, language, email, name, category, subscribed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Site, n.Language, n.Email, n.Name, n.Category, n.SubscribedAt, n.CreatedAt, n.UpdatedAt)
	return err
}

// GetNewsletter fetches a subscription by ID. Returns sql.ErrNoRows when absent.
func (q *Queries) GetNewsletter(ctx context.Context, id string) (model.Newsletter, error) {
	var n model.Newsletter
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, language, email, name, category, subscribed_at, created_at, updated_at
		FROM newsletters WHERE id = ?`, id).
		Scan(&n.ID, &n.Site, &n.Language, &n.Email, &n.Name, &n.Category, &n.SubscribedAt, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// ListNewsletters returns a page of subscriptions in insertion order.
func (q *Queries) ListNewsletters(ctx context.Context, arg ListParams) ([]model.Newsletter, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, site, language, email, name, category, subscribed_at, created_at, updated_at
		FROM newsletters
		WHERE site = ? AND (? = '' OR language = ?)
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		arg.Site, arg.Language, arg.Language, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Newsletter
	for rows.Next() {
		var n model.Newsletter
		if err := rows.Scan(&n.ID, &n.Site, &n.Language, &n.Email, &n.Name, &n.Category, &n.SubscribedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// CountNewsletters counts subscriptions for a site, optionally by language.
func (q *Queries) CountNewsletters(ctx context.Context, site, language string) (int64, error) {
	return q.countRows(ctx, "newsletters", "created_at", site, language, nil)
}

// CountNewslettersSince counts subscriptions created at or after the given instant.
func (q *Queries) CountNewslettersSince(ctx context.Context, site string, since time.Time) (int64, error) {
	return q.countRows(ctx, "newsletters", "created_at", site, "", &since)
}

// UpdateNewsletter rewrites a subscription record in full and reports the
// number of rows affected.
func (q *Queries) UpdateNewsletter(ctx context.Context, n model.Newsletter) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE newsletters
		SET email = ?, name = ?, category = ?, updated_at = ?
		WHERE id = ?`,
		n.Email, n.Name, n.Category, n.UpdatedAt, n.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteNewsletter removes a subscription and reports the rows affected.
func (q *Queries) DeleteNewsletter(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM newsletters WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
