package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertNews stores a new news item.
func (q *Queries) InsertNews(ctx context.Context, n model.News) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO news (id, site, language, title, slug, summary, body, category, image, status, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Site, n.Language, n.Title, n.Slug, n.Summary, n.Body, n.Category, n.Image, n.Status,
		nullTime(n.PublishedAt), n.CreatedAt, n.UpdatedAt)
	return err
}

// GetNews fetches a news item by ID. Returns sql.ErrNoRows when absent.
func (q *Queries) GetNews(ctx context.Context, id string) (model.News, error) {
	var (
		n   model.News
		pub sql.NullTime
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, language, title, slug, summary, body, category, image, status, published_at, created_at, updated_at
		FROM news WHERE id = ?`, id).
		Scan(&n.ID, &n.Site, &n.Language, &n.Title, &n.Slug, &n.Summary, &n.Body, &n.Category, &n.Image, &n.Status,
			&pub, &n.CreatedAt, &n.UpdatedAt)
	n.PublishedAt = timePtr(pub)
	return n, err
}

// ListNews returns a page of news items in insertion order.
func (q *Queries) ListNews(ctx context.Context, arg ListParams) ([]model.News, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, site, language, title, slug, summary, body, category, image, status, published_at, created_at, updated_at
		FROM news
		WHERE site = ? AND (? = '' OR language = ?)
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		arg.Site, arg.Language, arg.Language, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.News
	for rows.Next() {
		var (
			n   model.News
			pub sql.NullTime
		)
		if err := rows.Scan(&n.ID, &n.Site, &n.Language, &n.Title, &n.Slug, &n.Summary, &n.Body, &n.Category, &n.Image, &n.Status,
			&pub, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.PublishedAt = timePtr(pub)
		items = append(items, n)
	}
	return items, rows.Err()
}

// CountNews counts news items for a site, optionally by language.
func (q *Queries) CountNews(ctx context.Context, site, language string) (int64, error) {
	return q.countRows(ctx, "news", "created_at", site, language, nil)
}

// CountNewsSince counts news items created at or after the given instant.
func (q *Queries) CountNewsSince(ctx context.Context, site string, since time.Time) (int64, error) {
	return q.countRows(ctx, "news", "created_at", site, "", &since)
}

// UpdateNews rewrites a news item's mutable fields and reports the number of
// rows affected.
func (q *Queries) UpdateNews(ctx context.Context, n model.News) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE news
		SET title = ?, summary = ?, body = ?, category = ?, image = ?, status = ?, published_at = ?, updated_at = ?
		WHERE id = ?`,
		n.Title, n.Summary, n.Body, n.Category, n.Image, n.Status, nullTime(n.PublishedAt), n.UpdatedAt, n.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteNews removes a news item and reports the rows affected.
func (q *Queries) DeleteNews(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
