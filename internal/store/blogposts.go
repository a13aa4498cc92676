package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertBlogPost stores a new blog post.
func (q *Queries) InsertBlogPost(ctx context.Context, b model.BlogPost) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO blog_posts (id, site, language, title, slug, excerpt, body, category, image, status, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Site, b.Language, b.Title, b.Slug, b.Excerpt, b.Body, b.Category, b.Image, b.Status,
		nullTime(b.PublishedAt), b.CreatedAt, b.UpdatedAt)
	return err
}

// GetBlogPost fetches a blog post by ID. Returns sql.ErrNoRows when absent.
func (q *Queries) GetBlogPost(ctx context.Context, id string) (model.BlogPost, error) {
	var (
		b   model.BlogPost
		pub sql.NullTime
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, language, title, slug, excerpt, body, category, image, status, published_at, created_at, updated_at
		FROM blog_posts WHERE id = ?`, id).
		Scan(&b.ID, &b.Site, &b.Language, &b.Title, &b.Slug, &b.Excerpt, &b.Body, &b.Category, &b.Image, &b.Status,
			&pub, &b.CreatedAt, &b.UpdatedAt)
	b.PublishedAt = timePtr(pub)
	return b, err
}

// ListBlogPosts returns a page of blog posts in insertion order.
func (q *Queries) ListBlogPosts(ctx context.Context, arg ListParams) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, site, language, title, slug, excerpt, body, category, image, status, published_at, created_at, updated_at
		FROM blog_posts
		WHERE site = ? AND (? = '' OR language = ?)
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		arg.Site, arg.Language, arg.Language, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.BlogPost
	for rows.Next() {
		var (
			b   model.BlogPost
			pub sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.Site, &b.Language, &b.Title, &b.Slug, &b.Excerpt, &b.Body, &b.Category, &b.Image, &b.Status,
			&pub, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.PublishedAt = timePtr(pub)
		items = append(items, b)
	}
	return items, rows.Err()
}

// CountBlogPosts counts blog posts for a site, optionally by language.
func (q *Queries) CountBlogPosts(ctx context.Context, site, language string) (int64, error) {
	return q.countRows(ctx, "blog_posts", "created_at", site, language, nil)
}

// CountBlogPostsSince counts blog posts created at or after the given instant.
func (q *Queries) CountBlogPostsSince(ctx context.Context, site string, since time.Time) (int64, error) {
	return q.countRows(ctx, "blog_posts", "created_at", site, "", &since)
}

// UpdateBlogPost rewrites a blog post's mutable fields and reports the number
// of rows affected.
func (q *Queries) UpdateBlogPost(ctx context.Context, b model.BlogPost) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE blog_posts
		SET title = ?, excerpt = ?, body = ?, category = ?, image = ?, status = ?, published_at = ?, updated_at = ?
		WHERE id = ?`,
		b.Title, b.Excerpt, b.Body, b.Category, b.Image, b.Status, nullTime(b.PublishedAt), b.UpdatedAt, b.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteBlogPost removes a blog post and reports the rows affected.
func (q *Queries) DeleteBlogPost(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
