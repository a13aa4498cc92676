package store

import (
	"context"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertCarousel stores a new carousel slide.
func (q *Queries) InsertCarousel(ctx context.Context, c model.Carousel) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO carousels (id, site, language, title, subtitle, description, image, link, button_text, position, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Site, c.Language, c.Title, c.Subtitle, c.Description, c.Image, c.Link, c.ButtonText,
		c.Position, c.Active, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetCarousel fetches a slide by ID. Returns sql.ErrNoRows when absent.
func (q *Queries) GetCarousel(ctx context.Context, id string) (model.Carousel, error) {
	var c model.Carousel
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, language, title, subtitle, description, image, link, button_text, position, active, created_at, updated_at
		FROM carousels WHERE id = ?`, id).
		Scan(&c.ID, &c.Site, &c.Language, &c.Title, &c.Subtitle, &c.Description, &c.Image, &c.Link, &c.ButtonText,
			&c.Position, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListCarousels returns a page of slides ordered by display position, with
// creation time as the tiebreak.
func (q *Queries) ListCarousels(ctx context.Context, arg ListParams) ([]model.Carousel, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, site, language, title, subtitle, description, image, link, button_text, position, active, created_at, updated_at
		FROM carousels
		WHERE site = ? AND (? = '' OR language = ?)
		ORDER BY position ASC, created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		arg.Site, arg.Language, arg.Language, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Carousel
	for rows.Next() {
		var c model.Carousel
		if err := rows.Scan(&c.ID, &c.Site, &c.Language, &c.Title, &c.Subtitle, &c.Description, &c.Image, &c.Link, &c.ButtonText,
			&c.Position, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountCarousels counts slides for a site, optionally by language.
func (q *Queries) CountCarousels(ctx context.Context, site, language string) (int64, error) {
	return q.countRows(ctx, "carousels", "created_at", site, language, nil)
}

// CountCarouselsSince counts slides created at or after the given instant.
func (q *Queries) CountCarouselsSince(ctx context.Context, site string, since time.Time) (int64, error) {
	return q.countRows(ctx, "carousels", "created_at", site, "", &since)
}

// UpdateCarousel rewrites a slide's mutable fields and reports the number of
// rows affected.
func (q *Queries) UpdateCarousel(ctx context.Context, c model.Carousel) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE carousels
		SET title = ?, subtitle = ?, description = ?, image = ?, link = ?, button_text = ?, position = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Subtitle, c.Description, c.Image, c.Link, c.ButtonText, c.Position, c.Active, c.UpdatedAt, c.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteCarousel removes a slide and reports the rows affected.
func (q *Queries) DeleteCarousel(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM carousels WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
