package store

import (
	"context"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertGalleryItem stores a new gallery item.
func (q *Queries) InsertGalleryItem(ctx context.Context, g model.GalleryItem) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO gallery_items (id, site, language, title, description, image, thumbnail, category, tags, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Site, g.Language, g.Title, g.Description, g.Image, g.Thumbnail, g.Category,
		encodeTags(g.Tags), g.Status, g.CreatedAt, g.UpdatedAt)
	return err
}

// GetGalleryItem fetches a gallery item by ID. Returns sql.ErrNoRows when absent.
func (q *Queries) GetGalleryItem(ctx context.Context, id string) (model.GalleryItem, error) {
	var (
		g    model.GalleryItem
		tags string
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, language, title, description, image, thumbnail, category, tags, status, created_at, updated_at
		FROM gallery_items WHERE id = ?`, id).
		Scan(&g.ID, &g.Site, &g.Language, &g.Title, &g.Description, &g.Image, &g.Thumbnail, &g.Category,
			&tags, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	g.Tags = decodeTags(tags)
	return g, err
}

// ListGalleryItems returns a page of gallery items in insertion order.
func (q *Queries) ListGalleryItems(ctx context.Context, arg ListParams) ([]model.GalleryItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, site, language, title, description, image, thumbnail, category, tags, status, created_at, updated_at
		FROM gallery_items
		WHERE site = ? AND (? = '' OR language = ?)
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		arg.Site, arg.Language, arg.Language, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.GalleryItem
	for rows.Next() {
		var (
			g    model.GalleryItem
			tags string
		)
		if err := rows.Scan(&g.ID, &g.Site, &g.Language, &g.Title, &g.Description, &g.Image, &g.Thumbnail, &g.Category,
			&tags, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		g.Tags = decodeTags(tags)
		items = append(items, g)
	}
	return items, rows.Err()
}

// CountGalleryItems counts gallery items for a site, optionally by language.
func (q *Queries) CountGalleryItems(ctx context.Context, site, language string) (int64, error) {
	return q.countRows(ctx, "gallery_items", "created_at", site, language, nil)
}

// CountGalleryItemsSince counts gallery items created at or after the given instant.
func (q *Queries) CountGalleryItemsSince(ctx context.Context, site string, since time.Time) (int64, error) {
	return q.countRows(ctx, "gallery_items", "created_at", site, "", &since)
}

// UpdateGalleryItem rewrites a gallery item's mutable fields and reports the
// number of rows affected.
func (q *Queries) UpdateGalleryItem(ctx context.Context, g model.GalleryItem) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE gallery_items
		SET title = ?, description = ?, image = ?, thumbnail = ?, category = ?, tags = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		g.Title, g.Description, g.Image, g.Thumbnail, g.Category, encodeTags(g.Tags), g.Status, g.UpdatedAt, g.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteGalleryItem removes a gallery item and reports the rows affected.
func (q *Queries) DeleteGalleryItem(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
