package store

import (
	"context"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// InsertProduct stores a new product.
func (q *Queries) InsertProduct(ctx context.Context, p model.Product) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO products (id, site, language, name, description, price, stock, sku, weight, dimensions, tags, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Site, p.Language, p.Name, p.Description, p.Price, p.Stock, p.SKU, p.Weight, p.Dimensions,
		encodeTags(p.Tags), p.Status, p.CreatedAt, p.UpdatedAt)
	return err
}

// GetProduct fetches a product by ID. Returns sql.ErrNoRows when absent.
func (q *Queries) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var (
		p    model.Product
		tags string
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT id, site, language, name, description, price, stock, sku, weight, dimensions, tags, status, created_at, updated_at
		FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.Site, &p.Language, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SKU, &p.Weight, &p.Dimensions,
			&tags, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	p.Tags = decodeTags(tags)
	return p, err
}

// ListProducts returns a page of products in insertion order.
func (q *Queries) ListProducts(ctx context.Context, arg ListParams) ([]model.Product, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, site, language, name, description, price, stock, sku, weight, dimensions, tags, status, created_at, updated_at
		FROM products
		WHERE site = ? AND (? = '' OR language = ?)
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`,
		arg.Site, arg.Language, arg.Language, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Product
	for rows.Next() {
		var (
			p    model.Product
			tags string
		)
		if err := rows.Scan(&p.ID, &p.Site, &p.Language, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SKU, &p.Weight, &p.Dimensions,
			&tags, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Tags = decodeTags(tags)
		items = append(items, p)
	}
	return items, rows.Err()
}

// CountProducts counts products for a site, optionally by language.
func (q *Queries) CountProducts(ctx context.Context, site, language string) (int64, error) {
	return q.countRows(ctx, "products", "created_at", site, language, nil)
}

// CountProductsSince counts products created at or after the given instant.
func (q *Queries) CountProductsSince(ctx context.Context, site string, since time.Time) (int64, error) {
	return q.countRows(ctx, "products", "created_at", site, "", &since)
}

// UpdateProduct rewrites a product's mutable fields and reports the number of
// rows affected.
func (q *Queries) UpdateProduct(ctx context.Context, p model.Product) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, sku = ?, weight = ?, dimensions = ?, tags = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Stock, p.SKU, p.Weight, p.Dimensions, encodeTags(p.Tags), p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteProduct removes a product and reports the rows affected.
func (q *Queries) DeleteProduct(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
