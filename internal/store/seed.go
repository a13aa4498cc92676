package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkcms/mkcms-go/internal/seed"
)

// Seed populates a freshly migrated database with the default admin account
// and sample content. It is idempotent: the presence of the admin user marks
// the database as already seeded and the call becomes a no-op.
func Seed(ctx context.Context, q *Queries, site, language string) error {
	_, err := q.GetUserByUsername(ctx, seed.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for seeded admin: %w", err)
	}

	data, err := seed.Records(site, language)
	if err != nil {
		return err
	}

	for _, u := range data.Users {
		if err := q.InsertUser(ctx, u); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Username, err)
		}
	}
	for _, c := range data.Contacts {
		if err := q.InsertContact(ctx, c); err != nil {
			return fmt.Errorf("seeding contact %s: %w", c.ID, err)
		}
	}
	for _, n := range data.Newsletters {
		if err := q.InsertNewsletter(ctx, n); err != nil {
			return fmt.Errorf("seeding newsletter %s: %w", n.ID, err)
		}
	}
	for _, p := range data.BlogPosts {
		if err := q.InsertBlogPost(ctx, p); err != nil {
			return fmt.Errorf("seeding blog post %s: %w", p.Slug, err)
		}
	}
	for _, n := range data.News {
		if err := q.InsertNews(ctx, n); err != nil {
			return fmt.Errorf("seeding news %s: %w", n.Slug, err)
		}
	}
	for _, g := range data.GalleryItems {
		if err := q.InsertGalleryItem(ctx, g); err != nil {
			return fmt.Errorf("seeding gallery item %s: %w", g.ID, err)
		}
	}
	for _, p := range data.Products {
		if err := q.InsertProduct(ctx, p); err != nil {
			return fmt.Errorf("seeding product %s: %w", p.SKU, err)
		}
	}
	for _, c := range data.Carousels {
		if err := q.InsertCarousel(ctx, c); err != nil {
			return fmt.Errorf("seeding carousel %s: %w", c.ID, err)
		}
	}
	return nil
}
