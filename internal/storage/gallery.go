package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
)

// CreateGalleryItem stores a gallery image.
func (f *Facade) CreateGalleryItem(ctx context.Context, in model.GalleryItemInput) (model.GalleryItem, Tier, error) {
	now := f.now().UTC()
	g := model.GalleryItem{
		ID:          uuid.NewString(),
		Site:        f.defaultSite(in.Site),
		Language:    f.defaultLang(in.Language),
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Thumbnail:   in.Thumbnail,
		Category:    in.Category,
		Tags:        append([]string(nil), in.Tags...),
		Status:      defaultStatus(in.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertGalleryItem(octx, g); err != nil {
			f.degraded("create gallery item", err)
		} else {
			return g, TierDurable, nil
		}
	}

	f.mem.GalleryItems.Put(g.ID, g)
	return g, TierMemory, nil
}

// GetGalleryItem fetches a gallery image by ID.
func (f *Facade) GetGalleryItem(ctx context.Context, id string) (model.GalleryItem, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		g, err := q.GetGalleryItem(octx, id)
		switch {
		case err == nil:
			return g, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.GalleryItem{}, TierDurable, ErrNotFound
		default:
			f.degraded("get gallery item", err)
		}
	}

	if g, ok := f.mem.GalleryItems.Get(id); ok {
		return g, TierMemory, nil
	}
	return model.GalleryItem{}, TierMemory, ErrNotFound
}

// ListGalleryItems returns a page of gallery images in creation order.
func (f *Facade) ListGalleryItems(ctx context.Context, opt ListOptions) (Page[model.GalleryItem], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListGalleryItems(octx, store.ListParams{
			Site: f.site, Language: opt.Language, Limit: limit, Offset: offset,
		})
		if err != nil {
			f.degraded("list gallery items", err)
		} else {
			total, err := q.CountGalleryItems(octx, f.site, opt.Language)
			if err != nil {
				f.degraded("count gallery items", err)
			} else {
				return Page[model.GalleryItem]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.GalleryItems.Filter(func(g model.GalleryItem) bool {
		return g.Site == f.site && (opt.Language == "" || g.Language == opt.Language)
	})
	return Page[model.GalleryItem]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}

// UpdateGalleryItem applies a patch to a gallery image and returns the
// updated record.
func (f *Facade) UpdateGalleryItem(ctx context.Context, id string, patch model.GalleryItemPatch) (model.GalleryItem, Tier, error) {
	now := f.now().UTC()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		g, err := q.GetGalleryItem(octx, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.GalleryItem{}, TierDurable, ErrNotFound
		case err != nil:
			f.degraded("update gallery item", err)
		default:
			patch.Apply(&g)
			g.UpdatedAt = now
			rows, err := q.UpdateGalleryItem(octx, g)
			if err != nil {
				f.degraded("update gallery item", err)
			} else if rows == 0 {
				return model.GalleryItem{}, TierDurable, ErrNotFound
			} else {
				return g, TierDurable, nil
			}
		}
	}

	var out model.GalleryItem
	ok := f.mem.GalleryItems.Update(id, func(g model.GalleryItem) model.GalleryItem {
		patch.Apply(&g)
		g.UpdatedAt = now
		out = g
		return g
	})
	if !ok {
		return model.GalleryItem{}, TierMemory, ErrNotFound
	}
	return out, TierMemory, nil
}

// DeleteGalleryItem removes a gallery image by ID.
func (f *Facade) DeleteGalleryItem(ctx context.Context, id string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteGalleryItem(octx, id)
		if err != nil {
			f.degraded("delete gallery item", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.GalleryItems.Delete(id) {
		return TierMemory, ErrNotFound
	}
	return TierMemory, nil
}
