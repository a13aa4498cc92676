package storage

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
)

// CreateCarousel stores a carousel slide.
func (f *Facade) CreateCarousel(ctx context.Context, in model.CarouselInput) (model.Carousel, Tier, error) {
	now := f.now().UTC()
	c := model.Carousel{
		ID:          uuid.NewString(),
		Site:        f.defaultSite(in.Site),
		Language:    f.defaultLang(in.Language),
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Description: in.Description,
		Image:       in.Image,
		Link:        in.Link,
		ButtonText:  in.ButtonText,
		Position:    in.Position,
		Active:      in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertCarousel(octx, c); err != nil {
			f.degraded("create carousel", err)
		} else {
			return c, TierDurable, nil
		}
	}

	f.mem.Carousels.Put(c.ID, c)
	return c, TierMemory, nil
}

// GetCarousel fetches a slide by ID.
func (f *Facade) GetCarousel(ctx context.Context, id string) (model.Carousel, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		c, err := q.GetCarousel(octx, id)
		switch {
		case err == nil:
			return c, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.Carousel{}, TierDurable, ErrNotFound
		default:
			f.degraded("get carousel", err)
		}
	}

	if c, ok := f.mem.Carousels.Get(id); ok {
		return c, TierMemory, nil
	}
	return model.Carousel{}, TierMemory, ErrNotFound
}

// ListCarousels returns a page of slides ordered by display position, with
// creation time breaking ties.
func (f *Facade) ListCarousels(ctx context.Context, opt ListOptions) (Page[model.Carousel], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListCarousels(octx, store.ListParams{
			Site: f.site, Language: opt.Language, Limit: limit, Offset: offset,
		})
		if err != nil {
			f.degraded("list carousels", err)
		} else {
			total, err := q.CountCarousels(octx, f.site, opt.Language)
			if err != nil {
				f.degraded("count carousels", err)
			} else {
				return Page[model.Carousel]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.Carousels.Filter(func(c model.Carousel) bool {
		return c.Site == f.site && (opt.Language == "" || c.Language == opt.Language)
	})
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Position != all[j].Position {
			return all[i].Position < all[j].Position
		}
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return Page[model.Carousel]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}

// UpdateCarousel applies a patch to a slide and returns the updated record.
func (f *Facade) UpdateCarousel(ctx context.Context, id string, patch model.CarouselPatch) (model.Carousel, Tier, error) {
	now := f.now().UTC()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		c, err := q.GetCarousel(octx, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Carousel{}, TierDurable, ErrNotFound
		case err != nil:
			f.degraded("update carousel", err)
		default:
			patch.Apply(&c)
			c.UpdatedAt = now
			rows, err := q.UpdateCarousel(octx, c)
			if err != nil {
				f.degraded("update carousel", err)
			} else if rows == 0 {
				return model.Carousel{}, TierDurable, ErrNotFound
			} else {
				return c, TierDurable, nil
			}
		}
	}

	var out model.Carousel
	ok := f.mem.Carousels.Update(id, func(c model.Carousel) model.Carousel {
		patch.Apply(&c)
		c.UpdatedAt = now
		out = c
		return c
	})
	if !ok {
		return model.Carousel{}, TierMemory, ErrNotFound
	}
	return out, TierMemory, nil
}

// DeleteCarousel removes a slide by ID.
func (f *Facade) DeleteCarousel(ctx context.Context, id string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteCarousel(octx, id)
		if err != nil {
			f.degraded("delete carousel", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.Carousels.Delete(id) {
		return TierMemory, ErrNotFound
	}
	return TierMemory, nil
}
