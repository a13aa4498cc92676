package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
	"github.com/mkcms/mkcms-go/internal/util"
)

// CreateNews stores a news item.
func (f *Facade) CreateNews(ctx context.Context, in model.NewsInput) (model.News, Tier, error) {
	now := f.now().UTC()
	n := model.News{
		ID:        uuid.NewString(),
		Site:      f.defaultSite(in.Site),
		Language:  f.defaultLang(in.Language),
		Title:     in.Title,
		Slug:      util.Slugify(in.Title),
		Summary:   in.Summary,
		Body:      in.Body,
		Category:  in.Category,
		Image:     in.Image,
		Status:    defaultStatus(in.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if n.Status == model.StatusPublished {
		t := now
		n.PublishedAt = &t
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertNews(octx, n); err != nil {
			f.degraded("create news", err)
		} else {
			return n, TierDurable, nil
		}
	}

	f.mem.News.Put(n.ID, n)
	return n, TierMemory, nil
}

// GetNews fetches a news item by ID.
func (f *Facade) GetNews(ctx context.Context, id string) (model.News, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.GetNews(octx, id)
		switch {
		case err == nil:
			return n, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.News{}, TierDurable, ErrNotFound
		default:
			f.degraded("get news", err)
		}
	}

	if n, ok := f.mem.News.Get(id); ok {
		return n, TierMemory, nil
	}
	return model.News{}, TierMemory, ErrNotFound
}

// ListNews returns a page of news items in creation order.
func (f *Facade) ListNews(ctx context.Context, opt ListOptions) (Page[model.News], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListNews(octx, store.ListParams{
			Site: f.site, Language: opt.Language, Limit: limit, Offset: offset,
		})
		if err != nil {
			f.degraded("list news", err)
		} else {
			total, err := q.CountNews(octx, f.site, opt.Language)
			if err != nil {
				f.degraded("count news", err)
			} else {
				return Page[model.News]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.News.Filter(func(n model.News) bool {
		return n.Site == f.site && (opt.Language == "" || n.Language == opt.Language)
	})
	return Page[model.News]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}

func applyNewsPatch(n *model.News, patch model.NewsPatch, now time.Time) {
	patch.Apply(n)
	n.UpdatedAt = now
	if n.Status == model.StatusPublished && n.PublishedAt == nil {
		t := now
		n.PublishedAt = &t
	}
}

// UpdateNews applies a patch to a news item and returns the updated record.
func (f *Facade) UpdateNews(ctx context.Context, id string, patch model.NewsPatch) (model.News, Tier, error) {
	now := f.now().UTC()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		n, err := q.GetNews(octx, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.News{}, TierDurable, ErrNotFound
		case err != nil:
			f.degraded("update news", err)
		default:
			applyNewsPatch(&n, patch, now)
			rows, err := q.UpdateNews(octx, n)
			if err != nil {
				f.degraded("update news", err)
			} else if rows == 0 {
				return model.News{}, TierDurable, ErrNotFound
			} else {
				return n, TierDurable, nil
			}
		}
	}

	var out model.News
	ok := f.mem.News.Update(id, func(n model.News) model.News {
		applyNewsPatch(&n, patch, now)
		out = n
		return n
	})
	if !ok {
		return model.News{}, TierMemory, ErrNotFound
	}
	return out, TierMemory, nil
}

// DeleteNews removes a news item by ID.
func (f *Facade) DeleteNews(ctx context.Context, id string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteNews(octx, id)
		if err != nil {
			f.degraded("delete news", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.News.Delete(id) {
		return TierMemory, ErrNotFound
	}
	return TierMemory, nil
}
