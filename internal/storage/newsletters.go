package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
)

// CreateNewsletter stores a newsletter subscription.
func (f *Facade) CreateNewsletter(ctx context.Context, in model.NewsletterInput) (model.Newsletter, Tier, error) {
	now := f.now().UTC()
	n := model.Newsletter{
		ID:           uuid.NewString(),
		Site:         f.defaultSite(in.Site),
		Language:     f.defaultLang(in.Language),
		Email:        in.Email,
		Name:         in.Name,
		Category:     in.Category,
		SubscribedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertNewsletter(octx, n); err != nil {
			f.degraded("create newsletter", err)
		} else {
			return n, TierDurable, nil
		}
	}

	f.mem.Newsletters.Put(n.ID, n)
	return n, TierMemory, nil
}

// GetNewsletter fetches a subscription by ID.
func (f *Facade) GetNewsletter(ctx context.Context, id string) (model.Newsletter, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.GetNewsletter(octx, id)
		switch {
		case err == nil:
			return n, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.Newsletter{}, TierDurable, ErrNotFound
		default:
			f.degraded("get newsletter", err)
		}
	}

	if n, ok := f.mem.Newsletters.Get(id); ok {
		return n, TierMemory, nil
	}
	return model.Newsletter{}, TierMemory, ErrNotFound
}

// ListNewsletters returns a page of subscriptions in creation order.
func (f *Facade) ListNewsletters(ctx context.Context, opt ListOptions) (Page[model.Newsletter], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListNewsletters(octx, store.ListParams{
			Site: f.site, Language: opt.Language, Limit: limit, Offset: offset,
		})
		if err != nil {
			f.degraded("list newsletters", err)
		} else {
			total, err := q.CountNewsletters(octx, f.site, opt.Language)
			if err != nil {
				f.degraded("count newsletters", err)
			} else {
				return Page[model.Newsletter]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.Newsletters.Filter(func(n model.Newsletter) bool {
		return n.Site == f.site && (opt.Language == "" || n.Language == opt.Language)
	})
	return Page[model.Newsletter]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}

// UpdateNewsletter applies a patch to a subscription and returns the updated
// record.
func (f *Facade) UpdateNewsletter(ctx context.Context, id string, patch model.NewsletterPatch) (model.Newsletter, Tier, error) {
	now := f.now().UTC()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		n, err := q.GetNewsletter(octx, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Newsletter{}, TierDurable, ErrNotFound
		case err != nil:
			f.degraded("update newsletter", err)
		default:
			patch.Apply(&n)
			n.UpdatedAt = now
			rows, err := q.UpdateNewsletter(octx, n)
			if err != nil {
				f.degraded("update newsletter", err)
			} else if rows == 0 {
				return model.Newsletter{}, TierDurable, ErrNotFound
			} else {
				return n, TierDurable, nil
			}
		}
	}

	var out model.Newsletter
	ok := f.mem.Newsletters.Update(id, func(n model.Newsletter) model.Newsletter {
		patch.Apply(&n)
		n.UpdatedAt = now
		out = n
		return n
	})
	if !ok {
		return model.Newsletter{}, TierMemory, ErrNotFound
	}
	return out, TierMemory, nil
}

// DeleteNewsletter removes a subscription by ID.
func (f *Facade) DeleteNewsletter(ctx context.Context, id string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteNewsletter(octx, id)
		if err != nil {
			f.degraded("delete newsletter", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.Newsletters.Delete(id) {
		return TierMemory, ErrNotFound
	}
	return TierMemory, nil
}
