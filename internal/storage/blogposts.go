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

// CreateBlogPost stores a blog post. The slug derives from the title, and a
// post created as published is stamped with its publication time.
func (f *Facade) CreateBlogPost(ctx context.Context, in model.BlogPostInput) (model.BlogPost, Tier, error) {
	now := f.now().UTC()
	p := model.BlogPost{
		ID:        uuid.NewString(),
		Site:      f.defaultSite(in.Site),
		Language:  f.defaultLang(in.Language),
		Title:     in.Title,
		Slug:      util.Slugify(in.Title),
		Excerpt:   in.Excerpt,
		Body:      in.Body,
		Category:  in.Category,
		Image:     in.Image,
		Status:    defaultStatus(in.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Status == model.StatusPublished {
		t := now
		p.PublishedAt = &t
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertBlogPost(octx, p); err != nil {
			f.degraded("create blog post", err)
		} else {
			return p, TierDurable, nil
		}
	}

	f.mem.BlogPosts.Put(p.ID, p)
	return p, TierMemory, nil
}

// GetBlogPost fetches a post by ID.
func (f *Facade) GetBlogPost(ctx context.Context, id string) (model.BlogPost, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		p, err := q.GetBlogPost(octx, id)
		switch {
		case err == nil:
			return p, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.BlogPost{}, TierDurable, ErrNotFound
		default:
			f.degraded("get blog post", err)
		}
	}

	if p, ok := f.mem.BlogPosts.Get(id); ok {
		return p, TierMemory, nil
	}
	return model.BlogPost{}, TierMemory, ErrNotFound
}

// ListBlogPosts returns a page of posts in creation order.
func (f *Facade) ListBlogPosts(ctx context.Context, opt ListOptions) (Page[model.BlogPost], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListBlogPosts(octx, store.ListParams{
			Site: f.site, Language: opt.Language, Limit: limit, Offset: offset,
		})
		if err != nil {
			f.degraded("list blog posts", err)
		} else {
			total, err := q.CountBlogPosts(octx, f.site, opt.Language)
			if err != nil {
				f.degraded("count blog posts", err)
			} else {
				return Page[model.BlogPost]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.BlogPosts.Filter(func(p model.BlogPost) bool {
		return p.Site == f.site && (opt.Language == "" || p.Language == opt.Language)
	})
	return Page[model.BlogPost]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}

// applyBlogPostPatch merges a patch and handles the publish transition: the
// publication time is stamped on the first move to published and never
// rewritten afterwards.
func applyBlogPostPatch(p *model.BlogPost, patch model.BlogPostPatch, now time.Time) {
	patch.Apply(p)
	p.UpdatedAt = now
	if p.Status == model.StatusPublished && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
}

// UpdateBlogPost applies a patch to a post and returns the updated record.
func (f *Facade) UpdateBlogPost(ctx context.Context, id string, patch model.BlogPostPatch) (model.BlogPost, Tier, error) {
	now := f.now().UTC()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		p, err := q.GetBlogPost(octx, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.BlogPost{}, TierDurable, ErrNotFound
		case err != nil:
			f.degraded("update blog post", err)
		default:
			applyBlogPostPatch(&p, patch, now)
			rows, err := q.UpdateBlogPost(octx, p)
			if err != nil {
				f.degraded("update blog post", err)
			} else if rows == 0 {
				return model.BlogPost{}, TierDurable, ErrNotFound
			} else {
				return p, TierDurable, nil
			}
		}
	}

	var out model.BlogPost
	ok := f.mem.BlogPosts.Update(id, func(p model.BlogPost) model.BlogPost {
		applyBlogPostPatch(&p, patch, now)
		out = p
		return p
	})
	if !ok {
		return model.BlogPost{}, TierMemory, ErrNotFound
	}
	return out, TierMemory, nil
}

// DeleteBlogPost removes a post by ID.
func (f *Facade) DeleteBlogPost(ctx context.Context, id string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteBlogPost(octx, id)
		if err != nil {
			f.degraded("delete blog post", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.BlogPosts.Delete(id) {
		return TierMemory, ErrNotFound
	}
	return TierMemory, nil
}
