package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// CountKind counts the records of an entity kind for the facade's site.
func (f *Facade) CountKind(ctx context.Context, kind model.Kind) (int64, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		var (
			n   int64
			err error
		)
		switch kind {
		case model.KindContact:
			n, err = q.CountContacts(octx, f.site, "")
		case model.KindNewsletter:
			n, err = q.CountNewsletters(octx, f.site, "")
		case model.KindBlogPost:
			n, err = q.CountBlogPosts(octx, f.site, "")
		case model.KindNews:
			n, err = q.CountNews(octx, f.site, "")
		case model.KindGalleryItem:
			n, err = q.CountGalleryItems(octx, f.site, "")
		case model.KindProduct:
			n, err = q.CountProducts(octx, f.site, "")
		case model.KindCarousel:
			n, err = q.CountCarousels(octx, f.site, "")
		default:
			return 0, TierDurable, fmt.Errorf("storage: unknown entity kind %q", kind)
		}
		if err != nil {
			f.degraded("count "+string(kind), err)
		} else {
			return n, TierDurable, nil
		}
	}

	n, err := f.countKindMemory(kind, nil)
	return n, TierMemory, err
}

// CountKindSince counts the records of an entity kind created at or after
// the given instant.
func (f *Facade) CountKindSince(ctx context.Context, kind model.Kind, since time.Time) (int64, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		var (
			n   int64
			err error
		)
		switch kind {
		case model.KindContact:
			n, err = q.CountContactsSince(octx, f.site, since)
		case model.KindNewsletter:
			n, err = q.CountNewslettersSince(octx, f.site, since)
		case model.KindBlogPost:
			n, err = q.CountBlogPostsSince(octx, f.site, since)
		case model.KindNews:
			n, err = q.CountNewsSince(octx, f.site, since)
		case model.KindGalleryItem:
			n, err = q.CountGalleryItemsSince(octx, f.site, since)
		case model.KindProduct:
			n, err = q.CountProductsSince(octx, f.site, since)
		case model.KindCarousel:
			n, err = q.CountCarouselsSince(octx, f.site, since)
		default:
			return 0, TierDurable, fmt.Errorf("storage: unknown entity kind %q", kind)
		}
		if err != nil {
			f.degraded("count "+string(kind), err)
		} else {
			return n, TierDurable, nil
		}
	}

	n, err := f.countKindMemory(kind, &since)
	return n, TierMemory, err
}

// countKindMemory counts in-memory records of a kind, optionally restricted
// to those created at or after since.
func (f *Facade) countKindMemory(kind model.Kind, since *time.Time) (int64, error) {
	match := func(site string, createdAt time.Time) bool {
		if site != f.site {
			return false
		}
		return since == nil || !createdAt.Before(*since)
	}

	switch kind {
	case model.KindContact:
		return f.mem.Contacts.CountFunc(func(c model.Contact) bool {
			return match(c.Site, c.CreatedAt)
		}), nil
	case model.KindNewsletter:
		return f.mem.Newsletters.CountFunc(func(n model.Newsletter) bool {
			return match(n.Site, n.CreatedAt)
		}), nil
	case model.KindBlogPost:
		return f.mem.BlogPosts.CountFunc(func(p model.BlogPost) bool {
			return match(p.Site, p.CreatedAt)
		}), nil
	case model.KindNews:
		return f.mem.News.CountFunc(func(n model.News) bool {
			return match(n.Site, n.CreatedAt)
		}), nil
	case model.KindGalleryItem:
		return f.mem.GalleryItems.CountFunc(func(g model.GalleryItem) bool {
			return match(g.Site, g.CreatedAt)
		}), nil
	case model.KindProduct:
		return f.mem.Products.CountFunc(func(p model.Product) bool {
			return match(p.Site, p.CreatedAt)
		}), nil
	case model.KindCarousel:
		return f.mem.Carousels.CountFunc(func(c model.Carousel) bool {
			return match(c.Site, c.CreatedAt)
		}), nil
	default:
		return 0, fmt.Errorf("storage: unknown entity kind %q", kind)
	}
}
