package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
)

// CreateContact stores a contact-form submission.
func (f *Facade) CreateContact(ctx context.Context, in model.ContactInput) (model.Contact, Tier, error) {
	c := model.Contact{
		ID:        uuid.NewString(),
		Site:      f.defaultSite(in.Site),
		Language:  f.defaultLang(in.Language),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: f.now().UTC(),
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertContact(octx, c); err != nil {
			f.degraded("create contact", err)
		} else {
			return c, TierDurable, nil
		}
	}

	f.mem.Contacts.Put(c.ID, c)
	return c, TierMemory, nil
}

// GetContact fetches a contact by ID.
func (f *Facade) GetContact(ctx context.Context, id string) (model.Contact, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		c, err := q.GetContact(octx, id)
		switch {
		case err == nil:
			return c, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.Contact{}, TierDurable, ErrNotFound
		default:
			f.degraded("get contact", err)
		}
	}

	if c, ok := f.mem.Contacts.Get(id); ok {
		return c, TierMemory, nil
	}
	return model.Contact{}, TierMemory, ErrNotFound
}

// ListContacts returns a page of contacts in creation order.
func (f *Facade) ListContacts(ctx context.Context, opt ListOptions) (Page[model.Contact], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListContacts(octx, store.ListParams{
			Site: f.site, Language: opt.Language, Limit: limit, Offset: offset,
		})
		if err != nil {
			f.degraded("list contacts", err)
		} else {
			total, err := q.CountContacts(octx, f.site, opt.Language)
			if err != nil {
				f.degraded("count contacts", err)
			} else {
				return Page[model.Contact]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.Contacts.Filter(func(c model.Contact) bool {
		return c.Site == f.site && (opt.Language == "" || c.Language == opt.Language)
	})
	return Page[model.Contact]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}

// DeleteContact removes a contact by ID.
func (f *Facade) DeleteContact(ctx context.Context, id string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteContact(octx, id)
		if err != nil {
			f.degraded("delete contact", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.Contacts.Delete(id) {
		return TierMemory, ErrNotFound
	}
	return TierMemory, nil
}
