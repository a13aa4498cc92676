package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
)

// ErrNegativeStock rejects a product write that would leave stock below zero.
var ErrNegativeStock = errors.New("storage: product stock cannot be negative")

// CreateProduct stores a catalog product.
func (f *Facade) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, Tier, error) {
	if in.Stock < 0 {
		return model.Product{}, TierMemory, ErrNegativeStock
	}

	now := f.now().UTC()
	p := model.Product{
		ID:          uuid.NewString(),
		Site:        f.defaultSite(in.Site),
		Language:    f.defaultLang(in.Language),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		SKU:         in.SKU,
		Weight:      in.Weight,
		Dimensions:  in.Dimensions,
		Tags:        append([]string(nil), in.Tags...),
		Status:      defaultStatus(in.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertProduct(octx, p); err != nil {
			f.degraded("create product", err)
		} else {
			return p, TierDurable, nil
		}
	}

	f.mem.Products.Put(p.ID, p)
	return p, TierMemory, nil
}

// GetProduct fetches a product by ID.
func (f *Facade) GetProduct(ctx context.Context, id string) (model.Product, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		p, err := q.GetProduct(octx, id)
		switch {
		case err == nil:
			return p, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.Product{}, TierDurable, ErrNotFound
		default:
			f.degraded("get product", err)
		}
	}

	if p, ok := f.mem.Products.Get(id); ok {
		return p, TierMemory, nil
	}
	return model.Product{}, TierMemory, ErrNotFound
}

// ListProducts returns a page of products in creation order.
func (f *Facade) ListProducts(ctx context.Context, opt ListOptions) (Page[model.Product], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListProducts(octx, store.ListParams{
			Site: f.site, Language: opt.Language, Limit: limit, Offset: offset,
		})
		if err != nil {
			f.degraded("list products", err)
		} else {
			total, err := q.CountProducts(octx, f.site, opt.Language)
			if err != nil {
				f.degraded("count products", err)
			} else {
				return Page[model.Product]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.Products.Filter(func(p model.Product) bool {
		return p.Site == f.site && (opt.Language == "" || p.Language == opt.Language)
	})
	return Page[model.Product]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}

// UpdateProduct applies a patch to a product and returns the updated record.
func (f *Facade) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (model.Product, Tier, error) {
	if patch.Stock != nil && *patch.Stock < 0 {
		return model.Product{}, TierMemory, ErrNegativeStock
	}
	now := f.now().UTC()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		p, err := q.GetProduct(octx, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Product{}, TierDurable, ErrNotFound
		case err != nil:
			f.degraded("update product", err)
		default:
			patch.Apply(&p)
			p.UpdatedAt = now
			rows, err := q.UpdateProduct(octx, p)
			if err != nil {
				f.degraded("update product", err)
			} else if rows == 0 {
				return model.Product{}, TierDurable, ErrNotFound
			} else {
				return p, TierDurable, nil
			}
		}
	}

	var out model.Product
	ok := f.mem.Products.Update(id, func(p model.Product) model.Product {
		patch.Apply(&p)
		p.UpdatedAt = now
		out = p
		return p
	})
	if !ok {
		return model.Product{}, TierMemory, ErrNotFound
	}
	return out, TierMemory, nil
}

// DeleteProduct removes a product by ID.
func (f *Facade) DeleteProduct(ctx context.Context, id string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteProduct(octx, id)
		if err != nil {
			f.degraded("delete product", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.Products.Delete(id) {
		return TierMemory, ErrNotFound
	}
	return TierMemory, nil
}
