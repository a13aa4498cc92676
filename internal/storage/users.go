package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
)

// CreateUser stores a user account. The input carries a password hash, never
// a plain-text password.
func (f *Facade) CreateUser(ctx context.Context, in model.UserInput) (model.User, Tier, error) {
	now := f.now().UTC()
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	u := model.User{
		ID:           uuid.NewString(),
		Site:         f.defaultSite(in.Site),
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
		Role:         role,
		Active:       in.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertUser(octx, u); err != nil {
			f.degraded("create user", err)
		} else {
			return u, TierDurable, nil
		}
	}

	f.mem.Users.Put(u.ID, u)
	return u, TierMemory, nil
}

// GetUser fetches a user by ID.
func (f *Facade) GetUser(ctx context.Context, id string) (model.User, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		u, err := q.GetUser(octx, id)
		switch {
		case err == nil:
			return u, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.User{}, TierDurable, ErrNotFound
		default:
			f.degraded("get user", err)
		}
	}

	if u, ok := f.mem.Users.Get(id); ok {
		return u, TierMemory, nil
	}
	return model.User{}, TierMemory, ErrNotFound
}

// GetUserByUsername fetches a user by username.
func (f *Facade) GetUserByUsername(ctx context.Context, username string) (model.User, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		u, err := q.GetUserByUsername(octx, username)
		switch {
		case err == nil:
			return u, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.User{}, TierDurable, ErrNotFound
		default:
			f.degraded("get user by username", err)
		}
	}

	if u, ok := f.mem.UserByUsername(username); ok {
		return u, TierMemory, nil
	}
	return model.User{}, TierMemory, ErrNotFound
}

// ListUsers returns a page of user accounts in creation order.
func (f *Facade) ListUsers(ctx context.Context, opt ListOptions) (Page[model.User], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListUsers(octx, store.ListParams{Site: f.site, Limit: limit, Offset: offset})
		if err != nil {
			f.degraded("list users", err)
		} else {
			total, err := q.CountUsers(octx, f.site)
			if err != nil {
				f.degraded("count users", err)
			} else {
				return Page[model.User]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.Users.Filter(func(u model.User) bool { return u.Site == f.site })
	return Page[model.User]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}

// UpdateUser applies a patch to a user and returns the updated record.
func (f *Facade) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (model.User, Tier, error) {
	now := f.now().UTC()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()

		u, err := q.GetUser(octx, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.User{}, TierDurable, ErrNotFound
		case err != nil:
			f.degraded("update user", err)
		default:
			patch.Apply(&u)
			u.UpdatedAt = now
			rows, err := q.UpdateUser(octx, u)
			if err != nil {
				f.degraded("update user", err)
			} else if rows == 0 {
				return model.User{}, TierDurable, ErrNotFound
			} else {
				return u, TierDurable, nil
			}
		}
	}

	var out model.User
	ok := f.mem.Users.Update(id, func(u model.User) model.User {
		patch.Apply(&u)
		u.UpdatedAt = now
		out = u
		return u
	})
	if !ok {
		return model.User{}, TierMemory, ErrNotFound
	}
	return out, TierMemory, nil
}

// DeleteUser removes a user account. In the durable tier the user's sessions
// cascade; the memory tier mirrors that.
func (f *Facade) DeleteUser(ctx context.Context, id string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteUser(octx, id)
		if err != nil {
			f.degraded("delete user", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.Users.Delete(id) {
		return TierMemory, ErrNotFound
	}
	f.mem.Sessions.DeleteFunc(func(s model.Session) bool { return s.AdminID == id })
	return TierMemory, nil
}
