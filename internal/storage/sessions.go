package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mkcms/mkcms-go/internal/model"
)

// PutSession stores an admin session under its token.
func (f *Facade) PutSession(ctx context.Context, s model.Session) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertSession(octx, s); err != nil {
			f.degraded("put session", err)
		} else {
			return TierDurable, nil
		}
	}

	f.mem.Sessions.Put(s.Token, s)
	return TierMemory, nil
}

// GetSession fetches a session by token. Expiry is the caller's concern; the
// facade only reports presence.
func (f *Facade) GetSession(ctx context.Context, token string) (model.Session, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		s, err := q.GetSession(octx, token)
		switch {
		case err == nil:
			return s, TierDurable, nil
		case errors.Is(err, sql.ErrNoRows):
			return model.Session{}, TierDurable, ErrNotFound
		default:
			f.degraded("get session", err)
		}
	}

	if s, ok := f.mem.Sessions.Get(token); ok {
		return s, TierMemory, nil
	}
	return model.Session{}, TierMemory, ErrNotFound
}

// DeleteSession removes a session by token.
func (f *Facade) DeleteSession(ctx context.Context, token string) (Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteSession(octx, token)
		if err != nil {
			f.degraded("delete session", err)
		} else if n == 0 {
			return TierDurable, ErrNotFound
		} else {
			return TierDurable, nil
		}
	}

	if !f.mem.Sessions.Delete(token) {
		return TierMemory, ErrNotFound
	}
	return TierMemory, nil
}

// DeleteExpiredSessions purges every session expired at or before now and
// reports how many were removed.
func (f *Facade) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, Tier, error) {
	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		n, err := q.DeleteExpiredSessions(octx, now)
		if err != nil {
			f.degraded("purge sessions", err)
		} else {
			return n, TierDurable, nil
		}
	}

	n := f.mem.Sessions.DeleteFunc(func(s model.Session) bool {
		return !s.Valid(now)
	})
	return n, TierMemory, nil
}
