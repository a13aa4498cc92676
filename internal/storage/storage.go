// Package storage provides the unified persistence facade over two tiers:
// a durable SQLite-backed store and an in-memory fallback. Every operation
// reports which tier served it, and a failing durable store degrades to
// memory instead of failing the call.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mkcms/mkcms-go/internal/memstore"
	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
)

// Tier identifies which backend served an operation.
type Tier string

// Storage tiers
const (
	TierDurable Tier = "durable"
	TierMemory  Tier = "memory"
)

// ErrNotFound is returned when a record does not exist in the tier that
// served the call. It is a definitive answer, never a degradation signal.
var ErrNotFound = errors.New("storage: record not found")

// DefaultOpTimeout bounds a single durable operation before the facade gives
// up and serves the request from memory.
const DefaultOpTimeout = 5 * time.Second

// Facade routes persistence operations to the durable store when it is
// ready and to the in-memory store otherwise. Construct one per site.
type Facade struct {
	mem      *memstore.Store
	site     string
	language string

	db      *sql.DB
	queries *store.Queries
	ready   atomic.Bool

	opTimeout time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// Options configures a Facade. Zero values fall back to sensible defaults.
type Options struct {
	// OpTimeout bounds each durable operation. Defaults to DefaultOpTimeout.
	OpTimeout time.Duration

	// Logger receives degradation warnings. Defaults to slog.Default().
	Logger *slog.Logger

	// Now supplies the clock, injectable for tests. Defaults to time.Now.
	Now func() time.Time
}

// New builds a facade over the given in-memory store. The durable tier stays
// offline until ConnectDurable or UseDurable attaches one.
func New(mem *memstore.Store, opts Options) *Facade {
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = DefaultOpTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Facade{
		mem:       mem,
		site:      mem.Site(),
		language:  mem.Language(),
		opTimeout: opts.OpTimeout,
		logger:    opts.Logger,
		now:       opts.Now,
	}
}

// ConnectDurable opens, migrates and seeds the durable store in the
// background. Until it succeeds every operation is served from memory;
// callers never wait on it. The returned channel closes once the attempt
// finishes, whichever way it went.
func (f *Facade) ConnectDurable(ctx context.Context, path string, seedContent bool) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		db, err := store.NewDB(path)
		if err != nil {
			f.logger.Error("durable store unavailable, staying on memory tier", "path", path, "error", err)
			return
		}
		if err := store.Migrate(db); err != nil {
			f.logger.Error("durable store migration failed, staying on memory tier", "path", path, "error", err)
			_ = db.Close()
			return
		}
		q := store.New(db)
		if seedContent {
			if err := store.Seed(ctx, q, f.site, f.language); err != nil {
				f.logger.Error("durable store seeding failed, staying on memory tier", "path", path, "error", err)
				_ = db.Close()
				return
			}
		}

		f.db = db
		f.queries = q
		f.ready.Store(true)
		f.logger.Info("durable store ready", "path", path)
	}()
	return done
}

// UseDurable attaches an already opened and migrated database synchronously.
func (f *Facade) UseDurable(db *sql.DB) {
	f.db = db
	f.queries = store.New(db)
	f.ready.Store(true)
}

// DurableReady reports whether the durable tier is serving requests.
func (f *Facade) DurableReady() bool {
	return f.ready.Load()
}

// Site reports the site this facade serves.
func (f *Facade) Site() string { return f.site }

// Close releases the durable store, if attached. The memory tier keeps
// serving afterwards.
func (f *Facade) Close() error {
	if !f.ready.Swap(false) {
		return nil
	}
	if f.db == nil {
		return nil
	}
	return f.db.Close()
}

// durable returns the query layer when the durable tier is ready.
func (f *Facade) durable() (*store.Queries, bool) {
	if f.ready.Load() && f.queries != nil {
		return f.queries, true
	}
	return nil, false
}

// opCtx bounds a single durable operation.
func (f *Facade) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, f.opTimeout)
}

// degraded logs a durable-tier failure that was absorbed by falling back to
// the memory tier.
func (f *Facade) degraded(op string, err error) {
	f.logger.Warn("durable store failed, serving from memory", "op", op, "error", err)
}

// defaultSite substitutes the facade's site for an empty value.
func (f *Facade) defaultSite(site string) string {
	if site == "" {
		return f.site
	}
	return site
}

// defaultLang substitutes the facade's default language for an empty value.
func (f *Facade) defaultLang(lang string) string {
	if lang == "" {
		return f.language
	}
	return lang
}

// defaultStatus substitutes draft for an empty content status.
func defaultStatus(status string) string {
	if status == "" {
		return model.StatusDraft
	}
	return status
}
