// Package stats computes the admin dashboard counters: per-kind record
// totals and "created today" counts, with optional caching of the full
// summary. Counts are computed kind by kind, so a summary built while
// writes are in flight is a close approximation, not a snapshot.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkcms/mkcms-go/internal/cache"
	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/storage"
)

// summaryCacheKey stores the serialized dashboard summary.
const summaryCacheKey = "stats:summary"

// DefaultCacheTTL bounds how stale a cached summary may get.
const DefaultCacheTTL = time.Minute

// Counts holds the dashboard numbers for one entity kind.
type Counts struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
}

// Summary is the full dashboard payload.
type Summary struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Tier        storage.Tier          `json:"tier"`
	Kinds       map[model.Kind]Counts `json:"kinds"`
}

// Aggregator computes dashboard statistics over the storage facade.
type Aggregator struct {
	store  *storage.Facade
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Options configures an Aggregator. Zero values fall back to defaults.
type Options struct {
	// Cache, when set, holds serialized summaries for TTL.
	Cache cache.Cache

	// TTL bounds cached summary staleness. Defaults to DefaultCacheTTL.
	TTL time.Duration

	Logger *slog.Logger
	Now    func() time.Time
}

// NewAggregator builds an aggregator over the given storage facade.
func NewAggregator(store *storage.Facade, opts Options) *Aggregator {
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Aggregator{
		store:  store,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		logger: opts.Logger,
		now:    opts.Now,
	}
}

// dayStart returns local midnight of the given instant. Total and Today
// share this boundary so the pair stays coherent within one computation.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// KindCounts computes the counters for one entity kind.
func (a *Aggregator) KindCounts(ctx context.Context, kind model.Kind) (Counts, storage.Tier, error) {
	return a.kindCountsAt(ctx, kind, dayStart(a.now()))
}

// Summary computes the counters for every entity kind, serving a cached
// copy when one is fresh enough.
func (a *Aggregator) Summary(ctx context.Context) (Summary, error) {
	if a.cache != nil {
		if data, err := a.cache.Get(ctx, summaryCacheKey); err == nil {
			var s Summary
			if err := json.Unmarshal(data, &s); err == nil {
				return s, nil
			}
			// Unreadable entry: drop it and recompute.
			_ = a.cache.Delete(ctx, summaryCacheKey)
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			a.logger.Warn("stats cache read failed", "error", err)
		}
	}

	now := a.now()
	since := dayStart(now)
	s := Summary{
		GeneratedAt: now.UTC(),
		Tier:        storage.TierDurable,
		Kinds:       make(map[model.Kind]Counts, len(model.ContentKinds)),
	}
	for _, kind := range model.ContentKinds {
		c, tier, err := a.kindCountsAt(ctx, kind, since)
		if err != nil {
			return Summary{}, err
		}
		if tier == storage.TierMemory {
			s.Tier = storage.TierMemory
		}
		s.Kinds[kind] = c
	}

	if a.cache != nil {
		if data, err := json.Marshal(s); err == nil {
			if err := a.cache.Set(ctx, summaryCacheKey, data, a.ttl); err != nil {
				a.logger.Warn("stats cache write failed", "error", err)
			}
		}
	}
	return s, nil
}

// kindCountsAt computes one kind's counters against a fixed day boundary.
func (a *Aggregator) kindCountsAt(ctx context.Context, kind model.Kind, since time.Time) (Counts, storage.Tier, error) {
	total, tier, err := a.store.CountKind(ctx, kind)
	if err != nil {
		return Counts{}, tier, fmt.Errorf("counting %s: %w", kind, err)
	}
	today, todayTier, err := a.store.CountKindSince(ctx, kind, since)
	if err != nil {
		return Counts{}, todayTier, fmt.Errorf("counting recent %s: %w", kind, err)
	}
	if todayTier == storage.TierMemory {
		tier = storage.TierMemory
	}
	return Counts{Total: total, Today: today}, tier, nil
}

// Invalidate drops any cached summary, forcing the next Summary call to
// recompute.
func (a *Aggregator) Invalidate(ctx context.Context) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, summaryCacheKey); err != nil {
		a.logger.Warn("stats cache invalidation failed", "error", err)
	}
}
