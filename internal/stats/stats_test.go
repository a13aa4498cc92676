package stats

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mkcms/mkcms-go/internal/cache"
	"github.com/mkcms/mkcms-go/internal/memstore"
	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFacade(t *testing.T, now func() time.Time) *storage.Facade {
	t.Helper()
	return storage.New(memstore.NewEmpty("main", "en"), storage.Options{
		Logger: testLogger(),
		Now:    now,
	})
}

func TestKindCounts(t *testing.T) {
	clock := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	f := testFacade(t, now)
	ctx := context.Background()

	// Two contacts yesterday, one today.
	clock = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if _, _, err := f.CreateContact(ctx, model.ContactInput{Name: "Old", Email: "o@example.com", Message: "m"}); err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
	}
	clock = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if _, _, err := f.CreateContact(ctx, model.ContactInput{Name: "New", Email: "n@example.com", Message: "m"}); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	clock = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	a := NewAggregator(f, Options{Logger: testLogger(), Now: now})

	c, tier, err := a.KindCounts(ctx, model.KindContact)
	if err != nil {
		t.Fatalf("KindCounts: %v", err)
	}
	if tier != storage.TierMemory {
		t.Errorf("tier = %q, want %q", tier, storage.TierMemory)
	}
	if c.Total != 3 || c.Today != 1 {
		t.Errorf("counts = %+v, want total 3, today 1", c)
	}
}

func TestSummaryCoversAllKinds(t *testing.T) {
	f := testFacade(t, time.Now)
	ctx := context.Background()

	if _, _, err := f.CreateProduct(ctx, model.ProductInput{Name: "P", Stock: 1}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	a := NewAggregator(f, Options{Logger: testLogger()})
	s, err := a.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if len(s.Kinds) != len(model.ContentKinds) {
		t.Fatalf("summary has %d kinds, want %d", len(s.Kinds), len(model.ContentKinds))
	}
	if got := s.Kinds[model.KindProduct]; got.Total != 1 || got.Today != 1 {
		t.Errorf("product counts = %+v, want total 1, today 1", got)
	}
	if got := s.Kinds[model.KindBlogPost]; got.Total != 0 {
		t.Errorf("blog post total = %d, want 0", got.Total)
	}
	if s.Tier != storage.TierMemory {
		t.Errorf("tier = %q, want %q", s.Tier, storage.TierMemory)
	}
}

func TestSummaryUsesCache(t *testing.T) {
	f := testFacade(t, time.Now)
	ctx := context.Background()

	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()
	a := NewAggregator(f, Options{Cache: c, Logger: testLogger()})

	first, err := a.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	// A write after the summary was cached is not visible until the entry
	// expires or is invalidated.
	if _, _, err := f.CreateContact(ctx, model.ContactInput{Name: "C", Email: "c@example.com", Message: "m"}); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	cached, err := a.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if cached.Kinds[model.KindContact].Total != first.Kinds[model.KindContact].Total {
		t.Errorf("cached summary recomputed: %+v", cached.Kinds[model.KindContact])
	}

	a.Invalidate(ctx)
	fresh, err := a.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if fresh.Kinds[model.KindContact].Total != 1 {
		t.Errorf("fresh contact total = %d, want 1", fresh.Kinds[model.KindContact].Total)
	}
}

func TestSummaryConcurrentWithWrites(t *testing.T) {
	f := testFacade(t, time.Now)
	ctx := context.Background()
	a := NewAggregator(f, Options{Logger: testLogger()})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				if _, _, err := f.CreateContact(ctx, model.ContactInput{Name: "C", Email: "c@example.com", Message: "m"}); err != nil {
					t.Errorf("CreateContact: %v", err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 10; j++ {
			if _, err := a.Summary(ctx); err != nil {
				t.Errorf("Summary: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	s, err := a.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got := s.Kinds[model.KindContact].Total; got != 100 {
		t.Errorf("final contact total = %d, want 100", got)
	}
}

func TestDayStart(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	in := time.Date(2026, 3, 2, 23, 30, 0, 0, loc)
	got := dayStart(in)
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("dayStart = %v, want %v", got, want)
	}
}
