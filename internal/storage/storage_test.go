package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkcms/mkcms-go/internal/memstore"
	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryFacade builds a facade with no durable tier over an empty store.
func memoryFacade(t *testing.T) *Facade {
	t.Helper()
	return New(memstore.NewEmpty("main", "en"), Options{Logger: testLogger()})
}

// durableFacade builds a facade with a migrated temp-file database attached.
func durableFacade(t *testing.T) *Facade {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "facade.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	f := New(memstore.NewEmpty("main", "en"), Options{Logger: testLogger()})
	f.UseDurable(db)
	return f
}

func TestContactPagination(t *testing.T) {
	f := memoryFacade(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, _, err := f.CreateContact(ctx, model.ContactInput{
			Name:    fmt.Sprintf("Contact %02d", i),
			Email:   "c@example.com",
			Message: "hello",
		})
		if err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
	}

	page1, tier, err := f.ListContacts(ctx, ListOptions{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if tier != TierMemory {
		t.Errorf("tier = %q, want %q", tier, TierMemory)
	}
	if len(page1.Items) != 10 || page1.Total != 25 {
		t.Errorf("page 1: %d items, total %d; want 10 and 25", len(page1.Items), page1.Total)
	}
	if page1.Items[0].Name != "Contact 00" {
		t.Errorf("first item = %q, want Contact 00", page1.Items[0].Name)
	}

	page3, _, err := f.ListContacts(ctx, ListOptions{Page: 3, PerPage: 10})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(page3.Items) != 5 || page3.Total != 25 {
		t.Errorf("page 3: %d items, total %d; want 5 and 25", len(page3.Items), page3.Total)
	}

	page4, _, err := f.ListContacts(ctx, ListOptions{Page: 4, PerPage: 10})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(page4.Items) != 0 || page4.Total != 25 {
		t.Errorf("page 4: %d items, total %d; want 0 and 25", len(page4.Items), page4.Total)
	}

	// Out-of-range options clamp instead of failing.
	clamped, _, err := f.ListContacts(ctx, ListOptions{Page: -3, PerPage: 1000})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(clamped.Items) != 25 {
		t.Errorf("clamped page: %d items, want 25", len(clamped.Items))
	}
}

func TestTierReporting(t *testing.T) {
	f := durableFacade(t)
	ctx := context.Background()

	if !f.DurableReady() {
		t.Fatal("DurableReady = false after UseDurable")
	}

	c, tier, err := f.CreateContact(ctx, model.ContactInput{Name: "Durable", Email: "d@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if tier != TierDurable {
		t.Errorf("create tier = %q, want %q", tier, TierDurable)
	}

	got, tier, err := f.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if tier != TierDurable || got.Name != "Durable" {
		t.Errorf("get = (%q, %q), want (Durable, durable)", got.Name, tier)
	}

	_, tier, err = f.GetContact(ctx, "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing contact: err = %v, want ErrNotFound", err)
	}
	if tier != TierDurable {
		t.Errorf("missing contact tier = %q, want %q", tier, TierDurable)
	}
}

func TestDurableFailureFallsBackToMemory(t *testing.T) {
	f := durableFacade(t)
	ctx := context.Background()

	// Kill the durable tier without marking it offline: every call must
	// degrade to memory instead of erroring.
	if err := f.db.Close(); err != nil {
		t.Fatalf("closing db: %v", err)
	}

	c, tier, err := f.CreateContact(ctx, model.ContactInput{Name: "Fallback", Email: "f@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("CreateContact after db close: %v", err)
	}
	if tier != TierMemory {
		t.Errorf("create tier = %q, want %q", tier, TierMemory)
	}

	got, tier, err := f.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetContact after db close: %v", err)
	}
	if tier != TierMemory || got.Name != "Fallback" {
		t.Errorf("get = (%q, %q), want (Fallback, memory)", got.Name, tier)
	}

	page, tier, err := f.ListContacts(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListContacts after db close: %v", err)
	}
	if tier != TierMemory || page.Total != 1 {
		t.Errorf("list = (total %d, %q), want (1, memory)", page.Total, tier)
	}
}

func TestBlogPostPublishTransition(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	f := New(memstore.NewEmpty("main", "en"), Options{
		Logger: testLogger(),
		Now:    func() time.Time { return clock },
	})
	ctx := context.Background()

	p, _, err := f.CreateBlogPost(ctx, model.BlogPostInput{Title: "Draft Post", Body: "text"})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	if p.Status != model.StatusDraft {
		t.Errorf("default status = %q, want %q", p.Status, model.StatusDraft)
	}
	if p.PublishedAt != nil {
		t.Errorf("draft has PublishedAt = %v, want nil", p.PublishedAt)
	}
	if p.Slug != "draft-post" {
		t.Errorf("Slug = %q, want draft-post", p.Slug)
	}

	clock = base.Add(time.Hour)
	status := model.StatusPublished
	p, _, err = f.UpdateBlogPost(ctx, p.ID, model.BlogPostPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateBlogPost: %v", err)
	}
	if p.PublishedAt == nil || !p.PublishedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("PublishedAt = %v, want %v", p.PublishedAt, base.Add(time.Hour))
	}
	firstPublish := *p.PublishedAt

	// Archive and republish: the original publication time survives.
	clock = base.Add(2 * time.Hour)
	archived := model.StatusArchived
	if _, _, err := f.UpdateBlogPost(ctx, p.ID, model.BlogPostPatch{Status: &archived}); err != nil {
		t.Fatalf("UpdateBlogPost(archive): %v", err)
	}
	clock = base.Add(3 * time.Hour)
	p, _, err = f.UpdateBlogPost(ctx, p.ID, model.BlogPostPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateBlogPost(republish): %v", err)
	}
	if !p.PublishedAt.Equal(firstPublish) {
		t.Errorf("PublishedAt rewritten on republish: %v, want %v", p.PublishedAt, firstPublish)
	}
}

func TestCountKindSinceLocalMidnight(t *testing.T) {
	// A process running in a non-UTC zone stores timestamps in UTC but asks
	// for "today" from local midnight; both tiers must count the same rows.
	jst := time.FixedZone("JST", 9*3600)
	clock := time.Date(2026, 3, 1, 1, 0, 0, 0, jst) // 2026-02-28 16:00 UTC
	midnight := time.Date(2026, 3, 1, 0, 0, 0, 0, jst)
	ctx := context.Background()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "tz.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for _, durable := range []bool{true, false} {
		f := New(memstore.NewEmpty("main", "en"), Options{
			Logger: testLogger(),
			Now:    func() time.Time { return clock },
		})
		if durable {
			f.UseDurable(db)
		}

		if _, _, err := f.CreateContact(ctx, model.ContactInput{
			Name: "Early Riser", Email: "e@example.com", Message: "hi",
		}); err != nil {
			t.Fatalf("CreateContact (durable=%v): %v", durable, err)
		}

		n, tier, err := f.CountKindSince(ctx, model.KindContact, midnight)
		if err != nil {
			t.Fatalf("CountKindSince (durable=%v): %v", durable, err)
		}
		wantTier := TierMemory
		if durable {
			wantTier = TierDurable
		}
		if tier != wantTier {
			t.Errorf("tier = %q, want %q", tier, wantTier)
		}
		if n != 1 {
			t.Errorf("today count on %s tier = %d, want 1", tier, n)
		}
	}
}

func TestUpdatePreservesIdentity(t *testing.T) {
	f := durableFacade(t)
	ctx := context.Background()

	n, _, err := f.CreateNewsletter(ctx, model.NewsletterInput{Email: "old@example.com", Name: "Old"})
	if err != nil {
		t.Fatalf("CreateNewsletter: %v", err)
	}

	email := "new@example.com"
	got, tier, err := f.UpdateNewsletter(ctx, n.ID, model.NewsletterPatch{Email: &email})
	if err != nil {
		t.Fatalf("UpdateNewsletter: %v", err)
	}
	if tier != TierDurable {
		t.Errorf("tier = %q, want %q", tier, TierDurable)
	}
	if got.ID != n.ID || !got.CreatedAt.Equal(n.CreatedAt) {
		t.Errorf("identity changed: got (%s, %v), want (%s, %v)", got.ID, got.CreatedAt, n.ID, n.CreatedAt)
	}
	if got.Email != email || got.Name != "Old" {
		t.Errorf("patch result = %+v, want email updated and name kept", got)
	}

	_, _, err = f.UpdateNewsletter(ctx, "no-such-id", model.NewsletterPatch{Email: &email})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: err = %v, want ErrNotFound", err)
	}
}

func TestCarouselMemoryOrdering(t *testing.T) {
	f := memoryFacade(t)
	ctx := context.Background()

	// Created out of display order on purpose.
	for _, in := range []model.CarouselInput{
		{Title: "second", Position: 2, Image: "/b.jpg"},
		{Title: "first", Position: 1, Image: "/a.jpg"},
		{Title: "third", Position: 2, Image: "/c.jpg"},
	} {
		if _, _, err := f.CreateCarousel(ctx, in); err != nil {
			t.Fatalf("CreateCarousel: %v", err)
		}
	}

	page, _, err := f.ListCarousels(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListCarousels: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("got %d slides, want 3", len(page.Items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if page.Items[i].Title != want {
			t.Errorf("slide %d = %q, want %q", i, page.Items[i].Title, want)
		}
	}
}

func TestProductStockValidation(t *testing.T) {
	f := memoryFacade(t)
	ctx := context.Background()

	_, _, err := f.CreateProduct(ctx, model.ProductInput{Name: "Bad", Stock: -1})
	if !errors.Is(err, ErrNegativeStock) {
		t.Errorf("create: err = %v, want ErrNegativeStock", err)
	}

	p, _, err := f.CreateProduct(ctx, model.ProductInput{Name: "Good", Stock: 5})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	bad := int64(-2)
	_, _, err = f.UpdateProduct(ctx, p.ID, model.ProductPatch{Stock: &bad})
	if !errors.Is(err, ErrNegativeStock) {
		t.Errorf("update: err = %v, want ErrNegativeStock", err)
	}
}

func TestSessionPurge(t *testing.T) {
	f := memoryFacade(t)
	ctx := context.Background()
	now := time.Now().UTC()

	live := model.Session{Token: "live", AdminID: "a", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := model.Session{Token: "stale", AdminID: "a", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []model.Session{live, stale} {
		if _, err := f.PutSession(ctx, s); err != nil {
			t.Fatalf("PutSession: %v", err)
		}
	}

	n, _, err := f.DeleteExpiredSessions(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d, want 1", n)
	}
	if _, _, err := f.GetSession(ctx, "live"); err != nil {
		t.Errorf("GetSession(live): %v", err)
	}
	if _, _, err := f.GetSession(ctx, "stale"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession(stale): err = %v, want ErrNotFound", err)
	}
}

func TestCountKind(t *testing.T) {
	f := durableFacade(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := f.CreateContact(ctx, model.ContactInput{Name: "C", Email: "c@example.com", Message: "m"}); err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
	}
	if _, _, err := f.CreateProduct(ctx, model.ProductInput{Name: "P", Stock: 1}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	n, tier, err := f.CountKind(ctx, model.KindContact)
	if err != nil {
		t.Fatalf("CountKind: %v", err)
	}
	if tier != TierDurable || n != 3 {
		t.Errorf("contacts = (%d, %q), want (3, durable)", n, tier)
	}

	n, _, err = f.CountKindSince(ctx, model.KindProduct, time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountKindSince: %v", err)
	}
	if n != 1 {
		t.Errorf("recent products = %d, want 1", n)
	}

	if _, _, err := f.CountKind(ctx, model.Kind("bogus")); err == nil {
		t.Error("CountKind(bogus) = nil error, want error")
	}
}
