package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mkcms/mkcms-go/internal/memstore"
	"github.com/mkcms/mkcms-go/internal/seed"
	"github.com/mkcms/mkcms-go/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testManager builds a manager over a seeded in-memory store with an
// adjustable clock.
func testManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()

	mem, err := memstore.New("main", "en")
	if err != nil {
		t.Fatalf("memstore.New: %v", err)
	}
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	f := storage.New(mem, storage.Options{Logger: testLogger(), Now: now})
	m := NewManager(f, Options{Logger: testLogger(), Now: now})
	return m, &clock
}

func TestLoginWithSeededAdmin(t *testing.T) {
	m, _ := testManager(t)
	ctx := context.Background()

	s, err := m.Login(ctx, seed.AdminUsername, seed.AdminPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Token == "" {
		t.Fatal("empty session token")
	}
	if got := s.ExpiresAt.Sub(s.CreatedAt); got != DefaultTTL {
		t.Errorf("TTL = %v, want %v", got, DefaultTTL)
	}

	user, err := m.Validate(ctx, s.Token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if user.Username != seed.AdminUsername {
		t.Errorf("Username = %q, want %q", user.Username, seed.AdminUsername)
	}

	// Two logins issue distinct tokens.
	s2, err := m.Login(ctx, seed.AdminUsername, seed.AdminPassword)
	if err != nil {
		t.Fatalf("second Login: %v", err)
	}
	if s2.Token == s.Token {
		t.Error("second login reused the token")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m, _ := testManager(t)
	ctx := context.Background()

	if _, err := m.Login(ctx, seed.AdminUsername, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := m.Login(ctx, "nobody", seed.AdminPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateExpiredSession(t *testing.T) {
	m, clock := testManager(t)
	ctx := context.Background()

	s, err := m.Login(ctx, seed.AdminUsername, seed.AdminPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// One minute before expiry the session still works.
	*clock = clock.Add(DefaultTTL - time.Minute)
	if _, err := m.Validate(ctx, s.Token); err != nil {
		t.Fatalf("Validate before expiry: %v", err)
	}

	// At the expiry instant it does not.
	*clock = clock.Add(time.Minute)
	if _, err := m.Validate(ctx, s.Token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Validate at expiry: err = %v, want ErrInvalidSession", err)
	}

	// The expired session was removed eagerly, so a later purge finds nothing.
	n, err := m.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if n != 0 {
		t.Errorf("purged %d sessions, want 0", n)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	m, _ := testManager(t)
	ctx := context.Background()

	s, err := m.Login(ctx, seed.AdminUsername, seed.AdminPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := m.Logout(ctx, s.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := m.Validate(ctx, s.Token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Validate after logout: err = %v, want ErrInvalidSession", err)
	}
	if err := m.Logout(ctx, s.Token); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}

func TestPurgeExpired(t *testing.T) {
	m, clock := testManager(t)
	ctx := context.Background()

	if _, err := m.Login(ctx, seed.AdminUsername, seed.AdminPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := m.Login(ctx, seed.AdminUsername, seed.AdminPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}

	*clock = clock.Add(DefaultTTL + time.Minute)
	n, err := m.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if n != 2 {
		t.Errorf("purged %d sessions, want 2", n)
	}
}
