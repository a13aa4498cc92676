// Package session implements token-based admin sessions on top of the
// storage facade: credential checks, token issuance, validation and logout.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkcms/mkcms-go/internal/auth"
	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/storage"
)

// DefaultTTL is how long a session stays valid after login.
const DefaultTTL = 24 * time.Hour

// tokenBytes is the entropy of a session token; tokens are hex-encoded.
const tokenBytes = 32

// Errors reported to callers. Both are deliberately vague: login failures
// never reveal whether the username or the password was wrong.
var (
	ErrInvalidCredentials = errors.New("session: invalid credentials")
	ErrInvalidSession     = errors.New("session: invalid or expired session")
)

// Manager issues and validates admin sessions.
type Manager struct {
	store  *storage.Facade
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Options configures a Manager. Zero values fall back to defaults.
type Options struct {
	TTL    time.Duration
	Logger *slog.Logger
	Now    func() time.Time
}

// NewManager builds a session manager over the given storage facade.
func NewManager(store *storage.Facade, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		store:  store,
		ttl:    opts.TTL,
		logger: opts.Logger,
		now:    opts.Now,
	}
}

// Login checks the credentials and, on success, issues a new session token.
func (m *Manager) Login(ctx context.Context, username, password string) (model.Session, error) {
	user, _, err := m.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Session{}, ErrInvalidCredentials
		}
		return model.Session{}, fmt.Errorf("looking up user: %w", err)
	}
	if !user.Active {
		return model.Session{}, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return model.Session{}, fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		return model.Session{}, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return model.Session{}, fmt.Errorf("generating session token: %w", err)
	}

	now := m.now().UTC()
	s := model.Session{
		Token:     token,
		AdminID:   user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if _, err := m.store.PutSession(ctx, s); err != nil {
		return model.Session{}, fmt.Errorf("storing session: %w", err)
	}

	m.logger.Info("admin logged in", "username", username)
	return s, nil
}

// Validate resolves a token to its user. An expired session is removed on
// the spot and reported as invalid.
func (m *Manager) Validate(ctx context.Context, token string) (model.User, error) {
	s, _, err := m.store.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.User{}, ErrInvalidSession
		}
		return model.User{}, fmt.Errorf("looking up session: %w", err)
	}

	if !s.Valid(m.now()) {
		if _, err := m.store.DeleteSession(ctx, token); err != nil && !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("removing expired session failed", "error", err)
		}
		return model.User{}, ErrInvalidSession
	}

	user, _, err := m.store.GetUser(ctx, s.AdminID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.User{}, ErrInvalidSession
		}
		return model.User{}, fmt.Errorf("looking up session user: %w", err)
	}
	if !user.Active {
		return model.User{}, ErrInvalidSession
	}
	return user, nil
}

// Logout removes a session. Unknown tokens are fine: logging out twice is
// not an error.
func (m *Manager) Logout(ctx context.Context, token string) error {
	_, err := m.store.DeleteSession(ctx, token)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// PurgeExpired removes every expired session and reports how many went.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	n, _, err := m.store.DeleteExpiredSessions(ctx, m.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purging sessions: %w", err)
	}
	if n > 0 {
		m.logger.Info("purged expired sessions", "count", n)
	}
	return n, nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
