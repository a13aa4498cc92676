package model

import "time"

// Session represents an authenticated admin session. The token is the only
// credential a caller ever holds; it references the user by ID.
type Session struct {
	Token     string    `json:"token"`
	AdminID   string    `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the session has not yet expired at the given instant.
func (s *Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
