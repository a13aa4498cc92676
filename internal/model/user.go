// Package model defines the domain records managed by the storage layer:
// users, admin sessions, and the seven marketing-site content kinds, plus
// the explicit patch types describing which fields each kind allows to change.
package model

import "time"

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account that can sign in to the admin console.
type User struct {
	ID           string    `json:"id"`
	Site         string    `json:"site"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserInput holds the caller-supplied fields for creating a user.
// PasswordHash must already be hashed; the storage layer never sees
// plain-text credentials.
type UserInput struct {
	Site         string
	Username     string
	PasswordHash string
	Role         string
	Active       bool
}

// UserPatch lists the user fields eligible for update.
type UserPatch struct {
	Username     *string
	PasswordHash *string
	Role         *string
	Active       *bool
}

// Apply merges the set fields of the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Active != nil {
		u.Active = *p.Active
	}
}
