package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleCollaborator Role = "collaborator"
)

// IsAdmin reports whether the role carries administrator privilege.
// Only the admin/non-admin distinction matters for authorization gates;
// manager vs collaborator is a display and reporting concern.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCollaborator:
		return true
	}
	return false
}

// Identity represents the authenticated principal returned by the identity
// provider. Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID      string // stable user identifier (sub or preferred_username)
	Email       string
	DisplayName string
	Groups      []string
	// Metadata carries free-form provider claims. It may include a cached
	// role or company hint; the hint is never authoritative for
	// authorization decisions (the backing store is).
	Metadata  map[string]string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier; Token is the bearer value presented
// to the privileged admin-check function.
type Session struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session's expiry is in the past at t.
func (s Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.IsZero() && t.After(s.ExpiresAt)
}

// IsZero reports whether the session is empty (no authenticated user).
func (s Session) IsZero() bool { return s.ID == "" && s.UserID == "" }
