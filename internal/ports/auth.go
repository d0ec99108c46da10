package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service
// and internal/authstate.

import (
	"context"

	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleResolver answers whether a user holds administrator privilege.
// Implementations never return an error: any failure resolves to false
// (fail-closed) and is logged by the implementation.
type RoleResolver interface {
	Resolve(ctx context.Context, userID, bearerToken string) bool
}

// VideoStore resolves a stored video object key to a playable URL.
// Implementations typically sign a storage URL with a bounded lifetime.
type VideoStore interface {
	ResolveURL(ctx context.Context, key string) (string, error)
}
