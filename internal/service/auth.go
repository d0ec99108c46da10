package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/data"
	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/ports"
)

// ErrSessionExpired is returned by GetSession when the stored session's
// expiry has passed. The middleware maps it to a login redirect.
var ErrSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Users    core.UserRepository
	Time     data.TimeProvider // optional, defaults to real time
}

// AuthService orchestrates login flows: provider exchange, profile upsert,
// role lookup, and session persistence.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	users    core.UserRepository
	time     data.TimeProvider
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	tp := opts.Time
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		users:    opts.Users,
		time:     tp,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth
// URL with state and nonce for the callback handler to verify.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
	User    *model.User
}

// CompleteLogin exchanges the authorization code for an identity, upserts
// the user profile (first login creates it, later logins refresh email and
// display name, never the role), and persists a session. The session's role
// comes from the stored profile: provider metadata role hints are never
// authoritative.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	user, err := s.users.Upsert(ctx, &model.CreateUserRequest{
		ID:          identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Metadata:    identity.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	// The session ID doubles as the bearer token presented to the
	// privileged admin-check function.
	sessionID := uuid.New().String()
	session := domainauth.Session{
		ID:          sessionID,
		Token:       sessionID,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		IssuedAt:    s.time.Now(),
		ExpiresAt:   identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{Session: session, User: user}, nil
}

// GetSession retrieves a session by ID, deleting and rejecting it when the
// expiry has passed.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.time.Now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Logout removes a session. A missing session ID is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
