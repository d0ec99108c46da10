package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/domain/model"
	mockauth "github.com/coachbase/traindeck/internal/mocks/auth"
	"github.com/coachbase/traindeck/internal/ports"
)

func upsertingUserRepo(role domainauth.Role) *fakeUserRepo {
	return &fakeUserRepo{
		UpsertFunc: func(_ context.Context, req *model.CreateUserRequest) (*model.User, error) {
			return &model.User{
				ID:          req.ID,
				Email:       req.Email,
				DisplayName: req.DisplayName,
				Role:        role,
				Metadata:    req.Metadata,
			}, nil
		},
	}
}

func TestAuthService_BeginLogin(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: mockauth.NewMemorySessionStore(),
		Users:    upsertingUserRepo(domainauth.RoleCollaborator),
	})

	result, err := svc.BeginLogin(context.Background(), "http://localhost/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.NotEmpty(t, result.State)
	assert.NotEmpty(t, result.Nonce)

	_, err = svc.BeginLogin(context.Background(), "")
	require.Error(t, err)
}

func TestAuthService_CompleteLogin(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	provider.DefaultUser.Metadata = map[string]string{"role": "admin"}
	sessions := mockauth.NewMemorySessionStore()
	users := upsertingUserRepo(domainauth.RoleCollaborator)

	svc := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: sessions,
		Users:    users,
	})

	result, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "state-1", Nonce: "nonce-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "mock-user-1", result.Session.UserID)
	assert.Equal(t, "mock.user@example.com", result.Session.Email)
	assert.Equal(t, result.Session.ID, result.Session.Token)
	assert.Equal(t, domainauth.RoleCollaborator, result.Session.Role,
		"session role comes from the stored profile, not the metadata hint")

	stored, err := sessions.Get(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.UserID, stored.UserID)
}

func TestAuthService_CompleteLoginValidation(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: mockauth.NewMemorySessionStore(),
		Users:    upsertingUserRepo(domainauth.RoleCollaborator),
	})

	tests := []struct {
		name  string
		input CompleteLoginInput
	}{
		{"missing code", CompleteLoginInput{State: "s", Nonce: "n"}},
		{"missing state", CompleteLoginInput{Code: "c", Nonce: "n"}},
		{"missing nonce", CompleteLoginInput{Code: "c", State: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteLogin(context.Background(), tt.input)
			require.Error(t, err)
		})
	}
}

func TestAuthService_CompleteLoginExchangeFailure(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	provider.ExchangeFunc = func(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, errors.New("idp rejected code")
	}

	svc := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: mockauth.NewMemorySessionStore(),
		Users:    upsertingUserRepo(domainauth.RoleCollaborator),
	})

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange authorization code")
}

func TestAuthService_GetSessionExpired(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	now := time.Now()
	expired := domainauth.Session{
		ID:        "sess-expired",
		UserID:    "user-1",
		ExpiresAt: now.Add(time.Minute),
	}
	require.NoError(t, sessions.Save(context.Background(), expired))

	clock := fixedClock(now.Add(time.Hour))
	svc := NewAuthService(AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: sessions,
		Users:    upsertingUserRepo(domainauth.RoleCollaborator),
		Time:     clock,
	})

	_, err := svc.GetSession(context.Background(), "sess-expired")
	require.ErrorIs(t, err, ErrSessionExpired)

	// The expired session is deleted on detection.
	_, err = sessions.Get(context.Background(), "sess-expired")
	assert.Equal(t, mockauth.ErrNotFound, err)
}

func TestAuthService_GetSessionLive(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	live := domainauth.Session{
		ID:        "sess-live",
		UserID:    "user-1",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Save(context.Background(), live))

	svc := NewAuthService(AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: sessions,
		Users:    upsertingUserRepo(domainauth.RoleAdmin),
	})

	got, err := svc.GetSession(context.Background(), "sess-live")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domainauth.RoleAdmin, got.Role)
}

func TestAuthService_Logout(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	svc := NewAuthService(AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: sessions,
		Users:    upsertingUserRepo(domainauth.RoleCollaborator),
	})

	require.NoError(t, svc.Logout(context.Background(), "sess-1"))
	_, err := sessions.Get(context.Background(), "sess-1")
	assert.Equal(t, mockauth.ErrNotFound, err)

	// Empty session ID is a no-op.
	require.NoError(t, svc.Logout(context.Background(), ""))
}
