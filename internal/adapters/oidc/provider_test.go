package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachbase/traindeck/internal/ports"
)

func newDiscoveryServer(t *testing.T) *httptest.Server {
	t.Helper()
	issuer := ""
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := map[string]any{
			"issuer":                 issuer,
			"authorization_endpoint": "https://idp.example.com/auth",
			"token_endpoint":         "https://idp.example.com/token",
			"userinfo_endpoint":      "https://idp.example.com/userinfo",
			"jwks_uri":               "https://idp.example.com/jwks",
		}
		_ = json.NewEncoder(w).Encode(doc)
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	issuer = srv.URL
	return srv
}

func TestNewProvider_Success(t *testing.T) {
	srv := newDiscoveryServer(t)

	provider, err := NewProvider(ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/callback",
		Scope:        "openid profile email groups",
		DiscoveryURL: srv.URL,
		LogoutURL:    "https://idp.example.com/logout",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example.com/auth", provider.config.Endpoint.AuthURL)
	assert.Equal(t, "https://idp.example.com/token", provider.config.Endpoint.TokenURL)
	assert.Equal(t, "https://idp.example.com/logout", provider.LogoutURL())
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
		errMsg string
	}{
		{
			name: "missing client ID",
			config: ProviderConfig{
				ClientSecret: "secret",
				RedirectURL:  "http://localhost/callback",
				DiscoveryURL: "http://example.com",
			},
			errMsg: "client ID is required",
		},
		{
			name: "missing client secret",
			config: ProviderConfig{
				ClientID:     "client",
				RedirectURL:  "http://localhost/callback",
				DiscoveryURL: "http://example.com",
			},
			errMsg: "client secret is required",
		},
		{
			name:   "missing redirect URL",
			config: ProviderConfig{ClientID: "client", ClientSecret: "secret", DiscoveryURL: "http://example.com"},
			errMsg: "redirect URL is required",
		},
		{
			name:   "missing discovery URL",
			config: ProviderConfig{ClientID: "client", ClientSecret: "secret", RedirectURL: "http://localhost/callback"},
			errMsg: "discovery URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProvider_Begin(t *testing.T) {
	srv := newDiscoveryServer(t)

	provider, err := NewProvider(ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/callback",
		Scope:        "openid profile email",
		DiscoveryURL: srv.URL,
	})
	require.NoError(t, err)

	authURL, state, nonce, err := provider.Begin(context.Background(), ports.BeginInput{
		RedirectURL: "http://localhost:8080/callback",
	})
	require.NoError(t, err)
	assert.Len(t, state, 32)
	assert.Len(t, nonce, 32)
	assert.NotEqual(t, state, nonce)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "test-client", q.Get("client_id"))
	assert.Equal(t, state, q.Get("state"))
	assert.Equal(t, nonce, q.Get("nonce"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "select_account", q.Get("prompt"))
}

func TestProvider_BeginMissingRedirect(t *testing.T) {
	srv := newDiscoveryServer(t)

	provider, err := NewProvider(ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/callback",
		Scope:        "openid",
		DiscoveryURL: srv.URL,
	})
	require.NoError(t, err)

	_, _, _, err = provider.Begin(context.Background(), ports.BeginInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect URL is required")
}

func TestMapIDTokenClaims(t *testing.T) {
	f := mapIDTokenClaims(idTokenClaims{
		Sub:        "user-42",
		Email:      "jordan@example.com",
		Name:       "Jordan Example",
		GivenName:  "Jordan",
		FamilyName: "Example",
		Groups:     []string{"trainers", "staff"},
		Role:       "admin",
		Company:    "Acme",
	})

	assert.Equal(t, "user-42", f.userID)
	assert.Equal(t, "jordan@example.com", f.email)
	assert.Equal(t, "Jordan Example", f.displayName())
	assert.Equal(t, []string{"trainers", "staff"}, f.groups)
	assert.Equal(t, map[string]string{"role": "admin", "company": "Acme"}, f.metadata)
}

func TestMapIDTokenClaims_NoHints(t *testing.T) {
	f := mapIDTokenClaims(idTokenClaims{Sub: "user-1", Email: "a@b.com"})
	assert.Nil(t, f.metadata)
}

func TestIDFields_DisplayNameFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		fields idFields
		want   string
	}{
		{
			name:   "composite name wins",
			fields: idFields{name: "Full Name", givenName: "Given", familyName: "Family"},
			want:   "Full Name",
		},
		{
			name:   "given plus family",
			fields: idFields{givenName: "Given", familyName: "Family"},
			want:   "Given Family",
		},
		{
			name:   "given only",
			fields: idFields{givenName: "Given"},
			want:   "Given",
		},
		{
			name:   "email local part",
			fields: idFields{email: "someone@example.com"},
			want:   "someone",
		},
		{
			name:   "empty",
			fields: idFields{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fields.displayName())
		})
	}
}

func TestFillFromUserInfoClaims(t *testing.T) {
	f := idFields{userID: "from-token"}
	fillFromUserInfoClaims(&f, UserInfo{
		Subject:    "from-userinfo",
		Email:      "u@example.com",
		Name:       "User Name",
		GivenName:  "User",
		FamilyName: "Name",
		Groups:     []string{"staff"},
	})

	assert.Equal(t, "from-token", f.userID, "id_token value is not overwritten")
	assert.Equal(t, "u@example.com", f.email)
	assert.Equal(t, "User Name", f.name)
	assert.Equal(t, []string{"staff"}, f.groups)
}

func TestGenerateRandomString(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		s, err := generateRandomString(32)
		require.NoError(t, err)
		assert.Len(t, s, 32)
		assert.False(t, seen[s], "random strings must not repeat")
		seen[s] = true
	}

	empty, err := generateRandomString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
