package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/service"
)

func cookieByName(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_Login(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=%2Ftrainings%2F42", nil)

	h.Login(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://idp.example.com/authorize?state=state-1", w.Header().Get("Location"))

	state := cookieByName(t, w, oauthStateCookie)
	require.NotNil(t, state)
	assert.Equal(t, "state-1", state.Value)
	nonce := cookieByName(t, w, oauthNonceCookie)
	require.NotNil(t, nonce)
	assert.Equal(t, "nonce-1", nonce.Value)
	redirect := cookieByName(t, w, postLoginCookie)
	require.NotNil(t, redirect)
	assert.Equal(t, "/trainings/42", redirect.Value)
}

func TestAuthHandlers_LoginRejectsAbsoluteRedirect(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https%3A%2F%2Fevil.example.com", nil)

	h.Login(w, r)

	redirect := cookieByName(t, w, postLoginCookie)
	require.NotNil(t, redirect)
	assert.Equal(t, "/", redirect.Value)
}

func TestAuthHandlers_Callback(t *testing.T) {
	sess := domainauth.Session{
		ID:        "sess-1",
		Token:     "sess-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	svc := &stubAuthService{
		completeLoginFunc: func(_ context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			assert.Equal(t, "code-1", input.Code)
			assert.Equal(t, "state-1", input.State)
			assert.Equal(t, "nonce-1", input.Nonce)
			return &service.CompleteLoginResult{Session: sess}, nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=code-1&state=state-1", nil)
	r.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "state-1"})
	r.AddCookie(&http.Cookie{Name: oauthNonceCookie, Value: "nonce-1"})
	r.AddCookie(&http.Cookie{Name: postLoginCookie, Value: "/trainings/42"})

	h.Callback(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/trainings/42", w.Header().Get("Location"))

	session := cookieByName(t, w, sessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "sess-1", session.Value)
	assert.True(t, session.HttpOnly)
}

func TestAuthHandlers_CallbackStateMismatch(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=code-1&state=forged", nil)
	r.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "state-1"})

	h.Callback(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_state", body["error"])
}

func TestAuthHandlers_CallbackMissingCode(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/auth/callback?state=state-1", nil)

	h.Callback(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_Logout(t *testing.T) {
	var loggedOut string
	svc := &stubAuthService{
		logoutFunc: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})

	h.Logout(w, r)

	assert.Equal(t, "sess-1", loggedOut)
	assert.Equal(t, http.StatusFound, w.Code)

	cleared := cookieByName(t, w, sessionCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestAuthHandlers_LogoutClearsCookieOnBackendError(t *testing.T) {
	svc := &stubAuthService{
		logoutFunc: func(context.Context, string) error {
			return errors.New("redis unavailable")
		},
	}
	h := &AuthHandlers{Svc: svc}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})

	h.Logout(w, r)

	// The browser-side session is gone even when the store call failed.
	cleared := cookieByName(t, w, sessionCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestAuthHandlers_Status(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}

	t.Run("authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})

		h.Status(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["authenticated"])
	})

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)

		h.Status(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["authenticated"])
	})

	t.Run("expired session clears cookie", func(t *testing.T) {
		svc := &stubAuthService{
			getSessionFunc: func(context.Context, string) (*domainauth.Session, error) {
				return nil, service.ErrSessionExpired
			},
		}
		hh := &AuthHandlers{Svc: svc}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale"})

		hh.Status(w, r)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["authenticated"])
		cleared := cookieByName(t, w, sessionCookieName)
		require.NotNil(t, cleared)
		assert.Negative(t, cleared.MaxAge)
	})
}
