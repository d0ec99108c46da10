package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsAdmin(t *testing.T) {
	t.Parallel()
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleManager.IsAdmin())
	assert.False(t, RoleCollaborator.IsAdmin())
	assert.False(t, Role("").IsAdmin())
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleManager, true},
		{RoleCollaborator, true},
		{Role("superuser"), false},
		{Role(""), false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.role.Valid(), "role %q", tc.role)
	}
}

func TestSession_Expired(t *testing.T) {
	t.Parallel()
	now := time.Now()

	expired := Session{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, expired.Expired(now))

	live := Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, live.Expired(now))

	// Zero expiry means the backend did not bound the session; treat as live.
	unbounded := Session{}
	assert.False(t, unbounded.Expired(now))
}

func TestSession_IsZero(t *testing.T) {
	t.Parallel()
	assert.True(t, Session{}.IsZero())
	assert.False(t, Session{ID: "s1"}.IsZero())
	assert.False(t, Session{UserID: "u1"}.IsZero())
}
