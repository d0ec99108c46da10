package authstate

// Package authstate owns the process-wide authentication and authorization
// state: who is signed in, whether they are an administrator, and whether
// the answer is still being determined.

import (
	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
)

// Event is a tagged auth-state-change notification from the identity
// backend. The controller handles each variant explicitly; unknown variants
// are logged and dropped.
type Event interface {
	isAuthEvent()
}

// SignedIn reports that a session was established, either by an interactive
// sign-in or by restoring a persisted session.
type SignedIn struct {
	Session domainauth.Session
}

// SignedOut reports that there is no session: signed out, expired, or never
// signed in.
type SignedOut struct{}

// TokenRefreshed reports that the current session's token was rotated.
// The carried session replaces the stored one wholesale.
type TokenRefreshed struct {
	Session domainauth.Session
}

// UserUpdated reports a profile change for the signed-in user.
type UserUpdated struct {
	User domainauth.Identity
}

func (SignedIn) isAuthEvent()       {}
func (SignedOut) isAuthEvent()      {}
func (TokenRefreshed) isAuthEvent() {}
func (UserUpdated) isAuthEvent()    {}
