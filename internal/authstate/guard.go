package authstate

import "time"

// Default navigation targets for guard redirects.
const (
	LoginPath = "/auth/login"
	HomePath  = "/"
)

// AccessDeniedNotice is surfaced when a non-admin reaches an admin route.
const AccessDeniedNotice = "This area is restricted to administrators"

// DecisionKind enumerates guard outcomes.
type DecisionKind int

const (
	// Placeholder means the state is not settled yet; render nothing
	// protected and make no navigation decision.
	Placeholder DecisionKind = iota
	// Allow permits rendering the guarded content.
	Allow
	// RedirectLogin sends the visitor to the login entry point, persisting
	// the current path as the return URL.
	RedirectLogin
	// RedirectHome sends an authenticated non-admin to the landing page
	// with an access-denied notice.
	RedirectHome
)

// Decision is a guard outcome. Exactly one of the redirect fields is
// meaningful for the corresponding kind.
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
	// ReturnURL is the path to restore after login. Set for RedirectLogin.
	ReturnURL string
	// Notice is a user-facing message. Set for RedirectHome.
	Notice string
}

// EvaluateAuthenticated gates content that requires a signed-in user.
// The decision is a pure function of one snapshot read, so a guard can
// never render guarded content and then immediately redirect: the settled
// check and the allow decision come from the same snapshot.
//
// An expired session is treated as unauthenticated even when a stale user
// identity is still present.
func EvaluateAuthenticated(snap Snapshot, path string, now time.Time) Decision {
	if snap.Loading {
		return Decision{Kind: Placeholder}
	}
	if snap.Session.IsZero() || snap.Session.Expired(now) {
		return Decision{Kind: RedirectLogin, RedirectTo: LoginPath, ReturnURL: path}
	}
	return Decision{Kind: Allow}
}

// EvaluateAdmin gates content that additionally requires the admin role.
func EvaluateAdmin(snap Snapshot, path string, now time.Time) Decision {
	d := EvaluateAuthenticated(snap, path, now)
	if d.Kind != Allow {
		return d
	}
	if !snap.IsAdmin {
		return Decision{Kind: RedirectHome, RedirectTo: HomePath, Notice: AccessDeniedNotice}
	}
	return Decision{Kind: Allow}
}
