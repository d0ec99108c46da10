package authstate

import (
	"context"
	"log/slog"
	"sync"

	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/ports"
)

// IdentityBackend is the external identity service the controller drives.
// Implementations wrap the hosted auth provider; the dev/test backend is an
// in-memory fake.
type IdentityBackend interface {
	SignInWithPassword(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string, metadata map[string]string) error
	SignOut(ctx context.Context) error
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, newPassword string) error
	// GetSession returns the persisted session, or a zero session when none
	// exists.
	GetSession(ctx context.Context) (domainauth.Session, error)
	// OnAuthStateChange registers a callback for session-change events and
	// returns an unsubscribe function. Events are delivered in emission order.
	OnAuthStateChange(fn func(Event)) (unsubscribe func())
}

// Notifier surfaces user-facing outcome messages (toasts).
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Snapshot is the externally visible auth state. It is read atomically:
// consumers never observe Loading false before IsAdmin reflects the outcome
// of the most recent admin check for the current user.
type Snapshot struct {
	User    domainauth.Identity
	Session domainauth.Session
	Loading bool
	IsAdmin bool
}

// Authenticated reports whether the snapshot carries a live session.
func (s Snapshot) Authenticated() bool { return !s.Session.IsZero() }

// Controller is the single owner of auth state. It is an explicit instance
// handed to consumers, never an ambient singleton, so tests can construct
// independent controllers.
//
// Events from the identity backend are processed strictly in emission order
// by one goroutine. Admin checks run outside the event handler; their
// results are committed only if the identity they were issued for is still
// current (generation compare before commit), so a superseded check's
// result is silently dropped.
type Controller struct {
	backend  IdentityBackend
	roles    ports.RoleResolver
	notifier Notifier
	logger   *slog.Logger

	mu                 sync.Mutex
	snap               Snapshot
	adminCheckComplete bool
	gen                uint64
	closed             bool
	unsubscribe        func()

	events chan Event
	stop   chan struct{}
	wg     sync.WaitGroup
}

// ControllerOptions holds dependencies for NewController.
type ControllerOptions struct {
	Backend  IdentityBackend
	Roles    ports.RoleResolver
	Notifier Notifier // optional, defaults to NopNotifier
	Logger   *slog.Logger
}

// NewController creates a controller in the initializing state:
// Loading is true until the first session restore settles.
func NewController(opts ControllerOptions) *Controller {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		backend:  opts.Backend,
		roles:    opts.Roles,
		notifier: notifier,
		logger:   logger,
		snap:     Snapshot{Loading: true},
		events:   make(chan Event, 16),
		stop:     make(chan struct{}),
	}
}

// Start subscribes to backend session-change events and then restores any
// persisted session. The two paths can race; both feed the same ordered
// event queue, so the later event wins. A restore failure settles the
// controller as unauthenticated rather than leaving it loading forever.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.unsubscribe = c.backend.OnAuthStateChange(c.enqueue)
	c.mu.Unlock()

	c.wg.Add(1)
	go c.loop(ctx)

	sess, err := c.backend.GetSession(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "session restore failed, treating as unauthenticated", "error", err)
		c.enqueue(SignedOut{})
		return
	}
	if sess.IsZero() {
		c.enqueue(SignedOut{})
		return
	}
	c.enqueue(SignedIn{Session: sess})
}

// Close unsubscribes from backend events and makes any late admin-check
// completion a no-op. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	unsub := c.unsubscribe
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	close(c.stop)
}

// Snapshot returns a copy of the current auth state. Never blocks.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// SignIn delegates to the identity backend. State is not committed here;
// the resulting session arrives through the event subscription.
func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	c.mu.Lock()
	c.snap.Loading = true
	c.adminCheckComplete = false
	c.mu.Unlock()

	if err := c.backend.SignInWithPassword(ctx, email, password); err != nil {
		c.mu.Lock()
		c.snap.Loading = false
		c.mu.Unlock()
		c.notifier.Error("Sign in failed: " + err.Error())
		return err
	}
	c.notifier.Success("Signed in")
	return nil
}

// SignUp delegates to the identity backend. New accounts start non-admin,
// so no admin-check reset is needed.
func (c *Controller) SignUp(ctx context.Context, email, password string, metadata map[string]string) error {
	c.mu.Lock()
	c.snap.Loading = true
	c.mu.Unlock()

	if err := c.backend.SignUp(ctx, email, password, metadata); err != nil {
		c.mu.Lock()
		c.snap.Loading = false
		c.mu.Unlock()
		c.notifier.Error("Sign up failed: " + err.Error())
		return err
	}
	c.notifier.Success("Account created")
	return nil
}

// SignOut delegates to the identity backend and then unconditionally clears
// local state. Local state must not remain stale after a user-initiated
// sign-out, whatever the backend call did.
func (c *Controller) SignOut(ctx context.Context) error {
	err := c.backend.SignOut(ctx)
	c.clearState()
	if err != nil {
		c.logger.ErrorContext(ctx, "backend sign-out failed, local state cleared anyway", "error", err)
		c.notifier.Error("Sign out failed: " + err.Error())
		return err
	}
	c.notifier.Success("Signed out")
	return nil
}

// ResetPassword delegates to the identity backend. No local-state change.
func (c *Controller) ResetPassword(ctx context.Context, email, redirectTo string) error {
	if err := c.backend.ResetPasswordForEmail(ctx, email, redirectTo); err != nil {
		c.notifier.Error("Password reset failed: " + err.Error())
		return err
	}
	c.notifier.Success("Password reset email sent")
	return nil
}

// UpdatePassword delegates to the identity backend. No local-state change.
func (c *Controller) UpdatePassword(ctx context.Context, newPassword string) error {
	if err := c.backend.UpdatePassword(ctx, newPassword); err != nil {
		c.notifier.Error("Password update failed: " + err.Error())
		return err
	}
	c.notifier.Success("Password updated")
	return nil
}

func (c *Controller) enqueue(ev Event) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	select {
	case c.events <- ev:
	case <-c.stop:
	}
}

func (c *Controller) loop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-c.stop:
			return
		case ev := <-c.events:
			c.handle(ctx, ev)
		}
	}
}

func (c *Controller) handle(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case SignedIn:
		c.commitSession(ctx, e.Session)
	case TokenRefreshed:
		c.commitSession(ctx, e.Session)
	case SignedOut:
		c.clearState()
	case UserUpdated:
		c.mu.Lock()
		if !c.snap.Session.IsZero() && c.snap.Session.UserID == e.User.UserID {
			c.snap.User = e.User
		}
		c.mu.Unlock()
	default:
		c.logger.WarnContext(ctx, "unhandled auth event", "event", ev)
	}
}

// commitSession stores the new session and user as one step, invalidates
// any in-flight admin check by bumping the generation, and starts a fresh
// check outside the event handler. The check's own completion drives the
// Loading transition.
func (c *Controller) commitSession(ctx context.Context, sess domainauth.Session) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.snap.Session = sess
	c.snap.User = c.identityFor(sess)
	c.snap.Loading = true
	c.adminCheckComplete = false
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		isAdmin := c.roles.Resolve(ctx, sess.UserID, sess.Token)
		c.commitAdminResult(gen, isAdmin)
	}()
}

// identityFor derives the user identity from a session, preserving groups
// and metadata when the identity is unchanged. Callers hold c.mu.
func (c *Controller) identityFor(sess domainauth.Session) domainauth.Identity {
	id := domainauth.Identity{
		UserID:      sess.UserID,
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
		ExpiresAt:   sess.ExpiresAt,
	}
	if c.snap.User.UserID == sess.UserID {
		id.Groups = c.snap.User.Groups
		id.Metadata = c.snap.User.Metadata
	}
	return id
}

// commitAdminResult applies an admin-check outcome only if the identity it
// was issued for is still current. Stale and post-Close results are dropped.
func (c *Controller) commitAdminResult(gen uint64, isAdmin bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return
	}
	c.snap.IsAdmin = isAdmin
	c.adminCheckComplete = true
	c.snap.Loading = false
}

// clearState resets to the unauthenticated, settled state and invalidates
// any in-flight admin check.
func (c *Controller) clearState() {
	c.mu.Lock()
	c.gen++
	c.snap = Snapshot{}
	c.adminCheckComplete = true
	c.mu.Unlock()
}
