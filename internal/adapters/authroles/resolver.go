package authroles

// Package authroles resolves administrator privilege for a signed-in user.

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/coachbase/traindeck/internal/data"
	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
)

// RoleReader reads a user's stored role. The read may be rejected by the
// store's row-level policy, surfacing data.ErrPermissionDenied.
type RoleReader interface {
	GetRole(ctx context.Context, id string) (domainauth.Role, error)
}

// AdminChecker is the privileged fallback check, typically the adminfn client.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID, bearerToken string) (bool, error)
}

// Resolver implements ports.RoleResolver with an ordered fallback chain:
// direct role lookup in the user store, then the privileged admin-check
// function, then false. Resolution never fails: every error path resolves
// to non-admin and is logged.
type Resolver struct {
	roles   RoleReader
	adminFn AdminChecker
	logger  *slog.Logger
	sf      singleflight.Group
}

// ResolverOptions holds dependencies for NewResolver.
type ResolverOptions struct {
	Roles   RoleReader
	AdminFn AdminChecker // optional; when nil the chain stops after the store lookup
	Logger  *slog.Logger
}

// NewResolver creates a role resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		roles:   opts.Roles,
		adminFn: opts.AdminFn,
		logger:  logger,
	}
}

// Resolve reports whether userID holds administrator privilege.
// Concurrent resolutions for the same user are deduplicated.
func (r *Resolver) Resolve(ctx context.Context, userID, bearerToken string) bool {
	if userID == "" {
		return false
	}

	v, _, _ := r.sf.Do(userID, func() (any, error) {
		return r.resolve(ctx, userID, bearerToken), nil
	})
	isAdmin, ok := v.(bool)
	return ok && isAdmin
}

func (r *Resolver) resolve(ctx context.Context, userID, bearerToken string) bool {
	role, err := r.roles.GetRole(ctx, userID)
	if err == nil {
		return role.IsAdmin()
	}

	switch {
	case errors.Is(err, data.ErrPermissionDenied):
		r.logger.InfoContext(ctx, "role lookup denied by store policy, using privileged fallback",
			"user_id", userID)
	case errors.Is(err, data.ErrUserNotFound):
		r.logger.InfoContext(ctx, "role lookup found no user row, using privileged fallback",
			"user_id", userID)
	default:
		r.logger.ErrorContext(ctx, "role lookup failed, using privileged fallback",
			"user_id", userID, "error", err)
	}

	if r.adminFn == nil || bearerToken == "" {
		return false
	}

	isAdmin, fnErr := r.adminFn.IsAdmin(ctx, userID, bearerToken)
	if fnErr != nil {
		r.logger.ErrorContext(ctx, "privileged admin check failed, resolving non-admin",
			"user_id", userID, "error", fnErr)
		return false
	}
	return isAdmin
}
