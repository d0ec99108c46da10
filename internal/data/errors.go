package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Shared sentinel errors for data-layer repositories.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailExists    = errors.New("user email already exists")
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupNameExists    = errors.New("group name already exists")
	ErrTrainingNotFound   = errors.New("training not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAssignmentExists   = errors.New("training is already assigned to this group")
	ErrProgressNotFound   = errors.New("progress not found")

	// ErrPermissionDenied is surfaced when the store's row-level policy
	// rejects a read. Callers use it to trigger the privileged-function
	// fallback instead of treating the failure as fatal.
	ErrPermissionDenied = errors.New("permission denied by row-level policy")
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IsPermissionDenied reports whether err is a Postgres insufficient-privilege
// error (row-level security or grant denial).
func IsPermissionDenied(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InsufficientPrivilege
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
