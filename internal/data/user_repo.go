package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coachbase/traindeck/internal/data/pgxutil"
	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// UserRepo provides database operations for user profiles.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

const userColumns = `id, email, display_name, role, group_id, metadata, created_at, updated_at`

// Create inserts a new user profile.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, email, display_name, role, group_id, metadata, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+userColumns,
			id,
			normalizeEmail(req.Email),
			strings.TrimSpace(req.DisplayName),
			req.Role,
			req.GroupID,
			req.Metadata,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrUserEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &out, nil
}

// Upsert creates the profile on first login or refreshes email and display
// name afterwards. The role column is deliberately left untouched on update:
// role is managed by administrators, not by the identity provider.
func (r *UserRepo) Upsert(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("upsert user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ID) == "" {
		return nil, errors.New("id is required and cannot be empty")
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, email, display_name, role, group_id, metadata, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT (id) DO UPDATE SET
				email = EXCLUDED.email,
				display_name = EXCLUDED.display_name,
				metadata = EXCLUDED.metadata,
				updated_at = EXCLUDED.updated_at
			RETURNING `+userColumns,
			strings.TrimSpace(req.ID),
			normalizeEmail(req.Email),
			strings.TrimSpace(req.DisplayName),
			req.Role,
			req.GroupID,
			req.Metadata,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		"failed to get user by ID", id)
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		"failed to get user by email", normalizeEmail(email))
}

// GetRole reads only the role column for a user. A row-level policy denial
// is mapped to ErrPermissionDenied so the caller can fall back to the
// privileged function.
func (r *UserRepo) GetRole(ctx context.Context, id string) (domainauth.Role, error) {
	var role domainauth.Role
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		if IsPermissionDenied(err) {
			return "", ErrPermissionDenied
		}
		return "", fmt.Errorf("failed to get user role: %w", err)
	}
	return role, nil
}

// List retrieves users with optional filters and pagination.
func (r *UserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		where = append(where, fmt.Sprintf("(email ILIKE $%d OR display_name ILIKE $%d)", nextIdx(), nextIdx()))
		args = append(args, q)
	}
	if opts.Role != nil {
		where = append(where, fmt.Sprintf("role = $%d", nextIdx()))
		args = append(args, *opts.Role)
	}
	if opts.GroupID != nil {
		where = append(where, fmt.Sprintf("group_id = $%d", nextIdx()))
		args = append(args, *opts.GroupID)
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", nextIdx(), len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a user profile.
func (r *UserRepo) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", nextIdx()))
		args = append(args, normalizeEmail(*req.Email))
	}
	if req.DisplayName != nil {
		setParts = append(setParts, fmt.Sprintf("display_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.DisplayName))
	}
	if req.Role != nil {
		setParts = append(setParts, fmt.Sprintf("role = $%d", nextIdx()))
		args = append(args, *req.Role)
	}
	if req.GroupID != nil {
		if strings.TrimSpace(*req.GroupID) == "" {
			setParts = append(setParts, "group_id = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("group_id = $%d", nextIdx()))
			args = append(args, *req.GroupID)
		}
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE users SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + userColumns

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if IsUniqueViolation(err) {
			return nil, ErrUserEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &out, nil
}

// Delete deletes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return rows > 0, nil
}

func (r *UserRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
