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
	"github.com/coachbase/traindeck/internal/domain/model"
)

// GroupRepo provides database operations for groups.
type GroupRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewGroupRepo creates a new GroupRepo with real time provider.
func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const groupColumns = `id, name, description, created_at, updated_at`

// Create inserts a new group.
func (r *GroupRepo) Create(ctx context.Context, req *model.CreateGroupRequest) (*model.Group, error) {
	if req == nil {
		return nil, errors.New("create group request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Group
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO groups (id, name, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING `+groupColumns,
			uuid.New().String(),
			strings.TrimSpace(req.Name),
			req.Description,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Group])
		return err
	}); err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrGroupNameExists
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a group by ID.
func (r *GroupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	return r.getByQuery(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = $1`,
		"failed to get group by ID", id)
}

// GetByName retrieves a group by name.
func (r *GroupRepo) GetByName(ctx context.Context, name string) (*model.Group, error) {
	return r.getByQuery(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE name = $1`,
		"failed to get group by name", strings.TrimSpace(name))
}

// List retrieves groups with optional name filter and pagination.
func (r *GroupRepo) List(ctx context.Context, opts model.GroupsListOptions) ([]*model.Group, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + groupColumns + ` FROM groups`
	args := make([]any, 0, 3)
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		query += " WHERE name ILIKE $1"
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Group
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Group])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	res := make([]*model.Group, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a group.
func (r *GroupRepo) Update(ctx context.Context, id string, req model.UpdateGroupRequest) (*model.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		if *req.Description == "" {
			setParts = append(setParts, "description = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
			args = append(args, *req.Description)
		}
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE groups SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + groupColumns

	var out model.Group
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Group])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		if IsUniqueViolation(err) {
			return nil, ErrGroupNameExists
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return &out, nil
}

// Delete deletes a group by ID. Membership is cleared by the users table's
// ON DELETE SET NULL; assignments cascade.
func (r *GroupRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete group: %w", err)
	}
	return rows > 0, nil
}

func (r *GroupRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Group, error) {
	var group model.Group
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		group, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Group])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &group, nil
}
