package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coachbase/traindeck/internal/data/pgxutil"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// AssignmentRepo provides database operations for assignments.
type AssignmentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAssignmentRepo creates a new AssignmentRepo with real time provider.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const assignmentColumns = `id, training_id, group_id, due_at, created_at`

// Create inserts a new assignment. The (training_id, group_id) pair is unique.
func (r *AssignmentRepo) Create(ctx context.Context, req *model.CreateAssignmentRequest) (*model.Assignment, error) {
	if req == nil {
		return nil, errors.New("create assignment request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Assignment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO assignments (id, training_id, group_id, due_at, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+assignmentColumns,
			uuid.New().String(),
			strings.TrimSpace(req.TrainingID),
			strings.TrimSpace(req.GroupID),
			req.DueAt,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Assignment])
		return err
	}); err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrAssignmentExists
		}
		if IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: training or group does not exist", ErrAssignmentNotFound)
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an assignment by ID.
func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var out model.Assignment
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Assignment])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment by ID: %w", err)
	}
	return &out, nil
}

// List retrieves assignments with optional filters and pagination.
func (r *AssignmentRepo) List(ctx context.Context, opts model.AssignmentsListOptions) ([]*model.Assignment, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if opts.TrainingID != nil {
		where = append(where, fmt.Sprintf("training_id = $%d", nextIdx()))
		args = append(args, *opts.TrainingID)
	}
	if opts.GroupID != nil {
		where = append(where, fmt.Sprintf("group_id = $%d", nextIdx()))
		args = append(args, *opts.GroupID)
	}

	query := `SELECT ` + assignmentColumns + ` FROM assignments`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", nextIdx(), len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Assignment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Assignment])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	res := make([]*model.Assignment, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete deletes an assignment by ID.
func (r *AssignmentRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	return rows > 0, nil
}
