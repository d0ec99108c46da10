package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/data/pgxutil"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// ProgressRepo provides database operations for watch progress.
type ProgressRepo struct {
	DB *sql.DB
}

// NewProgressRepo creates a new ProgressRepo.
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{DB: db}
}

const progressColumns = `user_id, training_id, watched_seconds, percent, completed_at, updated_at`

// Upsert writes a progress sample. watched_seconds and percent are monotonic
// (GREATEST keeps the stored maximum) and completed_at is never cleared once
// set, so replayed or out-of-order player samples cannot regress progress.
func (r *ProgressRepo) Upsert(ctx context.Context, params core.UpsertProgressParams) (*model.Progress, error) {
	if params.UserID == "" {
		return nil, errors.New("user_id is required and cannot be empty")
	}
	if params.TrainingID == "" {
		return nil, errors.New("training_id is required and cannot be empty")
	}

	var out model.Progress
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO progress (user_id, training_id, watched_seconds, percent, completed_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id, training_id) DO UPDATE SET
				watched_seconds = GREATEST(progress.watched_seconds, EXCLUDED.watched_seconds),
				percent = GREATEST(progress.percent, EXCLUDED.percent),
				completed_at = COALESCE(progress.completed_at, EXCLUDED.completed_at),
				updated_at = EXCLUDED.updated_at
			RETURNING `+progressColumns,
			params.UserID,
			params.TrainingID,
			params.WatchedSeconds,
			params.Percent,
			params.CompletedAt,
			params.UpdatedAt.UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Progress])
		return err
	}); err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to upsert progress: %w", err)
	}
	return &out, nil
}

// Get retrieves the progress row for a user and training.
func (r *ProgressRepo) Get(ctx context.Context, userID, trainingID string) (*model.Progress, error) {
	var out model.Progress
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+progressColumns+` FROM progress WHERE user_id = $1 AND training_id = $2`,
			userID, trainingID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Progress])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &out, nil
}

// List retrieves progress rows with optional filters and pagination.
func (r *ProgressRepo) List(ctx context.Context, opts model.ProgressListOptions) ([]*model.Progress, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if opts.UserID != nil {
		where = append(where, fmt.Sprintf("user_id = $%d", nextIdx()))
		args = append(args, *opts.UserID)
	}
	if opts.TrainingID != nil {
		where = append(where, fmt.Sprintf("training_id = $%d", nextIdx()))
		args = append(args, *opts.TrainingID)
	}
	if opts.Completed != nil {
		if *opts.Completed {
			where = append(where, "completed_at IS NOT NULL")
		} else {
			where = append(where, "completed_at IS NULL")
		}
	}

	query := `SELECT ` + progressColumns + ` FROM progress`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", nextIdx(), len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Progress
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Progress])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}

	res := make([]*model.Progress, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
