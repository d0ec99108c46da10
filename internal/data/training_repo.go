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

// TrainingRepo provides database operations for trainings.
type TrainingRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTrainingRepo creates a new TrainingRepo with real time provider.
func NewTrainingRepo(db *sql.DB) *TrainingRepo {
	return &TrainingRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const trainingColumns = `id, title, description, video_key, video_fallback_url, duration_seconds, published, created_at, updated_at`

// Create inserts a new training.
func (r *TrainingRepo) Create(ctx context.Context, req *model.CreateTrainingRequest) (*model.Training, error) {
	if req == nil {
		return nil, errors.New("create training request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	now := r.timeProvider.Now().UTC()
	var out model.Training
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO trainings (id, title, description, video_key, video_fallback_url, duration_seconds, published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			RETURNING `+trainingColumns,
			uuid.New().String(),
			strings.TrimSpace(req.Title),
			req.Description,
			strings.TrimSpace(req.VideoKey),
			req.VideoFallbackURL,
			req.DurationSeconds,
			published,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Training])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create training: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a training by ID.
func (r *TrainingRepo) GetByID(ctx context.Context, id string) (*model.Training, error) {
	var training model.Training
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		training, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Training])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to get training by ID: %w", err)
	}
	return &training, nil
}

// List retrieves trainings with optional filters and pagination.
func (r *TrainingRepo) List(ctx context.Context, opts model.TrainingsListOptions) ([]*model.Training, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		where = append(where, fmt.Sprintf("title ILIKE $%d", nextIdx()))
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
	}
	if opts.Published != nil {
		where = append(where, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *opts.Published)
	}

	query := `SELECT ` + trainingColumns + ` FROM trainings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", nextIdx(), len(args)+2)
	args = append(args, limit, offset)

	return r.collect(ctx, query, args...)
}

// ListVisibleToUser returns published trainings assigned to the user's group.
// Visibility is computed through assignments at query time rather than
// materialized per user.
func (r *TrainingRepo) ListVisibleToUser(ctx context.Context, userID string, limit, offset int) ([]*model.Training, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT DISTINCT t.id, t.title, t.description, t.video_key, t.video_fallback_url,
		       t.duration_seconds, t.published, t.created_at, t.updated_at
		FROM trainings t
		JOIN assignments a ON a.training_id = t.id
		JOIN users u ON u.group_id = a.group_id
		WHERE u.id = $1 AND t.published = TRUE
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3`

	return r.collect(ctx, query, userID, limit, offset)
}

// Update updates fields of a training.
func (r *TrainingRepo) Update(ctx context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 7)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		if *req.Description == "" {
			setParts = append(setParts, "description = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
			args = append(args, *req.Description)
		}
	}
	if req.VideoKey != nil {
		setParts = append(setParts, fmt.Sprintf("video_key = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.VideoKey))
	}
	if req.VideoFallbackURL != nil {
		if *req.VideoFallbackURL == "" {
			setParts = append(setParts, "video_fallback_url = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("video_fallback_url = $%d", nextIdx()))
			args = append(args, *req.VideoFallbackURL)
		}
	}
	if req.DurationSeconds != nil {
		setParts = append(setParts, fmt.Sprintf("duration_seconds = $%d", nextIdx()))
		args = append(args, *req.DurationSeconds)
	}
	if req.Published != nil {
		setParts = append(setParts, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *req.Published)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE trainings SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + trainingColumns

	var out model.Training
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Training])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to update training: %w", err)
	}
	return &out, nil
}

// Delete deletes a training by ID. Assignments and progress rows cascade.
func (r *TrainingRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete training: %w", err)
	}
	return rows > 0, nil
}

func (r *TrainingRepo) collect(ctx context.Context, query string, args ...any) ([]*model.Training, error) {
	var rowsOut []model.Training
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Training])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}

	res := make([]*model.Training, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
