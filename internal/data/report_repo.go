package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/coachbase/traindeck/internal/data/pgxutil"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// ReportRepo runs aggregate reporting queries. Aggregation happens in SQL so
// report pages stay a single round trip per view regardless of company size.
type ReportRepo struct {
	DB *sql.DB
}

// NewReportRepo creates a new ReportRepo.
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{DB: db}
}

// TrainingCompletion aggregates per-training completion across all assigned users.
func (r *ReportRepo) TrainingCompletion(ctx context.Context) ([]model.TrainingReportRow, error) {
	const query = `
		SELECT t.id AS training_id,
		       t.title,
		       COUNT(DISTINCT u.id) AS assigned_users,
		       COUNT(DISTINCT p.user_id) AS started_users,
		       COUNT(DISTINCT p.user_id) FILTER (WHERE p.completed_at IS NOT NULL) AS completed_users,
		       COALESCE(AVG(p.percent), 0)::float8 AS avg_percent
		FROM trainings t
		JOIN assignments a ON a.training_id = t.id
		JOIN users u ON u.group_id = a.group_id
		LEFT JOIN progress p ON p.training_id = t.id AND p.user_id = u.id
		GROUP BY t.id, t.title
		ORDER BY t.title ASC`

	var rowsOut []model.TrainingReportRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TrainingReportRow])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to aggregate training completion: %w", err)
	}
	return rowsOut, nil
}

// GroupCompletion aggregates completion per group across its assigned trainings.
// completion_rate is completed (user, training) pairs over assigned pairs.
func (r *ReportRepo) GroupCompletion(ctx context.Context) ([]model.GroupReportRow, error) {
	const query = `
		SELECT g.id AS group_id,
		       g.name AS group_name,
		       m.members,
		       asg.assigned_trainings,
		       CASE WHEN m.members = 0 OR asg.assigned_trainings = 0 THEN 0
		            ELSE c.completed::float8 / (m.members * asg.assigned_trainings)
		       END AS completion_rate
		FROM groups g
		CROSS JOIN LATERAL (
			SELECT COUNT(*) AS members FROM users u WHERE u.group_id = g.id
		) m
		CROSS JOIN LATERAL (
			SELECT COUNT(*) AS assigned_trainings FROM assignments a WHERE a.group_id = g.id
		) asg
		CROSS JOIN LATERAL (
			SELECT COUNT(*) AS completed
			FROM assignments a2
			JOIN users u2 ON u2.group_id = a2.group_id
			JOIN progress p ON p.user_id = u2.id AND p.training_id = a2.training_id
			WHERE a2.group_id = g.id AND p.completed_at IS NOT NULL
		) c
		ORDER BY g.name ASC`

	var rowsOut []model.GroupReportRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.GroupReportRow])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to aggregate group completion: %w", err)
	}
	return rowsOut, nil
}
