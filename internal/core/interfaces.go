package core

import (
	"context"
	"time"

	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user profile data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetRole reads only the role column for a user. The read is subject to
	// the store's row-level policy; a denied read surfaces
	// data.ErrPermissionDenied so callers can fall back to the privileged
	// function.
	GetRole(ctx context.Context, id string) (domainauth.Role, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	// Upsert creates the profile on first login or refreshes email and
	// display name on subsequent logins, never touching the role column.
	Upsert(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
}

// GroupRepository defines the interface for group data operations.
type GroupRepository interface {
	Create(ctx context.Context, req *model.CreateGroupRequest) (*model.Group, error)
	GetByID(ctx context.Context, id string) (*model.Group, error)
	GetByName(ctx context.Context, name string) (*model.Group, error)
	List(ctx context.Context, opts model.GroupsListOptions) ([]*model.Group, error)
	Update(ctx context.Context, id string, req model.UpdateGroupRequest) (*model.Group, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TrainingRepository defines the interface for training data operations.
type TrainingRepository interface {
	Create(ctx context.Context, req *model.CreateTrainingRequest) (*model.Training, error)
	GetByID(ctx context.Context, id string) (*model.Training, error)
	List(ctx context.Context, opts model.TrainingsListOptions) ([]*model.Training, error)
	// ListVisibleToUser returns published trainings assigned to the user's
	// group, computed through assignments at query time.
	ListVisibleToUser(ctx context.Context, userID string, limit, offset int) ([]*model.Training, error)
	Update(ctx context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// AssignmentRepository defines the interface for assignment data operations.
type AssignmentRepository interface {
	Create(ctx context.Context, req *model.CreateAssignmentRequest) (*model.Assignment, error)
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	List(ctx context.Context, opts model.AssignmentsListOptions) ([]*model.Assignment, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UpsertProgressParams groups parameters for ProgressRepository.Upsert to keep param count ≤3.
type UpsertProgressParams struct {
	UserID         string
	TrainingID     string
	WatchedSeconds int
	Percent        float64
	CompletedAt    *time.Time
	UpdatedAt      time.Time
}

// ProgressRepository defines the interface for progress data operations.
type ProgressRepository interface {
	// Upsert writes a progress sample. watched_seconds is monotonic: the
	// stored value never decreases, and completed_at is never cleared once set.
	Upsert(ctx context.Context, params UpsertProgressParams) (*model.Progress, error)
	Get(ctx context.Context, userID, trainingID string) (*model.Progress, error)
	List(ctx context.Context, opts model.ProgressListOptions) ([]*model.Progress, error)
}

// ReportRepository defines the interface for aggregate reporting queries.
type ReportRepository interface {
	TrainingCompletion(ctx context.Context) ([]model.TrainingReportRow, error)
	GroupCompletion(ctx context.Context) ([]model.GroupReportRow, error)
}
