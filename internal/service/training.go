package service

import (
	"context"
	"fmt"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// TrainingServiceOptions groups dependencies for TrainingService.
type TrainingServiceOptions struct {
	TrainingRepo core.TrainingRepository
}

// TrainingService orchestrates training CRUD and per-user visibility.
type TrainingService struct {
	trainings core.TrainingRepository
}

// NewTrainingService constructs a new TrainingService.
func NewTrainingService(opts TrainingServiceOptions) *TrainingService {
	return &TrainingService{trainings: opts.TrainingRepo}
}

// Create validates and creates a training.
func (s *TrainingService) Create(ctx context.Context, req *model.CreateTrainingRequest) (*model.Training, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate training: %w", err)
	}
	return s.trainings.Create(ctx, req)
}

// GetByID retrieves a training by ID.
func (s *TrainingService) GetByID(ctx context.Context, id string) (*model.Training, error) {
	return s.trainings.GetByID(ctx, id)
}

// List returns trainings matching the options. Intended for admin views;
// employees use ListVisibleTo.
func (s *TrainingService) List(ctx context.Context, opts model.TrainingsListOptions) ([]*model.Training, error) {
	return s.trainings.List(ctx, normalizeTrainingListOptions(opts))
}

// ListVisibleTo returns the published trainings assigned to the user's
// group. Visibility is computed through assignments at query time.
func (s *TrainingService) ListVisibleTo(ctx context.Context, userID string, limit, offset int) ([]*model.Training, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.trainings.ListVisibleToUser(ctx, userID, limit, offset)
}

// Update validates and applies a partial update.
func (s *TrainingService) Update(ctx context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate training update: %w", err)
	}
	return s.trainings.Update(ctx, id, req)
}

// Delete removes a training. Assignments and progress rows cascade in the store.
func (s *TrainingService) Delete(ctx context.Context, id string) (bool, error) {
	return s.trainings.Delete(ctx, id)
}

const defaultListLimit = 50

func normalizeTrainingListOptions(opts model.TrainingsListOptions) model.TrainingsListOptions {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
