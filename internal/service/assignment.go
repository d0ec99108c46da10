package service

import (
	"context"
	"fmt"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// AssignmentServiceOptions groups dependencies for AssignmentService.
type AssignmentServiceOptions struct {
	AssignmentRepo core.AssignmentRepository
}

// AssignmentService manages the training-to-group assignment links that
// drive employee visibility.
type AssignmentService struct {
	assignments core.AssignmentRepository
}

// NewAssignmentService constructs a new AssignmentService.
func NewAssignmentService(opts AssignmentServiceOptions) *AssignmentService {
	return &AssignmentService{assignments: opts.AssignmentRepo}
}

// Create validates and creates an assignment. Assigning the same training
// to the same group twice surfaces data.ErrAssignmentExists.
func (s *AssignmentService) Create(ctx context.Context, req *model.CreateAssignmentRequest) (*model.Assignment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate assignment: %w", err)
	}
	return s.assignments.Create(ctx, req)
}

// GetByID retrieves an assignment by ID.
func (s *AssignmentService) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	return s.assignments.GetByID(ctx, id)
}

// List returns assignments matching the options.
func (s *AssignmentService) List(ctx context.Context, opts model.AssignmentsListOptions) ([]*model.Assignment, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.assignments.List(ctx, opts)
}

// Delete removes an assignment, revoking the group's visibility of the
// training. Progress rows are kept.
func (s *AssignmentService) Delete(ctx context.Context, id string) (bool, error) {
	return s.assignments.Delete(ctx, id)
}
