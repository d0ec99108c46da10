package service

import (
	"context"
	"fmt"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// GroupServiceOptions groups dependencies for GroupService.
type GroupServiceOptions struct {
	GroupRepo core.GroupRepository
}

// GroupService orchestrates group CRUD.
type GroupService struct {
	groups core.GroupRepository
}

// NewGroupService constructs a new GroupService.
func NewGroupService(opts GroupServiceOptions) *GroupService {
	return &GroupService{groups: opts.GroupRepo}
}

// Create validates and creates a group.
func (s *GroupService) Create(ctx context.Context, req *model.CreateGroupRequest) (*model.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate group: %w", err)
	}
	return s.groups.Create(ctx, req)
}

// GetByID retrieves a group by ID.
func (s *GroupService) GetByID(ctx context.Context, id string) (*model.Group, error) {
	return s.groups.GetByID(ctx, id)
}

// List returns groups matching the options.
func (s *GroupService) List(ctx context.Context, opts model.GroupsListOptions) ([]*model.Group, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.groups.List(ctx, opts)
}

// Update validates and applies a partial update.
func (s *GroupService) Update(ctx context.Context, id string, req model.UpdateGroupRequest) (*model.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate group update: %w", err)
	}
	return s.groups.Update(ctx, id, req)
}

// Delete removes a group. Member users keep their profiles with membership
// cleared; assignments to the group cascade in the store.
func (s *GroupService) Delete(ctx context.Context, id string) (bool, error) {
	return s.groups.Delete(ctx, id)
}
