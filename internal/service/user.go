package service

import (
	"context"
	"fmt"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	UserRepo core.UserRepository
}

// UserService orchestrates user profile CRUD for the admin surface.
// Login-time profile upserts go through AuthService instead.
type UserService struct {
	users core.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.UserRepo}
}

// Create validates and creates a user profile.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate user: %w", err)
	}
	return s.users.Create(ctx, req)
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// List returns users matching the options.
func (s *UserService) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.users.List(ctx, opts)
}

// Update validates and applies a partial update. Role changes flow through
// here, which is why the admin surface gates this operation.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate user update: %w", err)
	}
	return s.users.Update(ctx, id, req)
}

// Delete removes a user profile. Progress rows cascade in the store.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	return s.users.Delete(ctx, id)
}
