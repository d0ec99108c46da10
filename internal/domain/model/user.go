package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
)

const (
	maxEmailLen       = 320
	maxDisplayNameLen = 255
)

// User represents an employee profile backed by the users table.
// Role is the authoritative privilege level; any role hint carried in
// provider metadata is display-only.
type User struct {
	ID          string            `json:"id"                 db:"id"`
	Email       string            `json:"email"              db:"email"`
	DisplayName string            `json:"display_name"       db:"display_name"`
	Role        domainauth.Role   `json:"role"               db:"role"`
	GroupID     *string           `json:"group_id,omitempty" db:"group_id"`
	Metadata    map[string]string `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time         `json:"created_at"         db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"         db:"updated_at"`
}

// CreateUserRequest represents parameters to create a User.
type CreateUserRequest struct {
	ID          string            `json:"id,omitempty"` // provider subject; generated when absent
	Email       string            `json:"email"`
	DisplayName string            `json:"display_name"`
	Role        domainauth.Role   `json:"role,omitempty"`
	GroupID     *string           `json:"group_id,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// UpdateUserRequest represents parameters to update a User.
type UpdateUserRequest struct {
	Email       *string          `json:"email,omitempty"`
	DisplayName *string          `json:"display_name,omitempty"`
	Role        *domainauth.Role `json:"role,omitempty"`
	GroupID     *string          `json:"group_id,omitempty"` // empty string clears membership
}

// UsersListOptions controls paging and filtering for listing users.
type UsersListOptions struct {
	Limit   int
	Offset  int
	Q       *string          // substring match on email or display_name (ILIKE)
	Role    *domainauth.Role // exact match
	GroupID *string          // exact match
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return errors.New("email cannot exceed 320 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email must be a valid address")
	}
	if utf8.RuneCountInString(r.DisplayName) > maxDisplayNameLen {
		return errors.New("display_name cannot exceed 255 characters")
	}
	if r.Role == "" {
		r.Role = domainauth.RoleCollaborator
	}
	if !r.Role.Valid() {
		return errors.New("role must be one of: admin, manager, collaborator")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Email != nil || r.DisplayName != nil || r.Role != nil || r.GroupID != nil
}

// Validate validates UpdateUserRequest, ensuring at least one field is set and values are sane.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Email != nil {
		e := strings.TrimSpace(*r.Email)
		if e == "" {
			return errors.New("email cannot be empty")
		}
		if _, err := mail.ParseAddress(e); err != nil {
			return errors.New("email must be a valid address")
		}
	}
	if r.DisplayName != nil && utf8.RuneCountInString(*r.DisplayName) > maxDisplayNameLen {
		return errors.New("display_name cannot exceed 255 characters")
	}
	if r.Role != nil && !r.Role.Valid() {
		return errors.New("role must be one of: admin, manager, collaborator")
	}
	return nil
}
