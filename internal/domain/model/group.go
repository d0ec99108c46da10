package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxGroupNameLen = 255

// Group represents an organizational unit trainings are assigned to.
type Group struct {
	ID          string    `json:"id"                    db:"id"`
	Name        string    `json:"name"                  db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// CreateGroupRequest represents parameters to create a Group.
type CreateGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateGroupRequest represents parameters to update a Group.
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GroupsListOptions controls paging and filtering for listing groups.
type GroupsListOptions struct {
	Limit  int
	Offset int
	Q      *string // substring match on name (ILIKE)
}

// Validate validates CreateGroupRequest.
func (r *CreateGroupRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxGroupNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateGroupRequest.
func (r *UpdateGroupRequest) HasUpdates() bool {
	return r.Name != nil || r.Description != nil
}

// Validate validates UpdateGroupRequest.
func (r *UpdateGroupRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxGroupNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	return nil
}
