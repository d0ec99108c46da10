package model

import (
	"errors"
	"strings"
	"time"
)

// Assignment links a training to a group, with an optional due date.
// Visibility for individual users is computed through group membership at
// query time; assignments are never materialized per user.
type Assignment struct {
	ID         string     `json:"id"               db:"id"`
	TrainingID string     `json:"training_id"      db:"training_id"`
	GroupID    string     `json:"group_id"         db:"group_id"`
	DueAt      *time.Time `json:"due_at,omitempty" db:"due_at"`
	CreatedAt  time.Time  `json:"created_at"       db:"created_at"`
}

// CreateAssignmentRequest represents parameters to create an Assignment.
type CreateAssignmentRequest struct {
	TrainingID string     `json:"training_id"`
	GroupID    string     `json:"group_id"`
	DueAt      *time.Time `json:"due_at,omitempty"`
}

// AssignmentsListOptions controls paging and filtering for listing assignments.
type AssignmentsListOptions struct {
	Limit      int
	Offset     int
	TrainingID *string // exact match
	GroupID    *string // exact match
}

// Validate validates CreateAssignmentRequest.
func (r *CreateAssignmentRequest) Validate() error {
	if strings.TrimSpace(r.TrainingID) == "" {
		return errors.New("training_id is required and cannot be empty")
	}
	if strings.TrimSpace(r.GroupID) == "" {
		return errors.New("group_id is required and cannot be empty")
	}
	return nil
}
