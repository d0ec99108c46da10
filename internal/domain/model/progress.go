package model

import (
	"errors"
	"strings"
	"time"
)

// CompletionThresholdPercent is the watched percentage at which a training
// counts as completed. Players rarely report the exact final second, so full
// completion is declared slightly early.
const CompletionThresholdPercent = 95.0

// Progress records how far a user has watched a training's video.
// WatchedSeconds is monotonic: updates never move it backwards.
type Progress struct {
	UserID         string     `json:"user_id"                db:"user_id"`
	TrainingID     string     `json:"training_id"            db:"training_id"`
	WatchedSeconds int        `json:"watched_seconds"        db:"watched_seconds"`
	Percent        float64    `json:"percent"                db:"percent"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt      time.Time  `json:"updated_at"             db:"updated_at"`
}

// Completed reports whether the training has been finished.
func (p Progress) Completed() bool { return p.CompletedAt != nil }

// UpdateProgressRequest represents a player-reported progress sample.
type UpdateProgressRequest struct {
	TrainingID     string `json:"training_id"`
	WatchedSeconds int    `json:"watched_seconds"`
}

// ProgressListOptions controls paging and filtering for listing progress rows.
type ProgressListOptions struct {
	Limit      int
	Offset     int
	UserID     *string // exact match
	TrainingID *string // exact match
	Completed  *bool   // filter on completed_at presence
}

// Validate validates UpdateProgressRequest.
func (r *UpdateProgressRequest) Validate() error {
	if strings.TrimSpace(r.TrainingID) == "" {
		return errors.New("training_id is required and cannot be empty")
	}
	if r.WatchedSeconds < 0 {
		return errors.New("watched_seconds must be non-negative")
	}
	return nil
}

// ComputePercent derives the watched percentage for a duration, clamped to
// [0,100]. A non-positive duration yields 0 rather than dividing by zero.
func ComputePercent(watchedSeconds, durationSeconds int) float64 {
	if durationSeconds <= 0 || watchedSeconds <= 0 {
		return 0
	}
	pct := float64(watchedSeconds) / float64(durationSeconds) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
