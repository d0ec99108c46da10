package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const maxTrainingTitleLen = 255

// Training represents a training unit built around a single video.
// VideoKey identifies the object in storage; VideoFallbackURL is served when
// the storage URL cannot be resolved.
type Training struct {
	ID               string    `json:"id"                           db:"id"`
	Title            string    `json:"title"                        db:"title"`
	Description      *string   `json:"description,omitempty"        db:"description"`
	VideoKey         string    `json:"video_key"                    db:"video_key"`
	VideoFallbackURL *string   `json:"video_fallback_url,omitempty" db:"video_fallback_url"`
	DurationSeconds  int       `json:"duration_seconds"             db:"duration_seconds"`
	Published        bool      `json:"published"                    db:"published"`
	CreatedAt        time.Time `json:"created_at"                   db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"                   db:"updated_at"`
}

// CreateTrainingRequest represents parameters to create a Training.
type CreateTrainingRequest struct {
	Title            string  `json:"title"`
	Description      *string `json:"description,omitempty"`
	VideoKey         string  `json:"video_key"`
	VideoFallbackURL *string `json:"video_fallback_url,omitempty"`
	DurationSeconds  int     `json:"duration_seconds"`
	Published        *bool   `json:"published,omitempty"`
}

// UpdateTrainingRequest represents parameters to update a Training.
type UpdateTrainingRequest struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	VideoKey         *string `json:"video_key,omitempty"`
	VideoFallbackURL *string `json:"video_fallback_url,omitempty"`
	DurationSeconds  *int    `json:"duration_seconds,omitempty"`
	Published        *bool   `json:"published,omitempty"`
}

// TrainingsListOptions controls paging and filtering for listing trainings.
type TrainingsListOptions struct {
	Limit     int
	Offset    int
	Q         *string // substring match on title (ILIKE)
	Published *bool   // exact match
}

// Validate validates CreateTrainingRequest.
func (r *CreateTrainingRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTrainingTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.VideoKey) == "" {
		return errors.New("video_key is required and cannot be empty")
	}
	if r.DurationSeconds <= 0 {
		return errors.New("duration_seconds must be at least 1")
	}
	if r.VideoFallbackURL != nil {
		if err := validateHTTPURL(*r.VideoFallbackURL); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateTrainingRequest.
func (r *UpdateTrainingRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.VideoKey != nil ||
		r.VideoFallbackURL != nil || r.DurationSeconds != nil || r.Published != nil
}

// Validate validates UpdateTrainingRequest.
func (r *UpdateTrainingRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxTrainingTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
	}
	if r.VideoKey != nil && strings.TrimSpace(*r.VideoKey) == "" {
		return errors.New("video_key cannot be empty")
	}
	if r.DurationSeconds != nil && *r.DurationSeconds <= 0 {
		return errors.New("duration_seconds must be at least 1")
	}
	if r.VideoFallbackURL != nil && *r.VideoFallbackURL != "" {
		if err := validateHTTPURL(*r.VideoFallbackURL); err != nil {
			return err
		}
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return errors.New("video_fallback_url must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("video_fallback_url must use http or https scheme")
	}
	if u.Host == "" {
		return errors.New("video_fallback_url must have a valid host")
	}
	return nil
}
