package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/ports"
)

// ErrVideoUnavailable is returned when neither the storage URL nor the
// fallback URL can serve the training's video.
var ErrVideoUnavailable = errors.New("video unavailable")

// VideoURLServiceOptions groups dependencies for VideoURLService.
type VideoURLServiceOptions struct {
	Store  ports.VideoStore // optional; nil means fallback URLs only
	Logger *slog.Logger
}

// VideoURLService resolves a training's video to a playable URL.
// The primary path asks the video store for a signed URL; when that fails
// or no store is configured, the training's stored fallback URL is served
// so playback degrades instead of breaking.
type VideoURLService struct {
	store  ports.VideoStore
	logger *slog.Logger
}

// NewVideoURLService constructs a new VideoURLService.
func NewVideoURLService(opts VideoURLServiceOptions) *VideoURLService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoURLService{store: opts.Store, logger: logger}
}

// Resolve returns a playable URL for the training's video.
func (s *VideoURLService) Resolve(ctx context.Context, training *model.Training) (string, error) {
	if training == nil {
		return "", errors.New("training is required")
	}

	if s.store != nil && training.VideoKey != "" {
		url, err := s.store.ResolveURL(ctx, training.VideoKey)
		if err == nil && url != "" {
			return url, nil
		}
		s.logger.WarnContext(ctx, "video store resolution failed, trying fallback URL",
			"training_id", training.ID, "video_key", training.VideoKey, "error", err)
	}

	if training.VideoFallbackURL != nil && *training.VideoFallbackURL != "" {
		return *training.VideoFallbackURL, nil
	}

	return "", ErrVideoUnavailable
}
