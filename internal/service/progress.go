package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/data"
	"github.com/coachbase/traindeck/internal/domain/model"
)

// defaultProgressInterval is the minimum spacing between persisted samples
// for one user and training. Completion samples bypass the throttle.
const defaultProgressInterval = 15 * time.Second

// ProgressServiceOptions groups dependencies for ProgressService.
type ProgressServiceOptions struct {
	ProgressRepo core.ProgressRepository
	TrainingRepo core.TrainingRepository
	Time         data.TimeProvider // optional, defaults to real time
	// ThrottleInterval overrides the persistence interval; zero keeps the default.
	ThrottleInterval time.Duration
}

// ProgressService records player-reported watch progress. Percent is
// computed from watched seconds against the training duration; a sample at
// or above the completion threshold marks the training completed. Writes
// are throttled per user and training so a ticking player does not hammer
// the store.
type ProgressService struct {
	progress  core.ProgressRepository
	trainings core.TrainingRepository
	time      data.TimeProvider
	interval  time.Duration

	mu        sync.Mutex
	lastWrite map[string]time.Time
}

// NewProgressService constructs a new ProgressService.
func NewProgressService(opts ProgressServiceOptions) *ProgressService {
	tp := opts.Time
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	interval := opts.ThrottleInterval
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	return &ProgressService{
		progress:  opts.ProgressRepo,
		trainings: opts.TrainingRepo,
		time:      tp,
		interval:  interval,
		lastWrite: make(map[string]time.Time),
	}
}

// Record handles one progress sample. Throttled samples are not persisted;
// the latest stored row is returned instead so the caller still sees
// consistent state. The store keeps watched_seconds monotonic and never
// clears completed_at, so out-of-order samples cannot move progress backwards.
func (s *ProgressService) Record(ctx context.Context, userID string, req model.UpdateProgressRequest) (*model.Progress, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate progress: %w", err)
	}

	training, err := s.trainings.GetByID(ctx, req.TrainingID)
	if err != nil {
		return nil, fmt.Errorf("load training: %w", err)
	}

	watched := req.WatchedSeconds
	if watched > training.DurationSeconds {
		watched = training.DurationSeconds
	}
	percent := model.ComputePercent(watched, training.DurationSeconds)
	completing := percent >= model.CompletionThresholdPercent

	now := s.time.Now()
	if !completing && s.throttled(userID, req.TrainingID, now) {
		stored, getErr := s.progress.Get(ctx, userID, req.TrainingID)
		if getErr == nil {
			return stored, nil
		}
		if !errors.Is(getErr, data.ErrProgressNotFound) {
			return nil, fmt.Errorf("get progress: %w", getErr)
		}
		// No stored row yet; fall through and persist after all.
	}

	params := core.UpsertProgressParams{
		UserID:         userID,
		TrainingID:     req.TrainingID,
		WatchedSeconds: watched,
		Percent:        percent,
		UpdatedAt:      now,
	}
	if completing {
		params.CompletedAt = &now
	}

	row, err := s.progress.Upsert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}
	s.markWritten(userID, req.TrainingID, now)
	return row, nil
}

// Get retrieves one user's progress on one training.
func (s *ProgressService) Get(ctx context.Context, userID, trainingID string) (*model.Progress, error) {
	return s.progress.Get(ctx, userID, trainingID)
}

// List returns progress rows matching the options.
func (s *ProgressService) List(ctx context.Context, opts model.ProgressListOptions) ([]*model.Progress, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.progress.List(ctx, opts)
}

func throttleKey(userID, trainingID string) string {
	return userID + "\x00" + trainingID
}

func (s *ProgressService) throttled(userID, trainingID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastWrite[throttleKey(userID, trainingID)]
	return ok && now.Sub(last) < s.interval
}

func (s *ProgressService) markWritten(userID, trainingID string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastWrite[throttleKey(userID, trainingID)] = now
}
