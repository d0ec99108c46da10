package httpx

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/data"
	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/service"
)

// stubAuthService is a test double for AuthServiceInterface.
type stubAuthService struct {
	getSessionFunc    func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	beginLoginFunc    func(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	completeLoginFunc func(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	logoutFunc        func(ctx context.Context, sessionID string) error
}

func (s *stubAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if s.getSessionFunc != nil {
		return s.getSessionFunc(ctx, sessionID)
	}
	return &domainauth.Session{
		ID:        sessionID,
		Token:     sessionID,
		UserID:    "user-1",
		Email:     "user@example.com",
		Role:      domainauth.RoleCollaborator,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (s *stubAuthService) BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error) {
	if s.beginLoginFunc != nil {
		return s.beginLoginFunc(ctx, redirectURL)
	}
	return &service.BeginLoginResult{
		AuthURL: "https://idp.example.com/authorize?state=state-1",
		State:   "state-1",
		Nonce:   "nonce-1",
	}, nil
}

func (s *stubAuthService) CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
	if s.completeLoginFunc != nil {
		return s.completeLoginFunc(ctx, input)
	}
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	if s.logoutFunc != nil {
		return s.logoutFunc(ctx, sessionID)
	}
	return nil
}

// memTrainingRepo is an in-memory core.TrainingRepository for handler tests.
type memTrainingRepo struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*model.Training
}

var _ core.TrainingRepository = (*memTrainingRepo)(nil)

func newMemTrainingRepo() *memTrainingRepo {
	return &memTrainingRepo{rows: map[string]*model.Training{}}
}

func (m *memTrainingRepo) Create(_ context.Context, req *model.CreateTrainingRequest) (*model.Training, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	now := time.Now()
	published := false
	if req.Published != nil {
		published = *req.Published
	}
	row := &model.Training{
		ID:               "t-" + strconv.Itoa(m.seq),
		Title:            req.Title,
		Description:      req.Description,
		VideoKey:         req.VideoKey,
		VideoFallbackURL: req.VideoFallbackURL,
		DurationSeconds:  req.DurationSeconds,
		Published:        published,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.rows[row.ID] = row
	out := *row
	return &out, nil
}

func (m *memTrainingRepo) GetByID(_ context.Context, id string) (*model.Training, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, data.ErrTrainingNotFound
	}
	out := *row
	return &out, nil
}

func (m *memTrainingRepo) List(_ context.Context, opts model.TrainingsListOptions) ([]*model.Training, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Training, 0, len(m.rows))
	for _, row := range m.rows {
		if opts.Published != nil && row.Published != *opts.Published {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memTrainingRepo) ListVisibleToUser(_ context.Context, _ string, _, _ int) ([]*model.Training, error) {
	published := true
	return m.List(context.Background(), model.TrainingsListOptions{Published: &published})
}

func (m *memTrainingRepo) Update(_ context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, data.ErrTrainingNotFound
	}
	if req.Title != nil {
		row.Title = *req.Title
	}
	if req.Published != nil {
		row.Published = *req.Published
	}
	if req.DurationSeconds != nil {
		row.DurationSeconds = *req.DurationSeconds
	}
	row.UpdatedAt = time.Now()
	out := *row
	return &out, nil
}

func (m *memTrainingRepo) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

// memProgressRepo is an in-memory core.ProgressRepository for handler tests.
type memProgressRepo struct {
	mu   sync.Mutex
	rows map[string]*model.Progress
}

var _ core.ProgressRepository = (*memProgressRepo)(nil)

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{rows: map[string]*model.Progress{}}
}

func (m *memProgressRepo) Upsert(_ context.Context, params core.UpsertProgressParams) (*model.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := params.UserID + "/" + params.TrainingID
	row, ok := m.rows[k]
	if !ok {
		row = &model.Progress{UserID: params.UserID, TrainingID: params.TrainingID}
		m.rows[k] = row
	}
	if params.WatchedSeconds > row.WatchedSeconds {
		row.WatchedSeconds = params.WatchedSeconds
	}
	if params.Percent > row.Percent {
		row.Percent = params.Percent
	}
	if row.CompletedAt == nil && params.CompletedAt != nil {
		row.CompletedAt = params.CompletedAt
	}
	row.UpdatedAt = params.UpdatedAt
	out := *row
	return &out, nil
}

func (m *memProgressRepo) Get(_ context.Context, userID, trainingID string) (*model.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[userID+"/"+trainingID]
	if !ok {
		return nil, data.ErrProgressNotFound
	}
	out := *row
	return &out, nil
}

func (m *memProgressRepo) List(_ context.Context, _ model.ProgressListOptions) ([]*model.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Progress, 0, len(m.rows))
	for _, row := range m.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}
