package service

// Hand-written repository fakes with overridable function fields. Kept in
// one place so each service test only wires the calls it cares about.

import (
	"context"
	"time"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/data"
	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/domain/model"
)

type fakeUserRepo struct {
	CreateFunc     func(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	GetRoleFunc    func(ctx context.Context, id string) (domainauth.Role, error)
	ListFunc       func(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	UpdateFunc     func(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	DeleteFunc     func(ctx context.Context, id string) (bool, error)
	UpsertFunc     func(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
}

var _ core.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	return f.CreateFunc(ctx, req)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.GetByEmailFunc(ctx, email)
}

func (f *fakeUserRepo) GetRole(ctx context.Context, id string) (domainauth.Role, error) {
	return f.GetRoleFunc(ctx, id)
}

func (f *fakeUserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	return f.ListFunc(ctx, opts)
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	return f.UpdateFunc(ctx, id, req)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.DeleteFunc(ctx, id)
}

func (f *fakeUserRepo) Upsert(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	return f.UpsertFunc(ctx, req)
}

type fakeTrainingRepo struct {
	CreateFunc            func(ctx context.Context, req *model.CreateTrainingRequest) (*model.Training, error)
	GetByIDFunc           func(ctx context.Context, id string) (*model.Training, error)
	ListFunc              func(ctx context.Context, opts model.TrainingsListOptions) ([]*model.Training, error)
	ListVisibleToUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*model.Training, error)
	UpdateFunc            func(ctx context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error)
	DeleteFunc            func(ctx context.Context, id string) (bool, error)
}

var _ core.TrainingRepository = (*fakeTrainingRepo)(nil)

func (f *fakeTrainingRepo) Create(ctx context.Context, req *model.CreateTrainingRequest) (*model.Training, error) {
	return f.CreateFunc(ctx, req)
}

func (f *fakeTrainingRepo) GetByID(ctx context.Context, id string) (*model.Training, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeTrainingRepo) List(ctx context.Context, opts model.TrainingsListOptions) ([]*model.Training, error) {
	return f.ListFunc(ctx, opts)
}

func (f *fakeTrainingRepo) ListVisibleToUser(ctx context.Context, userID string, limit, offset int) ([]*model.Training, error) {
	return f.ListVisibleToUserFunc(ctx, userID, limit, offset)
}

func (f *fakeTrainingRepo) Update(ctx context.Context, id string, req model.UpdateTrainingRequest) (*model.Training, error) {
	return f.UpdateFunc(ctx, id, req)
}

func (f *fakeTrainingRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.DeleteFunc(ctx, id)
}

type fakeProgressRepo struct {
	UpsertFunc func(ctx context.Context, params core.UpsertProgressParams) (*model.Progress, error)
	GetFunc    func(ctx context.Context, userID, trainingID string) (*model.Progress, error)
	ListFunc   func(ctx context.Context, opts model.ProgressListOptions) ([]*model.Progress, error)
}

var _ core.ProgressRepository = (*fakeProgressRepo)(nil)

func (f *fakeProgressRepo) Upsert(ctx context.Context, params core.UpsertProgressParams) (*model.Progress, error) {
	return f.UpsertFunc(ctx, params)
}

func (f *fakeProgressRepo) Get(ctx context.Context, userID, trainingID string) (*model.Progress, error) {
	return f.GetFunc(ctx, userID, trainingID)
}

func (f *fakeProgressRepo) List(ctx context.Context, opts model.ProgressListOptions) ([]*model.Progress, error) {
	return f.ListFunc(ctx, opts)
}

type fakeReportRepo struct {
	TrainingCompletionFunc func(ctx context.Context) ([]model.TrainingReportRow, error)
	GroupCompletionFunc    func(ctx context.Context) ([]model.GroupReportRow, error)
}

var _ core.ReportRepository = (*fakeReportRepo)(nil)

func (f *fakeReportRepo) TrainingCompletion(ctx context.Context) ([]model.TrainingReportRow, error) {
	return f.TrainingCompletionFunc(ctx)
}

func (f *fakeReportRepo) GroupCompletion(ctx context.Context) ([]model.GroupReportRow, error) {
	return f.GroupCompletionFunc(ctx)
}

func trainingFixture(id string, duration int) *model.Training {
	return &model.Training{
		ID:              id,
		Title:           "Training " + id,
		VideoKey:        "videos/" + id + ".mp4",
		DurationSeconds: duration,
		Published:       true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func fixedClock(t time.Time) *data.FixedTimeProvider {
	return data.NewFixedTimeProvider(t)
}
