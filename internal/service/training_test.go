package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachbase/traindeck/internal/domain/model"
)

func TestTrainingService_CreateValidates(t *testing.T) {
	svc := NewTrainingService(TrainingServiceOptions{TrainingRepo: &fakeTrainingRepo{}})

	// Repo must not be reached on invalid input; the fake would panic.
	_, err := svc.Create(context.Background(), &model.CreateTrainingRequest{
		Title: "", VideoKey: "videos/x.mp4", DurationSeconds: 60,
	})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), &model.CreateTrainingRequest{
		Title: "Onboarding", VideoKey: "videos/x.mp4", DurationSeconds: 0,
	})
	require.Error(t, err)
}

func TestTrainingService_CreatePassesThrough(t *testing.T) {
	var got *model.CreateTrainingRequest
	repo := &fakeTrainingRepo{
		CreateFunc: func(_ context.Context, req *model.CreateTrainingRequest) (*model.Training, error) {
			got = req
			return trainingFixture("t-1", req.DurationSeconds), nil
		},
	}
	svc := NewTrainingService(TrainingServiceOptions{TrainingRepo: repo})

	training, err := svc.Create(context.Background(), &model.CreateTrainingRequest{
		Title: "Onboarding", VideoKey: "videos/onboarding.mp4", DurationSeconds: 600,
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", training.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Onboarding", got.Title)
}

func TestTrainingService_ListNormalizesOptions(t *testing.T) {
	var got model.TrainingsListOptions
	repo := &fakeTrainingRepo{
		ListFunc: func(_ context.Context, opts model.TrainingsListOptions) ([]*model.Training, error) {
			got = opts
			return nil, nil
		},
	}
	svc := NewTrainingService(TrainingServiceOptions{TrainingRepo: repo})

	_, err := svc.List(context.Background(), model.TrainingsListOptions{Limit: 0, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, defaultListLimit, got.Limit)
	assert.Equal(t, 0, got.Offset)
}

func TestTrainingService_ListVisibleToNormalizes(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &fakeTrainingRepo{
		ListVisibleToUserFunc: func(_ context.Context, userID string, limit, offset int) ([]*model.Training, error) {
			gotLimit, gotOffset = limit, offset
			return []*model.Training{trainingFixture("t-1", 600)}, nil
		},
	}
	svc := NewTrainingService(TrainingServiceOptions{TrainingRepo: repo})

	rows, err := svc.ListVisibleTo(context.Background(), "user-1", -1, -1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, defaultListLimit, gotLimit)
	assert.Equal(t, 0, gotOffset)
}

func TestTrainingService_UpdateRequiresChanges(t *testing.T) {
	svc := NewTrainingService(TrainingServiceOptions{TrainingRepo: &fakeTrainingRepo{}})

	_, err := svc.Update(context.Background(), "t-1", model.UpdateTrainingRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one field")
}
