package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachbase/traindeck/internal/mocks/auth"
)

func TestVideoURLService_ResolvesFromStore(t *testing.T) {
	training := trainingFixture("t-1", 600)
	store := &auth.MemoryVideoStore{URLs: map[string]string{
		training.VideoKey: "https://cdn.example.com/signed/t-1",
	}}
	svc := NewVideoURLService(VideoURLServiceOptions{Store: store})

	url, err := svc.Resolve(context.Background(), training)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/signed/t-1", url)
}

func TestVideoURLService_FallsBackOnStoreFailure(t *testing.T) {
	training := trainingFixture("t-1", 600)
	fallback := "https://videos.example.com/t-1.mp4"
	training.VideoFallbackURL = &fallback

	// The store has no entry for the key, so resolution fails.
	svc := NewVideoURLService(VideoURLServiceOptions{Store: &auth.MemoryVideoStore{}})

	url, err := svc.Resolve(context.Background(), training)
	require.NoError(t, err)
	assert.Equal(t, fallback, url)
}

func TestVideoURLService_FallbackWithoutStore(t *testing.T) {
	training := trainingFixture("t-1", 600)
	fallback := "https://videos.example.com/t-1.mp4"
	training.VideoFallbackURL = &fallback

	svc := NewVideoURLService(VideoURLServiceOptions{})

	url, err := svc.Resolve(context.Background(), training)
	require.NoError(t, err)
	assert.Equal(t, fallback, url)
}

func TestVideoURLService_UnavailableWhenNothingResolves(t *testing.T) {
	training := trainingFixture("t-1", 600)

	svc := NewVideoURLService(VideoURLServiceOptions{Store: &auth.MemoryVideoStore{}})

	_, err := svc.Resolve(context.Background(), training)
	assert.ErrorIs(t, err, ErrVideoUnavailable)
}

func TestVideoURLService_NilTraining(t *testing.T) {
	svc := NewVideoURLService(VideoURLServiceOptions{})

	_, err := svc.Resolve(context.Background(), nil)
	require.Error(t, err)
}
