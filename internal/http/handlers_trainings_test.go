package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/mocks/auth"
	"github.com/coachbase/traindeck/internal/service"
)

func newTrainingHandlers(repo *memTrainingRepo, store *auth.MemoryVideoStore) *TrainingHandlers {
	return &TrainingHandlers{
		Svc:      service.NewTrainingService(service.TrainingServiceOptions{TrainingRepo: repo}),
		VideoSvc: service.NewVideoURLService(service.VideoURLServiceOptions{Store: store}),
	}
}

func TestTrainingHandlers_Create(t *testing.T) {
	h := newTrainingHandlers(newMemTrainingRepo(), nil)

	body, err := json.Marshal(model.CreateTrainingRequest{
		Title:           "Security Basics",
		VideoKey:        "videos/security.mp4",
		DurationSeconds: 600,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/trainings", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	h.Create(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Training
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Security Basics", created.Title)
	assert.NotEmpty(t, created.ID)
}

func TestTrainingHandlers_CreateValidationFailure(t *testing.T) {
	h := newTrainingHandlers(newMemTrainingRepo(), nil)

	body := []byte(`{"title":"","video_key":"videos/x.mp4","duration_seconds":600}`)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/trainings", bytes.NewReader(body))

	h.Create(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp["error"])
}

func TestTrainingHandlers_CreateRejectsUnknownFields(t *testing.T) {
	h := newTrainingHandlers(newMemTrainingRepo(), nil)

	body := []byte(`{"title":"x","video_key":"k","duration_seconds":60,"bogus":true}`)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/trainings", bytes.NewReader(body))

	h.Create(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_json", resp["error"])
}

func TestTrainingHandlers_GetByIDNotFound(t *testing.T) {
	h := newTrainingHandlers(newMemTrainingRepo(), nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/trainings/missing", nil)
	r.SetPathValue("id", "missing")

	h.GetByID(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrainingHandlers_VideoURL(t *testing.T) {
	repo := newMemTrainingRepo()
	created, err := repo.Create(context.Background(), &model.CreateTrainingRequest{
		Title:           "Security Basics",
		VideoKey:        "videos/security.mp4",
		DurationSeconds: 600,
	})
	require.NoError(t, err)

	store := &auth.MemoryVideoStore{URLs: map[string]string{
		"videos/security.mp4": "https://cdn.example.com/signed/security",
	}}
	h := newTrainingHandlers(repo, store)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/trainings/"+created.ID+"/video-url", nil)
	r.SetPathValue("id", created.ID)

	h.VideoURL(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.example.com/signed/security", resp["url"])
}

func TestTrainingHandlers_VideoURLFallback(t *testing.T) {
	repo := newMemTrainingRepo()
	fallback := "https://videos.example.com/security.mp4"
	created, err := repo.Create(context.Background(), &model.CreateTrainingRequest{
		Title:            "Security Basics",
		VideoKey:         "videos/security.mp4",
		VideoFallbackURL: &fallback,
		DurationSeconds:  600,
	})
	require.NoError(t, err)

	// Empty store: every key resolution fails.
	h := newTrainingHandlers(repo, &auth.MemoryVideoStore{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/trainings/"+created.ID+"/video-url", nil)
	r.SetPathValue("id", created.ID)

	h.VideoURL(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fallback, resp["url"])
}

func TestTrainingHandlers_VideoURLUnavailable(t *testing.T) {
	repo := newMemTrainingRepo()
	created, err := repo.Create(context.Background(), &model.CreateTrainingRequest{
		Title:           "Security Basics",
		VideoKey:        "videos/security.mp4",
		DurationSeconds: 600,
	})
	require.NoError(t, err)

	h := newTrainingHandlers(repo, &auth.MemoryVideoStore{})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/trainings/"+created.ID+"/video-url", nil)
	r.SetPathValue("id", created.ID)

	h.VideoURL(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "video_unavailable", resp["error"])
}

func TestTrainingHandlers_Delete(t *testing.T) {
	repo := newMemTrainingRepo()
	created, err := repo.Create(context.Background(), &model.CreateTrainingRequest{
		Title:           "Security Basics",
		VideoKey:        "videos/security.mp4",
		DurationSeconds: 600,
	})
	require.NoError(t, err)

	h := newTrainingHandlers(repo, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/trainings/"+created.ID, nil)
	r.SetPathValue("id", created.ID)

	h.Delete(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second delete reports not found.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodDelete, "/api/trainings/"+created.ID, nil)
	r.SetPathValue("id", created.ID)

	h.Delete(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
