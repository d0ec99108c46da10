package httpx

import (
	"errors"
	"net/http"

	"github.com/coachbase/traindeck/internal/data"
	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/service"
)

const maxTrainingListLimit = 100

// TrainingHandlers provides HTTP handlers for training operations.
type TrainingHandlers struct {
	Svc      *service.TrainingService
	VideoSvc *service.VideoURLService
}

// Create handles POST /api/trainings.
func (h *TrainingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTrainingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	training, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, training)
}

// List handles GET /api/trainings with pagination and optional filters.
// This is the admin view; employees list their visible trainings through
// ListVisible.
func (h *TrainingHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxTrainingListLimit)
	opts := model.TrainingsListOptions{Limit: limit, Offset: offset}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if p := r.URL.Query().Get("published"); p == "true" || p == "false" {
		published := p == "true"
		opts.Published = &published
	}

	trainings, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"trainings": trainings,
		"limit":     limit,
		"offset":    offset,
	})
}

// ListVisible handles GET /api/me/trainings, returning the published
// trainings assigned to the caller's group.
func (h *TrainingHandlers) ListVisible(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxTrainingListLimit)
	trainings, err := h.Svc.ListVisibleTo(r.Context(), session.UserID, limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"trainings": trainings,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetByID handles GET /api/trainings/{id}.
func (h *TrainingHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("training id is required")})
		return
	}

	training, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrTrainingNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "training_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, training)
}

// VideoURL handles GET /api/trainings/{id}/video-url, resolving the
// training's video to a playable URL with fallback.
func (h *TrainingHandlers) VideoURL(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("training id is required")})
		return
	}

	training, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrTrainingNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "training_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	url, err := h.VideoSvc.Resolve(r.Context(), training)
	if err != nil {
		if errors.Is(err, service.ErrVideoUnavailable) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "video_unavailable", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "resolve_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Update handles PUT /api/trainings/{id}.
func (h *TrainingHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("training id is required")})
		return
	}

	var req model.UpdateTrainingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	training, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrTrainingNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "training_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, training)
}

// Delete handles DELETE /api/trainings/{id}.
func (h *TrainingHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("training id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "training_not_found", Err: errors.New("training not found")})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
