package httpx

import (
	"errors"
	"net/http"

	"github.com/coachbase/traindeck/internal/data"
	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/service"
)

const maxProgressListLimit = 200

// ProgressHandlers provides HTTP handlers for video progress tracking.
// Record and GetOwn operate on the caller's own rows; List is the admin view.
type ProgressHandlers struct {
	Svc *service.ProgressService
}

// Record handles POST /api/progress, one player-reported sample for the
// authenticated user. The service throttles repeated samples, so a ticking
// player can post freely.
func (h *ProgressHandlers) Record(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	var req model.UpdateProgressRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	progress, err := h.Svc.Record(r.Context(), session.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrTrainingNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "training_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "record_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, progress)
}

// GetOwn handles GET /api/trainings/{id}/progress, returning the caller's
// progress on one training. No stored row yet reads as zero progress.
func (h *ProgressHandlers) GetOwn(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	trainingID := r.PathValue("id")
	if trainingID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("training id is required")})
		return
	}

	progress, err := h.Svc.Get(r.Context(), session.UserID, trainingID)
	if err != nil {
		if errors.Is(err, data.ErrProgressNotFound) {
			WriteJSON(w, http.StatusOK, model.Progress{UserID: session.UserID, TrainingID: trainingID})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, progress)
}

// List handles GET /api/progress, the admin view across users and trainings.
func (h *ProgressHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxProgressListLimit)
	opts := model.ProgressListOptions{Limit: limit, Offset: offset}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		opts.UserID = &userID
	}
	if trainingID := r.URL.Query().Get("training_id"); trainingID != "" {
		opts.TrainingID = &trainingID
	}
	if c := r.URL.Query().Get("completed"); c == "true" || c == "false" {
		completed := c == "true"
		opts.Completed = &completed
	}

	rows, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"progress": rows,
		"limit":    limit,
		"offset":   offset,
	})
}
