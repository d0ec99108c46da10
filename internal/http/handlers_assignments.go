package httpx

import (
	"errors"
	"net/http"

	"github.com/coachbase/traindeck/internal/data"
	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/service"
)

const maxAssignmentListLimit = 200

// AssignmentHandlers provides HTTP handlers for assignment operations.
type AssignmentHandlers struct {
	Svc *service.AssignmentService
}

// Create handles POST /api/assignments.
func (h *AssignmentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAssignmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	assignment, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAssignmentExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "assignment_exists", Err: err})
		case errors.Is(err, data.ErrTrainingNotFound), errors.Is(err, data.ErrGroupNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "reference_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, assignment)
}

// List handles GET /api/assignments with pagination and optional filters.
func (h *AssignmentHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAssignmentListLimit)
	opts := model.AssignmentsListOptions{Limit: limit, Offset: offset}
	if trainingID := r.URL.Query().Get("training_id"); trainingID != "" {
		opts.TrainingID = &trainingID
	}
	if groupID := r.URL.Query().Get("group_id"); groupID != "" {
		opts.GroupID = &groupID
	}

	assignments, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"assignments": assignments,
		"limit":       limit,
		"offset":      offset,
	})
}

// GetByID handles GET /api/assignments/{id}.
func (h *AssignmentHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("assignment id is required")})
		return
	}

	assignment, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrAssignmentNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "assignment_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, assignment)
}

// Delete handles DELETE /api/assignments/{id}, revoking the group's
// visibility of the training. Progress rows are kept.
func (h *AssignmentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("assignment id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "assignment_not_found", Err: errors.New("assignment not found")})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
