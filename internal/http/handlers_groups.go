package httpx

import (
	"errors"
	"net/http"

	"github.com/coachbase/traindeck/internal/data"
	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/service"
)

const maxGroupListLimit = 100

// GroupHandlers provides HTTP handlers for group operations.
type GroupHandlers struct {
	Svc *service.GroupService
}

// Create handles POST /api/groups.
func (h *GroupHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateGroupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	group, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrGroupNameExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "name_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, group)
}

// List handles GET /api/groups with pagination.
func (h *GroupHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxGroupListLimit)
	opts := model.GroupsListOptions{Limit: limit, Offset: offset}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}

	groups, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"groups": groups,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles GET /api/groups/{id}.
func (h *GroupHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("group id is required")})
		return
	}

	group, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrGroupNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "group_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, group)
}

// Update handles PUT /api/groups/{id}.
func (h *GroupHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("group id is required")})
		return
	}

	var req model.UpdateGroupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	group, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrGroupNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "group_not_found", Err: err})
		case errors.Is(err, data.ErrGroupNameExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "name_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, group)
}

// Delete handles DELETE /api/groups/{id}. Member users keep their profiles;
// assignments to the group cascade in the store.
func (h *GroupHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("group id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "group_not_found", Err: errors.New("group not found")})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
