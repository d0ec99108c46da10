package httpx

import (
	"errors"
	"net/http"

	"github.com/coachbase/traindeck/internal/data"
	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/service"
)

const maxUserListLimit = 100

// UserHandlers provides HTTP handlers for user profile operations. All of
// these are admin-gated; regular users interact with their own profile only
// through the auth flow.
type UserHandlers struct {
	Svc *service.UserService
}

// Create handles POST /api/users.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserEmailExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// List handles GET /api/users with pagination and optional filters.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxUserListLimit)
	opts := model.UsersListOptions{Limit: limit, Offset: offset}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		role := domainauth.Role(roleStr)
		if !role.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_role",
				Err:     errors.New("role must be one of: admin, manager, collaborator"),
			})
			return
		}
		opts.Role = &role
	}
	if groupID := r.URL.Query().Get("group_id"); groupID != "" {
		opts.GroupID = &groupID
	}

	users, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles GET /api/users/{id}.
func (h *UserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("user id is required")})
		return
	}

	user, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/users/{id}. Role and group membership changes
// flow through here, which is why the route is admin-gated.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("user id is required")})
		return
	}

	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
		case errors.Is(err, data.ErrUserEmailExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("user id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: errors.New("user not found")})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
