package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coachbase/traindeck/internal/core"
)

// FunctionHandlers serves the privileged server functions. IsAdmin runs an
// unrestricted role read for callers whose own role row may not be visible
// under the store's row-level policy.
type FunctionHandlers struct {
	Auth   AuthServiceInterface
	Users  core.UserRepository
	Logger *slog.Logger
}

func (h *FunctionHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type isAdminRequest struct {
	UserID string `json:"user_id"`
}

type isAdminResponse struct {
	IsAdmin bool `json:"is_admin"`
}

// IsAdmin handles POST /api/functions/is-admin. The bearer token must be a
// live session, and a caller may only ask about itself; the privilege here
// is the unrestricted role read, not arbitrary lookups.
func (h *FunctionHandlers) IsAdmin(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "missing_token",
			Err:     errors.New("bearer token is required"),
		})
		return
	}

	session, err := h.Auth.GetSession(r.Context(), token)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "invalid_token",
			Err:     errors.New("invalid or expired token"),
		})
		return
	}

	var req isAdminRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_user_id",
			Err:     errors.New("user_id is required"),
		})
		return
	}
	if req.UserID != session.UserID {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "user_mismatch",
			Err:     errors.New("token does not belong to the requested user"),
		})
		return
	}

	role, err := h.Users.GetRole(r.Context(), req.UserID)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "privileged role read failed",
			"user_id", req.UserID, "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "role_read_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, isAdminResponse{IsAdmin: role.IsAdmin()})
}
