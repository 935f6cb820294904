package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/account"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/infrastructure/http/middleware"
)

// UsersHandler handles /api/users/*. Requires JWT auth.
type UsersHandler struct {
	current  *account.GetCurrentUser
	list     *account.ListUsers
	remove   *account.DeleteAccount
	audit    auditor
	log      zerolog.Logger
}

// NewUsersHandler creates a handler for user resource endpoints.
func NewUsersHandler(current *account.GetCurrentUser, list *account.ListUsers, remove *account.DeleteAccount, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{current: current, list: list, remove: remove, audit: auditor{log: log, enqueuer: enqueuer}, log: log}
}

// Me returns the caller's account. A client calls it to learn whether its token is still good.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := h.current.Execute(r.Context(), id.UserID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// List returns users with optional limit/offset, for picking an assignee.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if middleware.AuthFromContext(r.Context()) == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	users, err := h.list.Execute(r.Context(), limit, offset)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, items)
}

// DeleteMe removes the caller's account along with their projects and tasks.
func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	id := middleware.AuthFromContext(r.Context())
	if id == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := h.remove.Execute(r.Context(), id.UserID); err != nil {
		h.audit.record(r, EventDelete, id.UserID.String(), err)
		writeDomainErr(w, h.log, err)
		return
	}
	h.audit.record(r, EventDelete, id.UserID.String(), nil)
	w.WriteHeader(http.StatusNoContent)
}
