package handlers

import (
	"net/http"

	"github.com/mohamim360/kanban-api/internal/api/dto"
	"github.com/mohamim360/kanban-api/internal/directory"
)

type UserHandler struct {
	directory *directory.Service
}

func NewUserHandler(dir *directory.Service) *UserHandler {
	return &UserHandler{directory: dir}
}

// List handles GET /api/v1/users
//
// Reconciles against the identity provider's directory when reachable;
// otherwise serves locally stored users. Either way the caller gets a
// provider-keyed listing, never an upstream error.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := resolveUser(w, r, h.directory); !ok {
		return
	}

	users, err := h.directory.ListAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list users"})
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// Me handles GET /api/v1/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, user)
}
