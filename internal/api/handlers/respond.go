package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mohamim360/kanban-api/internal/api/dto"
	"github.com/mohamim360/kanban-api/internal/api/middleware"
	"github.com/mohamim360/kanban-api/internal/database/models"
	"github.com/mohamim360/kanban-api/internal/directory"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// resolveUser binds the request's authenticated identity to its internal
// user record, creating the record on first login. Every resource
// handler goes through this; the acting user id is never taken from the
// request body or query.
func resolveUser(w http.ResponseWriter, r *http.Request, dir *directory.Service) (*models.User, bool) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	user, err := dir.FindOrCreate(r.Context(), identity)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to resolve user"})
		return nil, false
	}

	return user, true
}
