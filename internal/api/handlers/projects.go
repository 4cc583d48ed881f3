package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mohamim360/kanban-api/internal/api/dto"
	"github.com/mohamim360/kanban-api/internal/directory"
	"github.com/mohamim360/kanban-api/internal/projects"
)

type ProjectHandler struct {
	projects  *projects.Service
	directory *directory.Service
}

func NewProjectHandler(projectService *projects.Service, dir *directory.Service) *ProjectHandler {
	return &ProjectHandler{projects: projectService, directory: dir}
}

// Create handles POST /api/v1/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if details := dto.FieldErrors(req); details != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: details})
		return
	}

	project, err := h.projects.Create(r.Context(), user.ID, projects.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create project"})
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// List handles GET /api/v1/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	list, err := h.projects.ListForOwner(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list projects"})
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /api/v1/projects/:id
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	project, err := h.projects.Get(r.Context(), user.ID, projectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Project not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get project"})
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// Update handles PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	// Unknown keys (including id/created_at/updated_at) are rejected,
	// not silently stripped.
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req dto.UpdateProjectRequest
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if details := dto.FieldErrors(req); details != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: details})
		return
	}

	project, err := h.projects.Update(r.Context(), user.ID, projectID, projects.UpdatePatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Project not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update project"})
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	project, err := h.projects.Delete(r.Context(), user.ID, projectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Project not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete project"})
		return
	}

	writeJSON(w, http.StatusOK, project)
}
