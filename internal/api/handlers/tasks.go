package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mohamim360/kanban-api/internal/api/dto"
	"github.com/mohamim360/kanban-api/internal/database/models"
	"github.com/mohamim360/kanban-api/internal/directory"
	"github.com/mohamim360/kanban-api/internal/tasks"
)

type TaskHandler struct {
	tasks     *tasks.Service
	directory *directory.Service
}

func NewTaskHandler(taskService *tasks.Service, dir *directory.Service) *TaskHandler {
	return &TaskHandler{tasks: taskService, directory: dir}
}

func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Task not found"})
	case errors.Is(err, tasks.ErrProjectNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Project not found"})
	case errors.Is(err, tasks.ErrAssigneeNotFound):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Assigned user not found"})
	case errors.Is(err, tasks.ErrInvalidDueDate):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid due date"})
	default:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Task operation failed"})
	}
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if details := dto.FieldErrors(req); details != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: details})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	input := tasks.CreateInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	if req.AssignedUserID != "" {
		assigneeID, err := uuid.Parse(req.AssignedUserID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid assigned user ID"})
			return
		}
		input.AssignedUserID = &assigneeID
	}

	task, err := h.tasks.Create(r.Context(), user.ID, input)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// ListForProject handles GET /api/v1/tasks/project/:projectId
func (h *TaskHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	list, err := h.tasks.ListForProject(r.Context(), user.ID, projectID)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Update handles PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	// Unknown keys (including id/created_at/updated_at) are rejected,
	// not silently stripped.
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req dto.UpdateTaskRequest
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if details := dto.FieldErrors(req); details != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: details})
		return
	}

	patch := tasks.UpdatePatch{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		Tags:           req.Tags,
		AssignedUserID: req.AssignedUserID,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}

	task, err := h.tasks.Update(r.Context(), user.ID, taskID, patch)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Move handles PUT /api/v1/tasks/:id/move
func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	var req dto.MoveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if details := dto.FieldErrors(req); details != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: details})
		return
	}

	task, err := h.tasks.Move(r.Context(), user.ID, taskID, models.TaskStatus(req.Status))
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	task, err := h.tasks.Delete(r.Context(), user.ID, taskID)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Clone handles POST /api/v1/tasks/:id/clone
func (h *TaskHandler) Clone(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	task, err := h.tasks.Clone(r.Context(), user.ID, taskID)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// Search handles GET /api/v1/tasks/search?project_id=...&q=...
func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(r.URL.Query().Get("project_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	list, err := h.tasks.Search(r.Context(), user.ID, projectID, r.URL.Query().Get("q"))
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Filter handles GET /api/v1/tasks/filter?project_id=...&status=...&priority=...&assigned_user=...
func (h *TaskHandler) Filter(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveUser(w, r, h.directory)
	if !ok {
		return
	}

	query := r.URL.Query()

	projectID, err := uuid.Parse(query.Get("project_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	var params tasks.FilterParams
	if raw := query.Get("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !models.ValidTaskStatus(status) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid status"})
			return
		}
		params.Status = &status
	}
	if raw := query.Get("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		if !models.ValidTaskPriority(priority) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid priority"})
			return
		}
		params.Priority = &priority
	}
	if raw := query.Get("assigned_user"); raw != "" {
		assigneeID, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid assigned user ID"})
			return
		}
		params.AssignedUserID = &assigneeID
	}

	list, err := h.tasks.Filter(r.Context(), user.ID, projectID, params)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
