package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mohamim360/kanban-api/internal/database/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both a missing task and a task whose parent
	// project belongs to another user; the cases are indistinguishable
	// on purpose.
	ErrNotFound = errors.New("task not found")

	// ErrProjectNotFound is returned when the referenced project does
	// not exist or is not owned by the acting user.
	ErrProjectNotFound = errors.New("project not found")

	ErrAssigneeNotFound = errors.New("assigned user not found")
	ErrInvalidDueDate   = errors.New("invalid due date")
)

// Service implements CRUD, search and filtering over tasks. Ownership is
// always re-derived through the parent project; the task's effective
// owner is never taken from the caller.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	ProjectID      uuid.UUID
	Title          string
	Description    string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	DueDate        string
	Tags           []string
	AssignedUserID *uuid.UUID
}

// UpdatePatch carries the patchable task fields. Nil means unchanged.
// An empty DueDate or AssignedUserID string clears the field.
type UpdatePatch struct {
	Title          *string
	Description    *string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	DueDate        *string
	Tags           *[]string
	AssignedUserID *string
}

// FilterParams is a conjunctive filter; nil fields are unconstrained.
type FilterParams struct {
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	AssignedUserID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*models.Task, error) {
	if err := s.checkProjectOwnership(ctx, ownerID, input.ProjectID); err != nil {
		return nil, err
	}

	if input.AssignedUserID != nil {
		if err := s.checkAssignee(ctx, *input.AssignedUserID); err != nil {
			return nil, err
		}
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ProjectID:      input.ProjectID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         models.TaskStatusTodo,
		Priority:       models.TaskPriorityMedium,
		DueDate:        dueDate,
		Tags:           models.StringList{},
		AssignedUserID: input.AssignedUserID,
	}
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.Tags != nil {
		task.Tags = models.StringList(input.Tags)
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListForProject returns the project's tasks newest-first.
func (s *Service) ListForProject(ctx context.Context, ownerID, projectID uuid.UUID) ([]models.Task, error) {
	if err := s.checkProjectOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.WithContext(ctx).
		Preload("AssignedUser").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *Service) Update(ctx context.Context, ownerID, taskID uuid.UUID, patch UpdatePatch) (*models.Task, error) {
	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			updates["due_date"] = nil
		} else {
			dueDate, err := parseDueDate(*patch.DueDate)
			if err != nil {
				return nil, err
			}
			updates["due_date"] = dueDate
		}
	}
	if patch.Tags != nil {
		updates["tags"] = models.StringList(*patch.Tags)
	}
	if patch.AssignedUserID != nil {
		if *patch.AssignedUserID == "" {
			updates["assigned_user_id"] = nil
		} else {
			assigneeID, err := uuid.Parse(*patch.AssignedUserID)
			if err != nil {
				return nil, ErrAssigneeNotFound
			}
			if err := s.checkAssignee(ctx, assigneeID); err != nil {
				return nil, err
			}
			updates["assigned_user_id"] = &assigneeID
		}
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return task, nil
}

// Move re-assigns the task's status. There is no transition graph; any
// status can follow any other.
func (s *Service) Move(ctx context.Context, ownerID, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(task).Update("status", status).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

// Clone duplicates the task under the same project with a fresh identity
// and timestamps, marking the copy in its title.
func (s *Service) Clone(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	clone := models.Task{
		ProjectID:      task.ProjectID,
		Title:          task.Title + " (Copy)",
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		DueDate:        task.DueDate,
		Tags:           task.Tags,
		AssignedUserID: task.AssignedUserID,
	}

	if err := s.db.WithContext(ctx).Create(&clone).Error; err != nil {
		return nil, err
	}

	return &clone, nil
}

// Search matches a case-insensitive substring of title or description,
// or an exact tag. Tags live in a JSON column, so the match runs over
// the project's tasks in memory.
func (s *Service) Search(ctx context.Context, ownerID, projectID uuid.UUID, query string) ([]models.Task, error) {
	tasks, err := s.ListForProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) ||
			task.Tags.Contains(query) {
			matched = append(matched, task)
		}
	}

	return matched, nil
}

// Filter applies the provided fields conjunctively, newest-first.
func (s *Service) Filter(ctx context.Context, ownerID, projectID uuid.UUID, params FilterParams) ([]models.Task, error) {
	if err := s.checkProjectOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Preload("AssignedUser").
		Where("project_id = ?", projectID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Priority != nil {
		query = query.Where("priority = ?", *params.Priority)
	}
	if params.AssignedUserID != nil {
		query = query.Where("assigned_user_id = ?", *params.AssignedUserID)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// ownedTask fetches a task only if its parent project belongs to ownerID.
func (s *Service) ownedTask(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.owner_user_id = ?", taskID, ownerID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *Service) checkProjectOwnership(ctx context.Context, ownerID, projectID uuid.UUID) error {
	var project models.Project
	if err := s.db.WithContext(ctx).
		Select("id").
		Where("id = ? AND owner_user_id = ?", projectID, ownerID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (s *Service) checkAssignee(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := s.db.WithContext(ctx).
		Select("id").
		First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return err
	}
	return nil
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDueDate
}
