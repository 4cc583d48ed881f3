package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mohamim360/kanban-api/internal/database/models"
	"gorm.io/gorm"
)

// ErrNotFound covers both a missing project and a project owned by a
// different user. The two cases are deliberately indistinguishable so
// callers can never probe for the existence of other users' projects.
var ErrNotFound = errors.New("project not found")

// Service implements CRUD over projects scoped to an owning user.
// Every query carries the owner id; no operation trusts a client-supplied
// owner claim.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Name        string
	Description string
}

// UpdatePatch carries the patchable project fields. Nil means unchanged.
type UpdatePatch struct {
	Name        *string
	Description *string
}

// ProjectWithCount annotates a project with its derived task count.
type ProjectWithCount struct {
	models.Project
	TaskCount int64 `json:"task_count"`
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*models.Project, error) {
	project := models.Project{
		OwnerUserID: ownerID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}

	project.Tasks = []models.Task{}
	return &project, nil
}

// ListForOwner returns the owner's projects newest-first, each annotated
// with its task count.
func (s *Service) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]ProjectWithCount, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	counts, err := s.taskCounts(ctx, projects)
	if err != nil {
		return nil, err
	}

	result := make([]ProjectWithCount, len(projects))
	for i, p := range projects {
		result[i] = ProjectWithCount{Project: p, TaskCount: counts[p.ID]}
	}

	return result, nil
}

func (s *Service) taskCounts(ctx context.Context, projects []models.Project) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(projects))
	if len(projects) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	var rows []struct {
		ProjectID uuid.UUID
		Count     int64
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("project_id, COUNT(*) AS count").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ProjectID] = row.Count
	}
	return counts, nil
}

// Get returns the project with its tasks, newest-first.
func (s *Service) Get(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ? AND owner_user_id = ?", projectID, ownerID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &project, nil
}

func (s *Service) Update(ctx context.Context, ownerID, projectID uuid.UUID, patch UpdatePatch) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", projectID, ownerID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &project, nil
}

// Delete removes the project and all of its tasks in one transaction,
// returning the deleted record. A task never outlives its project.
func (s *Service) Delete(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", projectID, ownerID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}
