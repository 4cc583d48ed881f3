package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// ValidTaskStatus reports whether s is a member of the closed status enum.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// ValidTaskPriority reports whether p is a member of the closed priority enum.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task belongs to exactly one project. Its effective owner is the owner of
// that project; ownership is never stored on the task itself.
type Task struct {
	Base
	ProjectID   uuid.UUID    `gorm:"type:uuid;index;not null" json:"project_id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `gorm:"not null;default:'TODO'" json:"status"`
	Priority    TaskPriority `gorm:"not null;default:'MEDIUM'" json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Tags        StringList   `gorm:"type:text" json:"tags"`

	// Cross-user assignment is allowed: the assignee must exist in the
	// directory but need not be the project owner.
	AssignedUserID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_user_id,omitempty"`

	// Relationships
	Project      *Project `gorm:"foreignKey:ProjectID" json:"-"`
	AssignedUser *User    `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
