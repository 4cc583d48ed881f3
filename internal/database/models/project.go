package models

import "github.com/google/uuid"

// Project is owned by exactly one user. Ownership never transfers.
type Project struct {
	Base
	OwnerUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`

	// Relationships
	Owner *User  `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}
