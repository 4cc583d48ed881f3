package models

// User is the internal record for an externally-authenticated principal.
// Created on first login for a given subject id; the profile fields are
// not re-synced after creation.
type User struct {
	Base
	ExternalSubjectID string `gorm:"uniqueIndex;not null" json:"external_subject_id"`
	Email             string `gorm:"not null" json:"email"`
	Name              string `json:"name"`

	// Relationships
	Projects []Project `gorm:"foreignKey:OwnerUserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
