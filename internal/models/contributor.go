package models

import "github.com/google/uuid"

type Contributor struct {
	Base

	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_user"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_user"`
	Permission string    `gorm:"not null"` // "AUTHOR", "ASSIGNED"
	Role       string    `gorm:"not null"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
