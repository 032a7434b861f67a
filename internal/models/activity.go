package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityEvent is one entry in a project's activity feed, written after
// every successful mutation under that project.
type ActivityEvent struct {
	Base

	ProjectID uuid.UUID      `gorm:"type:uuid;not null;index"`
	ActorID   uuid.UUID      `gorm:"type:uuid;not null"`
	Type      string         `gorm:"not null"` // e.g. "issue_created", "contributor_removed"
	Payload   datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
