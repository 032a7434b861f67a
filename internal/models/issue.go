package models

import "github.com/google/uuid"

type Issue struct {
	Base

	ProjectID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"not null"`
	Description    string
	Tag            string    `gorm:"not null"` // "BUG", "IMPROVEMENT", "TASK"
	Priority       string    `gorm:"not null"` // "WEAK", "MEDIUM", "HIGH"
	Status         string    `gorm:"not null"` // "TODO", "ONGOING", "ENDED"
	AuthorUserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedUserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Relationships
	Project  Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author   User      `gorm:"foreignKey:AuthorUserID"`
	Assignee User      `gorm:"foreignKey:AssignedUserID"`
	Comments []Comment `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
