package models

import "github.com/google/uuid"

type Comment struct {
	Base

	IssueID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Description  string    `gorm:"not null"`
	AuthorUserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Relationships
	Issue  Issue `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author User  `gorm:"foreignKey:AuthorUserID"`
}
