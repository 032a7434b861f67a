package models

type Project struct {
	Base

	Title       string `gorm:"not null"`
	Description string
	Type        string `gorm:"not null"` // "BACKEND", "FRONTEND", "IOS", "ANDROID"

	// Relationships
	Contributors []Contributor `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Issues       []Issue       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
