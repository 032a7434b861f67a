package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/immacora/softdesk/db"
	"github.com/immacora/softdesk/internal/models"
	"github.com/immacora/softdesk/internal/types"
)

// GetMembership returns the contributor row for (projectID, userID), or
// nil when the user is not a contributor. Predicates in authz take the
// nil as "no membership".
func GetMembership(projectID, userID uuid.UUID) (*models.Contributor, error) {
	var contributor models.Contributor

	err := db.DB.Where("project_id = ? AND user_id = ?", projectID, userID).First(&contributor).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &contributor, nil
}

func ListContributors(projectID uuid.UUID) ([]models.Contributor, error) {
	var contributors []models.Contributor

	err := db.DB.Where("project_id = ?", projectID).Order("created_at ASC").Find(&contributors).Error

	return contributors, err
}

// AddContributor creates an ASSIGNED contributor row. The unique
// (project_id, user_id) index closes the check-then-act race: a
// concurrent duplicate insert comes back as ErrConflict, never as a
// second row.
func AddContributor(projectID, userID uuid.UUID, role string) (models.Contributor, error) {
	contributor := models.Contributor{
		ProjectID:  projectID,
		UserID:     userID,
		Permission: types.PermissionAssigned,
		Role:       role,
	}

	err := db.DB.Create(&contributor).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return contributor, ErrConflict
	}

	return contributor, err
}

// RemoveContributor deletes the row only. Issues assigned to the removed
// user keep their assigned_user_id; they are not reassigned.
func RemoveContributor(contributor *models.Contributor) error {
	return db.DB.Delete(contributor).Error
}
