package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/immacora/softdesk/db"
	"github.com/immacora/softdesk/internal/models"
	"github.com/immacora/softdesk/internal/types"
)

// CreateProjectWithAuthor inserts the project and its AUTHOR contributor
// in one transaction: a project is never observable without its author row.
func CreateProjectWithAuthor(project *models.Project, authorID uuid.UUID) (models.Contributor, error) {
	contributor := models.Contributor{
		UserID:     authorID,
		Permission: types.PermissionAuthor,
		Role:       types.AuthorRole,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		contributor.ProjectID = project.ID

		return tx.Create(&contributor).Error
	})

	return contributor, err
}

// ListProjectsFor returns every project the user holds a contributor row on.
func ListProjectsFor(userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project

	err := db.DB.
		Joins("JOIN contributors ON contributors.project_id = projects.id").
		Where("contributors.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error

	return projects, err
}

func GetProject(id uuid.UUID) (models.Project, error) {
	var project models.Project

	err := db.DB.Where("id = ?", id).First(&project).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return project, ErrNotFound
	}

	return project, err
}

func SaveProject(project *models.Project) error {
	return db.DB.Save(project).Error
}

// DeleteProjectCascade removes the project and everything it owns:
// comments under its issues, the issues, the contributor rows (the AUTHOR
// row included, this is the only path that may delete it) and the
// activity feed.
func DeleteProjectCascade(id uuid.UUID) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		issueIDs := tx.Model(&models.Issue{}).Select("id").Where("project_id = ?", id)

		if err := tx.Where("issue_id IN (?)", issueIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Issue{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Contributor{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ActivityEvent{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}
