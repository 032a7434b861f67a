package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/immacora/softdesk/db"
	"github.com/immacora/softdesk/internal/models"
)

// CreateIssue validates that the assignee is a current contributor of
// the issue's project before inserting. Nothing persists on failure.
func CreateIssue(issue *models.Issue) error {
	membership, err := GetMembership(issue.ProjectID, issue.AssignedUserID)

	if err != nil {
		return err
	}

	if membership == nil {
		return ErrNotContributor
	}

	return db.DB.Create(issue).Error
}

func GetIssue(projectID, issueID uuid.UUID) (models.Issue, error) {
	var issue models.Issue

	err := db.DB.Where("id = ? AND project_id = ?", issueID, projectID).First(&issue).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return issue, ErrNotFound
	}

	return issue, err
}

// GetIssueByID looks an issue up without project scoping; used to
// resolve the enclosing project of a flat comment route.
func GetIssueByID(id uuid.UUID) (models.Issue, error) {
	var issue models.Issue

	err := db.DB.Where("id = ?", id).First(&issue).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return issue, ErrNotFound
	}

	return issue, err
}

func ListIssues(projectID uuid.UUID) ([]models.Issue, error) {
	var issues []models.Issue

	err := db.DB.Where("project_id = ?", projectID).Order("created_at DESC").Find(&issues).Error

	return issues, err
}

// SaveIssue re-validates the assignee; reassignment follows the same
// contributor rule as creation.
func SaveIssue(issue *models.Issue) error {
	membership, err := GetMembership(issue.ProjectID, issue.AssignedUserID)

	if err != nil {
		return err
	}

	if membership == nil {
		return ErrNotContributor
	}

	return db.DB.Save(issue).Error
}

// DeleteIssueCascade removes the issue and the comments it owns.
func DeleteIssueCascade(id uuid.UUID) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Issue{}).Error
	})
}
