package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/immacora/softdesk/db"
	"github.com/immacora/softdesk/internal/models"
)

func CreateComment(comment *models.Comment) error {
	return db.DB.Create(comment).Error
}

func ListComments(issueID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment

	err := db.DB.Where("issue_id = ?", issueID).Order("created_at ASC").Find(&comments).Error

	return comments, err
}

func GetComment(id uuid.UUID) (models.Comment, error) {
	var comment models.Comment

	err := db.DB.Where("id = ?", id).First(&comment).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return comment, ErrNotFound
	}

	return comment, err
}

func SaveComment(comment *models.Comment) error {
	return db.DB.Save(comment).Error
}

func DeleteComment(comment *models.Comment) error {
	return db.DB.Delete(comment).Error
}
