package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/immacora/softdesk/db"
	"github.com/immacora/softdesk/internal/models"
)

func CreateUser(user *models.User) error {
	err := db.DB.Create(user).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}

	return err
}

func GetUserByEmail(email string) (models.User, error) {
	var user models.User

	err := db.DB.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrNotFound
	}

	return user, err
}

func GetUserByID(id uuid.UUID) (models.User, error) {
	var user models.User

	err := db.DB.Where("id = ?", id).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrNotFound
	}

	return user, err
}
