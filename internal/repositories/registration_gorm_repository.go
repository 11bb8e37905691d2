package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"culvana/internal/models"
)

// GORMRegistrationRepository is a GORM implementation of RegistrationRepository.
type GORMRegistrationRepository struct {
	db *gorm.DB
}

// NewGORMRegistrationRepository creates a new instance of GORMRegistrationRepository.
func NewGORMRegistrationRepository(db *gorm.DB) *GORMRegistrationRepository {
	return &GORMRegistrationRepository{
		db: db,
	}
}

// Get retrieves the pending registration for an email.
func (r *GORMRegistrationRepository) Get(email string) (*models.PendingRegistration, error) {
	var reg models.PendingRegistration
	if err := r.db.First(&reg, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending registration for %s: %w", email, err)
	}
	return &reg, nil
}

// Upsert creates or fully overwrites the pending registration.
func (r *GORMRegistrationRepository) Upsert(reg *models.PendingRegistration) error {
	if err := r.db.Save(reg).Error; err != nil {
		return fmt.Errorf("failed to upsert pending registration for %s: %w", reg.Email, err)
	}
	return nil
}

// Delete removes the pending registration for an email.
func (r *GORMRegistrationRepository) Delete(email string) error {
	if err := r.db.Delete(&models.PendingRegistration{}, "email = ?", email).Error; err != nil {
		return fmt.Errorf("failed to delete pending registration for %s: %w", email, err)
	}
	return nil
}
