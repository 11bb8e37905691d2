package repositories

import (
	"errors"

	"culvana/internal/models"
)

// ErrNotFound is returned by all repositories when the requested record
// does not exist. Callers branch on it with errors.Is.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for verified-account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	Exists(email string) (bool, error)
	Update(user *models.User) error
}

// RegistrationRepository defines the interface for pending-registration
// data access. Upsert both creates and overwrites, matching the document
// store's upsert semantics.
type RegistrationRepository interface {
	Get(email string) (*models.PendingRegistration, error)
	Upsert(reg *models.PendingRegistration) error
	Delete(email string) error
}
