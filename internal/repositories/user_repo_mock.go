package repositories

import (
	"sync"

	"culvana/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user keyed by email.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Email] = *user
	return nil
}

// GetByEmail returns the user with the given email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Exists reports whether a user with the given email exists.
func (r *MockUserRepository) Exists(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[email]
	return ok, nil
}

// Update overwrites an existing user record.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Email] = *user
	return nil
}

// MockRegistrationRepository is an in-memory implementation of
// RegistrationRepository.
type MockRegistrationRepository struct {
	regs map[string]models.PendingRegistration
	mu   sync.RWMutex
}

// NewMockRegistrationRepository creates a new instance of MockRegistrationRepository.
func NewMockRegistrationRepository() *MockRegistrationRepository {
	return &MockRegistrationRepository{
		regs: make(map[string]models.PendingRegistration),
	}
}

// Get returns the pending registration for an email.
func (r *MockRegistrationRepository) Get(email string) (*models.PendingRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.regs[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &reg, nil
}

// Upsert creates or overwrites the pending registration.
func (r *MockRegistrationRepository) Upsert(reg *models.PendingRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.regs[reg.Email] = *reg
	return nil
}

// Delete removes the pending registration for an email.
func (r *MockRegistrationRepository) Delete(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.regs, email)
	return nil
}
