package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"culvana/internal/models"
	"culvana/internal/repositories"
)

// AuthService handles login and profile maintenance for verified accounts.
type AuthService struct {
	users  repositories.UserRepository
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// ProfileUpdate carries the profile fields set after first login. Every
// field is required; completing the profile flips profileComplete.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	CompanyName string
	PhoneNumber string
	Country     string
}

// Login authenticates a user and returns a session token plus the account.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials so
// the response does not reveal which one it was.
func (s *AuthService) Login(email, password string, rememberMe bool) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to load user %s: %w", email, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.Email, rememberMe)
	if err != nil {
		return "", nil, err
	}

	user.LastLogin = time.Now().UTC()
	if err := s.users.Update(user); err != nil {
		return "", nil, fmt.Errorf("failed to record last login for %s: %w", email, err)
	}

	return token, user, nil
}

// UpdateProfile overwrites the account's profile fields and marks the
// profile complete.
func (s *AuthService) UpdateProfile(email string, update ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", email, err)
	}

	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.CompanyName = update.CompanyName
	user.PhoneNumber = update.PhoneNumber
	user.Country = update.Country
	user.ProfileComplete = true
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile for %s: %w", email, err)
	}
	return user, nil
}
