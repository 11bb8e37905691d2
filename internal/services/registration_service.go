package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"culvana/internal/models"
	"culvana/internal/repositories"
)

const (
	// minPasswordLength is the minimum accepted signup password length.
	minPasswordLength = 8

	// otpTTL is how long a verification code stays valid.
	otpTTL = 10 * time.Minute

	// maxVerifyAttempts is the number of failed verifications allowed
	// before a resend is required.
	maxVerifyAttempts = 3
)

// NotificationSender dispatches a verification code to an email address.
type NotificationSender interface {
	SendOTPEmail(email, code string) error
}

// RegistrationService drives the signup flow: pending registration, OTP
// dispatch, verification, and account creation.
type RegistrationService struct {
	users    repositories.UserRepository
	regs     repositories.RegistrationRepository
	notifier NotificationSender
	tokens   *TokenService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(users repositories.UserRepository, regs repositories.RegistrationRepository, notifier NotificationSender, tokens *TokenService) *RegistrationService {
	return &RegistrationService{
		users:    users,
		regs:     regs,
		notifier: notifier,
		tokens:   tokens,
	}
}

// Signup starts a registration: it writes a pending registration with a
// fresh OTP digest and dispatches the code. The pending record is written
// before the dispatch and is not rolled back if the dispatch fails.
func (s *RegistrationService) Signup(email, password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	exists, err := s.users.Exists(email)
	if err != nil {
		return fmt.Errorf("failed to check existing account for %s: %w", email, err)
	}
	if exists {
		return ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	reg := &models.PendingRegistration{
		Email:        email,
		PasswordHash: string(hashed),
		OTPHash:      HashOTP(code),
		ExpiresAt:    time.Now().UTC().Add(otpTTL),
		Attempts:     0,
		Status:       "pending",
	}
	if err := s.regs.Upsert(reg); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}

	if err := s.notifier.SendOTPEmail(email, code); err != nil {
		log.Printf("Failed to dispatch verification code to %s: %v", email, err)
		return ErrDeliveryFailed
	}
	return nil
}

// ResendOTP replaces the pending registration's code and expiry and resets
// the attempt counter, then dispatches the new code.
func (s *RegistrationService) ResendOTP(email string) error {
	reg, err := s.regs.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to load pending registration: %w", err)
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	reg.OTPHash = HashOTP(code)
	reg.ExpiresAt = time.Now().UTC().Add(otpTTL)
	reg.Attempts = 0
	if err := s.regs.Upsert(reg); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}

	if err := s.notifier.SendOTPEmail(email, code); err != nil {
		log.Printf("Failed to dispatch verification code to %s: %v", email, err)
		return ErrDeliveryFailed
	}
	return nil
}

// VerifySignup checks a submitted code against the pending registration.
// On a match it creates the verified account, deletes the registration, and
// returns a session token with the new user. Mismatches increment the
// attempt counter; once it reaches three the registration only accepts a
// resend. A request arriving at the exact expiry instant is still accepted.
func (s *RegistrationService) VerifySignup(email, code string) (string, *models.User, error) {
	reg, err := s.regs.Get(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrRegistrationNotFound
		}
		return "", nil, fmt.Errorf("failed to load pending registration: %w", err)
	}

	if reg.Attempts >= maxVerifyAttempts {
		return "", nil, ErrTooManyAttempts
	}

	if time.Now().UTC().After(reg.ExpiresAt) {
		return "", nil, ErrOTPExpired
	}

	if HashOTP(code) != reg.OTPHash {
		reg.Attempts++
		if err := s.regs.Upsert(reg); err != nil {
			return "", nil, fmt.Errorf("failed to record failed attempt: %w", err)
		}
		if reg.Attempts >= maxVerifyAttempts {
			return "", nil, ErrTooManyAttempts
		}
		return "", nil, ErrInvalidOTP
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:           email,
		PasswordHash:    reg.PasswordHash,
		Verified:        true,
		Status:          "active",
		ProfileComplete: false,
		CreatedAt:       now,
	}
	if err := s.users.Create(user); err != nil {
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.regs.Delete(email); err != nil {
		return "", nil, fmt.Errorf("failed to delete pending registration: %w", err)
	}

	token, err := s.tokens.IssueToken(user.Email, false)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
