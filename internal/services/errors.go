package services

import "errors"

// Sentinel errors returned by the services. Handlers map them onto HTTP
// status codes with errors.Is; anything else becomes a 500.
var (
	// ErrEmailRegistered is returned on signup when the email already has a
	// verified account.
	ErrEmailRegistered = errors.New("email already registered")

	// ErrWeakPassword is returned when a signup password is shorter than
	// eight characters.
	ErrWeakPassword = errors.New("password must be at least 8 characters long")

	// ErrRegistrationNotFound is returned when no pending registration
	// exists for the email.
	ErrRegistrationNotFound = errors.New("no pending registration found")

	// ErrOTPExpired is returned when the verification code's expiry has
	// passed. The registration record is left in place.
	ErrOTPExpired = errors.New("verification code has expired")

	// ErrInvalidOTP is returned on a code mismatch while attempts remain.
	ErrInvalidOTP = errors.New("invalid verification code")

	// ErrTooManyAttempts is returned once three verifications have failed.
	// Only a resend clears it.
	ErrTooManyAttempts = errors.New("too many failed attempts")

	// ErrDeliveryFailed is returned when the verification email could not
	// be dispatched.
	ErrDeliveryFailed = errors.New("failed to send verification code")

	// ErrInvalidCredentials is returned on login for an unknown email or a
	// wrong password, without distinguishing the two.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when an operation targets an email with
	// no verified account.
	ErrUserNotFound = errors.New("user not found")

	// ErrDocumentNotFound is returned when a mutation targets a user that
	// has no aggregate document at all.
	ErrDocumentNotFound = errors.New("user document not found")

	// ErrItemNotFound is returned when the document exists but no entry
	// matches the given item number.
	ErrItemNotFound = errors.New("inventory item not found")
)
