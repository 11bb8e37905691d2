package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"culvana/internal/models"
	"culvana/internal/repositories"
	"culvana/internal/services"
)

// captureNotifier records dispatched codes instead of sending email.
type captureNotifier struct {
	recipients []string
	codes      []string
	fail       bool
}

func (n *captureNotifier) SendOTPEmail(email, code string) error {
	if n.fail {
		return errors.New("broker unavailable")
	}
	n.recipients = append(n.recipients, email)
	n.codes = append(n.codes, code)
	return nil
}

func (n *captureNotifier) lastCode() string {
	return n.codes[len(n.codes)-1]
}

func newRegistrationFixture() (*services.RegistrationService, *repositories.MockUserRepository, *repositories.MockRegistrationRepository, *captureNotifier) {
	users := repositories.NewMockUserRepository()
	regs := repositories.NewMockRegistrationRepository()
	notifier := &captureNotifier{}
	tokens := services.NewTokenService("test_jwt_secret")
	return services.NewRegistrationService(users, regs, notifier, tokens), users, regs, notifier
}

func TestRegistrationService_Signup(t *testing.T) {
	svc, _, regs, notifier := newRegistrationFixture()

	err := svc.Signup("a@x.com", "longpw123")
	assert.NoError(t, err)

	// One dispatch, and the pending record starts clean.
	assert.Len(t, notifier.codes, 1)
	reg, err := regs.Get("a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, 0, reg.Attempts)
	assert.Equal(t, "pending", reg.Status)
	assert.Equal(t, services.HashOTP(notifier.lastCode()), reg.OTPHash)
	assert.True(t, reg.ExpiresAt.After(time.Now()))

	// The password is stored hashed, never in the clear.
	assert.NotEqual(t, "longpw123", reg.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reg.PasswordHash), []byte("longpw123")))
}

func TestRegistrationService_SignupWeakPassword(t *testing.T) {
	svc, _, regs, notifier := newRegistrationFixture()

	err := svc.Signup("a@x.com", "short1")
	assert.ErrorIs(t, err, services.ErrWeakPassword)

	// Nothing written, nothing dispatched.
	_, err = regs.Get("a@x.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, notifier.codes)
}

func TestRegistrationService_SignupExistingEmail(t *testing.T) {
	svc, users, _, _ := newRegistrationFixture()

	assert.NoError(t, users.Create(&models.User{Email: "a@x.com"}))
	err := svc.Signup("a@x.com", "longpw123")
	assert.ErrorIs(t, err, services.ErrEmailRegistered)
}

func TestRegistrationService_SignupDeliveryFailure(t *testing.T) {
	svc, _, regs, notifier := newRegistrationFixture()
	notifier.fail = true

	err := svc.Signup("a@x.com", "longpw123")
	assert.ErrorIs(t, err, services.ErrDeliveryFailed)

	// The pending record survives a failed dispatch; it is not rolled back.
	reg, err := regs.Get("a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "pending", reg.Status)
}

func TestRegistrationService_VerifySignup(t *testing.T) {
	svc, users, regs, notifier := newRegistrationFixture()
	tokens := services.NewTokenService("test_jwt_secret")

	assert.NoError(t, svc.Signup("a@x.com", "longpw123"))

	token, user, err := svc.VerifySignup("a@x.com", notifier.lastCode())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, user.Verified)
	assert.Equal(t, "active", user.Status)
	assert.False(t, user.ProfileComplete)

	// The account exists and the pending registration is gone.
	created, err := users.GetByEmail("a@x.com")
	assert.NoError(t, err)
	assert.True(t, created.Verified)
	_, err = regs.Get("a@x.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// The token is a valid session token for the new account.
	claims, err := tokens.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", claims["user_id"])

	// Repeating the request after success finds nothing.
	_, _, err = svc.VerifySignup("a@x.com", notifier.lastCode())
	assert.ErrorIs(t, err, services.ErrRegistrationNotFound)
}

func TestRegistrationService_VerifySignupNoRegistration(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture()

	_, _, err := svc.VerifySignup("nobody@x.com", "123456")
	assert.ErrorIs(t, err, services.ErrRegistrationNotFound)
}

func TestRegistrationService_VerifySignupExpired(t *testing.T) {
	svc, _, regs, notifier := newRegistrationFixture()

	assert.NoError(t, svc.Signup("a@x.com", "longpw123"))

	reg, err := regs.Get("a@x.com")
	assert.NoError(t, err)
	reg.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	assert.NoError(t, regs.Upsert(reg))

	_, _, err = svc.VerifySignup("a@x.com", notifier.lastCode())
	assert.ErrorIs(t, err, services.ErrOTPExpired)

	// The expired record is left as-is, not cleaned up.
	stale, err := regs.Get("a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "pending", stale.Status)
}

func TestRegistrationService_VerifySignupWrongCode(t *testing.T) {
	svc, _, regs, notifier := newRegistrationFixture()

	assert.NoError(t, svc.Signup("a@x.com", "longpw123"))
	wrong := "000000"
	if notifier.lastCode() == wrong {
		wrong = "000001"
	}

	// Two failures increment the counter and report an invalid code.
	for want := 1; want <= 2; want++ {
		_, _, err := svc.VerifySignup("a@x.com", wrong)
		assert.ErrorIs(t, err, services.ErrInvalidOTP)
		reg, err := regs.Get("a@x.com")
		assert.NoError(t, err)
		assert.Equal(t, want, reg.Attempts)
	}

	// The third failure exhausts the registration.
	_, _, err := svc.VerifySignup("a@x.com", wrong)
	assert.ErrorIs(t, err, services.ErrTooManyAttempts)

	// The record survives every failure.
	reg, err := regs.Get("a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, 3, reg.Attempts)

	// Even the correct code is rejected once exhausted; only a resend
	// reopens the registration.
	_, _, err = svc.VerifySignup("a@x.com", notifier.lastCode())
	assert.ErrorIs(t, err, services.ErrTooManyAttempts)
}

func TestRegistrationService_ResendOTP(t *testing.T) {
	svc, _, regs, notifier := newRegistrationFixture()

	assert.NoError(t, svc.Signup("a@x.com", "longpw123"))

	// Burn all three attempts.
	wrong := "000000"
	if notifier.lastCode() == wrong {
		wrong = "000001"
	}
	for i := 0; i < 3; i++ {
		_, _, err := svc.VerifySignup("a@x.com", wrong)
		assert.Error(t, err)
	}

	// Resend resets the counter and rotates the code.
	assert.NoError(t, svc.ResendOTP("a@x.com"))
	assert.Len(t, notifier.codes, 2)
	reg, err := regs.Get("a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, 0, reg.Attempts)
	assert.Equal(t, services.HashOTP(notifier.lastCode()), reg.OTPHash)

	// The fresh code verifies.
	_, user, err := svc.VerifySignup("a@x.com", notifier.lastCode())
	assert.NoError(t, err)
	assert.True(t, user.Verified)
}

func TestRegistrationService_ResendOTPNoRegistration(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture()

	err := svc.ResendOTP("nobody@x.com")
	assert.ErrorIs(t, err, services.ErrRegistrationNotFound)
}
