package models

import "time"

// User represents a verified account. The email address doubles as the
// document id, so it is the primary key.
type User struct {
	Email           string    `json:"email" gorm:"primaryKey;type:varchar(255)"`
	PasswordHash    string    `json:"-" gorm:"type:varchar(255)"`
	Verified        bool      `json:"verified"`
	Status          string    `json:"status" gorm:"type:varchar(32)"`
	ProfileComplete bool      `json:"profileComplete"`
	FirstName       string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName        string    `json:"last_name" gorm:"type:varchar(100)"`
	CompanyName     string    `json:"company_name" gorm:"type:varchar(255)"`
	PhoneNumber     string    `json:"phone_number" gorm:"type:varchar(32)"`
	Country         string    `json:"country" gorm:"type:varchar(100)"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	LastLogin       time.Time `json:"lastLogin"`
}

// PendingRegistration holds a signup that is waiting for OTP verification.
// It is created on signup, refreshed on resend, and deleted once the email
// is verified. Attempts counts consecutive failed verifications; resend is
// the only thing that resets it.
type PendingRegistration struct {
	Email        string    `json:"email" gorm:"primaryKey;type:varchar(255)"`
	PasswordHash string    `json:"passwordHash" gorm:"type:varchar(255)"`
	OTPHash      string    `json:"otpHash" gorm:"type:varchar(64)"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Attempts     int       `json:"attempts"`
	Status       string    `json:"status" gorm:"type:varchar(32)"`
}
