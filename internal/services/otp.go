package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// otpLength is the number of digits in a verification code.
const otpLength = 6

// GenerateOTP returns a 6-digit verification code. Each digit is drawn
// independently from 0-9, so leading zeros are allowed.
func GenerateOTP() (string, error) {
	code := make([]byte, otpLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate verification code: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// HashOTP returns the hex-encoded SHA-256 digest of a verification code.
// Only the digest is ever stored.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
