package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenService issues and validates the signed session tokens handed out
// after login and signup verification.
type TokenService struct {
	secret      []byte
	regularTTL  time.Duration
	rememberTTL time.Duration
}

// NewTokenService creates a new TokenService. Regular tokens live 24 hours,
// remember-me tokens 30 days.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret:      []byte(secret),
		regularTTL:  24 * time.Hour,
		rememberTTL: 30 * 24 * time.Hour,
	}
}

// IssueToken produces a signed HS256 token bound to a user id, with the
// expiry window selected by rememberMe.
func (s *TokenService) IssueToken(userID string, rememberMe bool) (string, error) {
	ttl := s.regularTTL
	if rememberMe {
		ttl = s.rememberTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning its claims.
// Tokens with a bad signature, a wrong algorithm, or a passed expiry are
// rejected.
func (s *TokenService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
