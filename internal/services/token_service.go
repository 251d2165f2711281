package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenService issues and checks the bearer tokens that bind an HTTP client
// to its session.
type TokenService struct {
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which a session token is valid
}

// NewTokenService creates a new TokenService.
func NewTokenService(jwtSecret string, tokenDuration time.Duration) *TokenService {
	return &TokenService{
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
	}
}

// Issue signs a token for sessionID and returns it with its expiry.
func (s *TokenService) Issue(sessionID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenDurat)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        expiresAt.Unix(),
		"iat":        now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Validate parses tokenString and returns the session id it carries.
func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("invalid token: missing session_id")
	}
	return sessionID, nil
}
