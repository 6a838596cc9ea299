package auth

import (
	"errors"

	"github.com/dmitrymomot/btcpulse/pkg/jwt"
)

// Claims is the access token payload.
type Claims struct {
	jwt.StandardClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// IssueToken signs an access token for user valid for the configured TTL.
func (s *Service) IssueToken(user *User) (string, error) {
	return s.tokens.Generate(Claims{
		StandardClaims: s.tokens.Standard(user.ID),
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
	})
}

// ParseToken verifies token and returns its claims. Every failure maps to
// ErrTokenInvalid joined with the cause.
func (s *Service) ParseToken(token string) (Claims, error) {
	var c Claims
	if err := s.tokens.Parse(token, &c); err != nil {
		return Claims{}, errors.Join(ErrTokenInvalid, err)
	}
	if c.UserID == "" {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
