package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrUserExists         = errors.New("auth: user exists")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUnauthorized       = errors.New("auth: unauthorized")
	ErrTokenInvalid       = errors.New("auth: token invalid or expired")
	ErrForbidden          = errors.New("auth: admin role required")
	ErrHashPassword       = errors.New("auth: failed to hash password")
)
