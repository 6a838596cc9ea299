package auth

import "context"

// Storage persists accounts. Lookups return ErrUserNotFound when nothing
// matches, and CreateUser returns ErrUserExists on a unique-key conflict.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	RecordLogin(ctx context.Context, id string, event LoginEvent) error
	ListUsers(ctx context.Context) ([]User, error)
}
