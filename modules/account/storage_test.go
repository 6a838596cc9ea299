package account_test

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/btcpulse/pkg/auth"
)

// memStorage is an in-memory auth.Storage.
type memStorage struct {
	mu    sync.Mutex
	users []*auth.User
}

func (s *memStorage) CreateUser(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return auth.ErrUserExists
		}
	}
	cp := *user
	s.users = append(s.users, &cp)
	return nil
}

func (s *memStorage) find(match func(*auth.User) bool) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *memStorage) GetUserByID(_ context.Context, id string) (*auth.User, error) {
	return s.find(func(u *auth.User) bool { return u.ID == id })
}

func (s *memStorage) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	return s.find(func(u *auth.User) bool { return u.Email == email })
}

func (s *memStorage) FindByEmailOrUsername(_ context.Context, email, username string) (*auth.User, error) {
	return s.find(func(u *auth.User) bool { return u.Email == email || u.Username == username })
}

func (s *memStorage) RecordLogin(_ context.Context, id string, event auth.LoginEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			last := event
			last.Location = nil
			u.LastLogin = &last
			u.LoginHistory = append(u.LoginHistory, event)
			return nil
		}
	}
	return auth.ErrUserNotFound
}

func (s *memStorage) ListUsers(context.Context) ([]auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]auth.User, 0, len(s.users))
	for _, u := range slices.Backward(s.users) {
		out = append(out, *u)
	}
	return out, nil
}

func (s *memStorage) promote(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u.Role = auth.RoleAdmin
		}
	}
}

func (s *memStorage) user(email string) *auth.User {
	u, _ := s.GetUserByEmail(context.Background(), email)
	return u
}
