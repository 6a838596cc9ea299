package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/btcpulse/pkg/enrich"
	"github.com/dmitrymomot/btcpulse/pkg/jwt"
	"github.com/dmitrymomot/btcpulse/pkg/logger"
	"github.com/dmitrymomot/btcpulse/pkg/sanitizer"
	"github.com/dmitrymomot/btcpulse/pkg/validator"
)

// Config holds account settings read from the environment.
type Config struct {
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

// Service implements registration, password login and admin lookups.
type Service struct {
	storage    Storage
	tokens     *jwt.Service
	bcryptCost int
	policy     validator.PasswordPolicy
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Service)

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func WithPasswordPolicy(p validator.PasswordPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the account service. cfg.BcryptCost seeds the hashing
// cost and WithBcryptCost overrides it.
func NewService(cfg Config, storage Storage, tokens *jwt.Service, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		policy:     validator.DefaultPasswordPolicy(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	WithBcryptCost(cfg.BcryptCost)(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates in, rejects a taken email or username and stores a
// new user with role "user" and the given signup descriptor.
func (s *Service) Register(ctx context.Context, in RegisterInput, info enrich.ClientDescriptor) (*User, error) {
	in.Username = sanitizer.Username(in.Username)
	in.Email = sanitizer.NormalizeEmail(in.Email)

	if err := validator.Apply(
		validator.Required("username", in.Username),
		validator.LenBetween("username", in.Username, 3, 32),
		validator.ValidUsername("username", in.Username),
		validator.ValidEmail("email", in.Email),
		validator.StrongPassword("password", in.Password, s.policy),
	); err != nil {
		return nil, err
	}

	_, err := s.storage.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.Join(ErrHashPassword, err)
	}

	now := s.now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         RoleUser,
		SignupInfo:   &info,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		logger.UserID(user.ID),
		logger.ClientIP(info.IP),
		logger.Component("auth"),
	)
	return user, nil
}

// Authenticate checks the password and appends a login event. Unknown email
// and wrong password both return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, in LoginInput, info enrich.ClientDescriptor) (*User, error) {
	email := sanitizer.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	event := NewLoginEvent(info, s.now().UTC())
	if err := s.storage.RecordLogin(ctx, user.ID, event); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	last := event
	last.Location = nil
	user.LastLogin = &last
	user.LoginHistory = append(user.LoginHistory, event)

	s.logger.InfoContext(ctx, "user logged in",
		logger.UserID(user.ID),
		logger.ClientIP(info.IP),
		logger.Component("auth"),
	)
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.storage.GetUserByID(ctx, id)
}

// ListUsers returns every account, newest first, without password hashes
// or login history.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
		users[i].LoginHistory = nil
	}
	return users, nil
}

// RequireAdmin loads the token subject and checks its stored role. A deleted
// subject and a non-admin both yield ErrForbidden.
func (s *Service) RequireAdmin(ctx context.Context, claims Claims) (*User, error) {
	user, err := s.storage.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	return user, nil
}
