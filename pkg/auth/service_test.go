package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/btcpulse/pkg/auth"
	"github.com/dmitrymomot/btcpulse/pkg/enrich"
	"github.com/dmitrymomot/btcpulse/pkg/jwt"
	"github.com/dmitrymomot/btcpulse/pkg/validator"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, storage auth.Storage) *auth.Service {
	t.Helper()
	tokens, err := jwt.New(jwt.Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)
	return auth.NewService(auth.Config{}, storage, tokens,
		auth.WithBcryptCost(bcrypt.MinCost),
		auth.WithClock(func() time.Time { return fixedNow }),
	)
}

func descriptor() enrich.ClientDescriptor {
	return enrich.ClientDescriptor{
		IP:      "203.0.113.7",
		Country: "DE",
		City:    "Berlin",
		Region:  "BE",
		Browser: "Chrome",
		OS:      "Windows 10/11",
		Device:  "Desktop",
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("FindByEmailOrUsername", mock.Anything, "alice@example.com", "alice").
			Return(nil, auth.ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			return u.Email == "alice@example.com" && u.Role == auth.RoleUser &&
				u.SignupInfo != nil && u.SignupInfo.Country == "DE" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")) == nil
		})).Return(nil)

		user, err := newService(t, storage).Register(context.Background(), auth.RegisterInput{
			Username: " alice ",
			Email:    "Alice@Example.com",
			Password: "hunter22",
		}, descriptor())
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, fixedNow, user.CreatedAt)
		storage.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("FindByEmailOrUsername", mock.Anything, "bob@example.com", "bob").
			Return(&auth.User{ID: "1"}, nil)

		_, err := newService(t, storage).Register(context.Background(), auth.RegisterInput{
			Username: "bob", Email: "bob@example.com", Password: "hunter22",
		}, descriptor())
		assert.ErrorIs(t, err, auth.ErrUserExists)
		storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("duplicate key race", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("FindByEmailOrUsername", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, auth.ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.Anything).Return(auth.ErrUserExists)

		_, err := newService(t, storage).Register(context.Background(), auth.RegisterInput{
			Username: "carol", Email: "carol@example.com", Password: "hunter22",
		}, descriptor())
		assert.ErrorIs(t, err, auth.ErrUserExists)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}

		_, err := newService(t, storage).Register(context.Background(), auth.RegisterInput{
			Username: "x", Email: "nope", Password: "1",
		}, descriptor())
		require.Error(t, err)
		ve := validator.ExtractValidationErrors(err)
		assert.True(t, ve.Has("username"))
		assert.True(t, ve.Has("email"))
		assert.True(t, ve.Has("password"))
		storage.AssertNotCalled(t, "FindByEmailOrUsername", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("FindByEmailOrUsername", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset"))

		_, err := newService(t, storage).Register(context.Background(), auth.RegisterInput{
			Username: "dave", Email: "dave@example.com", Password: "hunter22",
		}, descriptor())
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrUserExists)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("records login", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("GetUserByEmail", mock.Anything, "alice@example.com").
			Return(&auth.User{ID: "u1", Email: "alice@example.com", PasswordHash: hashed(t, "hunter22")}, nil)
		storage.On("RecordLogin", mock.Anything, "u1", mock.MatchedBy(func(e auth.LoginEvent) bool {
			return e.IP == "203.0.113.7" && e.Timestamp.Equal(fixedNow) &&
				e.Location != nil && e.Location.City == "Berlin"
		})).Return(nil)

		user, err := newService(t, storage).Authenticate(context.Background(),
			auth.LoginInput{Email: "ALICE@example.com", Password: "hunter22"}, descriptor())
		require.NoError(t, err)
		require.NotNil(t, user.LastLogin)
		assert.Nil(t, user.LastLogin.Location)
		assert.Equal(t, "Chrome", user.LastLogin.Browser)
		assert.Len(t, user.LoginHistory, 1)
		storage.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("GetUserByEmail", mock.Anything, "alice@example.com").
			Return(&auth.User{ID: "u1", PasswordHash: hashed(t, "hunter22")}, nil)

		_, err := newService(t, storage).Authenticate(context.Background(),
			auth.LoginInput{Email: "alice@example.com", Password: "wrong"}, descriptor())
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		storage.AssertNotCalled(t, "RecordLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		storage.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, auth.ErrUserNotFound)

		_, err := newService(t, storage).Authenticate(context.Background(),
			auth.LoginInput{Email: "ghost@example.com", Password: "x"}, descriptor())
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		_, err := newService(t, &MockStorage{}).Authenticate(context.Background(),
			auth.LoginInput{}, descriptor())
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestTokens(t *testing.T) {
	t.Parallel()
	svc := newService(t, &MockStorage{})

	token, err := svc.IssueToken(&auth.User{ID: "u1", Email: "a@example.com", Role: auth.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	_, err = svc.ParseToken(token + "x")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	storage := &MockStorage{}
	storage.On("GetUserByID", mock.Anything, "admin").Return(&auth.User{ID: "admin", Role: auth.RoleAdmin}, nil)
	storage.On("GetUserByID", mock.Anything, "user").Return(&auth.User{ID: "user", Role: auth.RoleUser}, nil)
	storage.On("GetUserByID", mock.Anything, "gone").Return(nil, auth.ErrUserNotFound)
	svc := newService(t, storage)
	ctx := context.Background()

	user, err := svc.RequireAdmin(ctx, auth.Claims{UserID: "admin"})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	// role comes from storage, not from the token
	_, err = svc.RequireAdmin(ctx, auth.Claims{UserID: "user", Role: auth.RoleAdmin})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = svc.RequireAdmin(ctx, auth.Claims{UserID: "gone"})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestListUsers(t *testing.T) {
	t.Parallel()

	storage := &MockStorage{}
	storage.On("ListUsers", mock.Anything).Return([]auth.User{
		{ID: "2", PasswordHash: "h", LoginHistory: []auth.LoginEvent{{IP: "1.1.1.1"}}},
		{ID: "1"},
	}, nil)

	users, err := newService(t, storage).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Empty(t, users[0].PasswordHash)
	assert.Nil(t, users[0].LoginHistory)
}

func TestClaimsContext(t *testing.T) {
	t.Parallel()
	ctx := auth.WithClaims(context.Background(), auth.Claims{UserID: "u1"})
	c, ok := auth.ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", c.UserID)

	_, ok = auth.ClaimsFromContext(context.Background())
	assert.False(t, ok)
}
