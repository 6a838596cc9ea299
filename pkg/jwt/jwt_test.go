package jwt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/btcpulse/pkg/jwt"
)

type testClaims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

func newService(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.New(jwt.Config{Secret: "test-secret", TTL: time.Hour, Issuer: "test"})
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing secret", func(t *testing.T) {
		t.Parallel()
		_, err := jwt.New(jwt.Config{})
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})

	t.Run("default ttl", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.New(jwt.Config{Secret: "s"})
		require.NoError(t, err)
		assert.Equal(t, time.Hour, svc.TTL())
	})
}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	in := testClaims{StandardClaims: svc.Standard("user-1"), Role: "admin"}
	token, err := svc.Generate(in)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	var out testClaims
	require.NoError(t, svc.Parse(token, &out))
	assert.Equal(t, "user-1", out.Subject)
	assert.Equal(t, "admin", out.Role)
	assert.Equal(t, "test", out.Issuer)
	assert.NotEmpty(t, out.ID)
	assert.InDelta(t, time.Hour.Seconds(), float64(out.ExpiresAt-out.IssuedAt), 1)
}

func TestGenerateNilClaims(t *testing.T) {
	t.Parallel()
	_, err := newService(t).Generate(nil)
	assert.ErrorIs(t, err, jwt.ErrMissingClaims)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	other, err := jwt.New(jwt.Config{Secret: "other-secret"})
	require.NoError(t, err)
	foreign, err := other.Generate(testClaims{StandardClaims: other.Standard("x")})
	require.NoError(t, err)

	expired, err := svc.Generate(testClaims{StandardClaims: jwt.StandardClaims{
		Subject:   "x",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}})
	require.NoError(t, err)

	notYet, err := svc.Generate(testClaims{StandardClaims: jwt.StandardClaims{
		Subject:   "x",
		NotBefore: time.Now().Add(time.Hour).Unix(),
	}})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"malformed", "abc.def", jwt.ErrInvalidToken},
		{"wrong key", foreign, jwt.ErrInvalidSignature},
		{"expired", expired, jwt.ErrExpiredToken},
		{"not yet valid", notYet, jwt.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var c testClaims
			assert.ErrorIs(t, svc.Parse(tt.token, &c), tt.want)
		})
	}
}

func TestParseTamperedPayload(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	token, err := svc.Generate(testClaims{StandardClaims: svc.Standard("u"), Role: "user"})
	require.NoError(t, err)
	admin, err := svc.Generate(testClaims{StandardClaims: svc.Standard("u"), Role: "admin"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forged := parts[0] + "." + strings.Split(admin, ".")[1] + "." + parts[2]

	var c testClaims
	assert.ErrorIs(t, svc.Parse(forged, &c), jwt.ErrInvalidSignature)
}
