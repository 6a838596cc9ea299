package validator_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/btcpulse/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("username", "alice"),
			validator.ValidEmail("email", "alice@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects failures", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("username", "  "),
			validator.ValidEmail("email", "nope"),
			validator.LenBetween("bio", "ok", 1, 10),
		)
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		ve := validator.ExtractValidationErrors(fmt.Errorf("wrapped: %w", err))
		require.Len(t, ve, 2)
		assert.True(t, ve.Has("username"))
		assert.True(t, ve.Has("email"))
		assert.False(t, ve.Has("bio"))
		assert.Equal(t, "username is required", ve.First())
		assert.Contains(t, ve.Error(), "email: must be a valid email address")
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"user@example.com":      true,
		"first.last@sub.dom.io": true,
		"":                      false,
		"user@localhost":        false,
		"user@.com":             false,
		"user@example..com":     false,
		"User <u@example.com>":  false,
		"@example.com":          false,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, validator.ValidEmail("email", in).Check())
		})
	}
}

func TestValidUsername(t *testing.T) {
	t.Parallel()
	assert.True(t, validator.ValidUsername("u", "satoshi_n.1-x").Check())
	assert.False(t, validator.ValidUsername("u", "has space").Check())
	assert.False(t, validator.ValidUsername("u", "").Check())
}

func TestLenBetween(t *testing.T) {
	t.Parallel()
	assert.True(t, validator.LenBetween("u", "abc", 3, 5).Check())
	assert.True(t, validator.LenBetween("u", "ééé", 3, 3).Check())
	assert.False(t, validator.LenBetween("u", "ab", 3, 5).Check())
	assert.False(t, validator.LenBetween("u", "abcdef", 3, 5).Check())
}

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	def := validator.DefaultPasswordPolicy()
	strict := validator.PasswordPolicy{MinLength: 8, MaxLength: 72, MinCharClasses: 3}

	tests := []struct {
		name   string
		value  string
		policy validator.PasswordPolicy
		want   bool
	}{
		{"default ok", "secret", def, true},
		{"too short", "abc", def, false},
		{"too long", strings.Repeat("a", 73), def, false},
		{"strict ok", "Secret123", strict, true},
		{"strict two classes", "secret123", strict, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validator.StrongPassword("password", tt.value, tt.policy).Check())
		})
	}
}
