package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/btcpulse/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()
	got := sanitizer.Apply("  Hello  ", sanitizer.Trim, sanitizer.ToLower)
	assert.Equal(t, "hello", got)

	upper := sanitizer.Compose(strings.ToUpper, sanitizer.Trim)
	assert.Equal(t, "ABC", upper(" abc "))
	assert.Equal(t, "x", sanitizer.Apply[string]("x"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  John.Doe@Example.COM ": "john.doe@example.com",
		"a..b@example.com":        "a.b@example.com",
		".a.@example.com":         "a@example.com",
		"Not-An-Email":            "not-an-email",
		"a@b@c":                   "a@b@c",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, sanitizer.NormalizeEmail(in))
		})
	}
}

func TestUsername(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "satoshi nakamoto", sanitizer.Username("  satoshi\x00\n  nakamoto "))
	assert.Equal(t, "", sanitizer.Username(" \t "))
}

func TestRemoveControlChars(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab\tc", sanitizer.RemoveControlChars("a\x07b\tc\x1b"))
}
