package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: field + " is required"},
	}
}

// LenBetween checks the rune length of value.
func LenBetween(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			return n >= min && n <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be %d-%d characters long", field, min, max),
		},
	}
}

// ValidEmail accepts a bare RFC 5322 address whose domain has at least one dot.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != strings.TrimSpace(value) {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

// ValidUsername allows letters, digits, underscore, dot and hyphen.
func ValidUsername(field, value string) Rule {
	return Rule{
		Check: func() bool { return usernameRegex.MatchString(value) },
		Error: ValidationError{
			Field:   field,
			Message: field + " may contain only letters, digits, '_', '.' and '-'",
		},
	}
}

// PasswordPolicy bounds password length in bytes and the number of
// character classes (upper, lower, digit, other) it must mix.
type PasswordPolicy struct {
	MinLength      int
	MaxLength      int
	MinCharClasses int
}

// DefaultPasswordPolicy caps length at 72 bytes, the bcrypt input limit.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 6, MaxLength: 72, MinCharClasses: 1}
}

func StrongPassword(field, value string, p PasswordPolicy) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < p.MinLength || len(value) > p.MaxLength {
				return false
			}
			return charClasses(value) >= p.MinCharClasses
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf("password must be %d-%d characters and mix at least %d character types",
				p.MinLength, p.MaxLength, p.MinCharClasses),
		},
	}
}

func charClasses(s string) int {
	var upper, lower, digit, other bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}
	n := 0
	for _, b := range []bool{upper, lower, digit, other} {
		if b {
			n++
		}
	}
	return n
}
