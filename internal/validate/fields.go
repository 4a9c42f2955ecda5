package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pure field predicates shared by the form core and the backend's server-side
// re-validation. Each returns ok plus a user-facing message when invalid.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fake numbers people type to get past required-field checks.
var phoneDenylist = map[string]struct{}{
	"123456789":  {},
	"123123123":  {},
	"987654321":  {},
	"1234567890": {},
	"0123456789": {},
}

// Name requires at least 3 characters, letters, digits and spaces only.
// Letter classification is Unicode-aware, not ASCII-only.
func Name(name string) (bool, string) {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < 3 {
		return false, "name must be at least 3 characters"
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return false, "name may only contain letters, digits and spaces"
		}
	}
	return true, ""
}

// Phone accepts digits with common separators (+, -, space, parentheses).
// The digit-only form must be 8-15 digits, not a single repeated digit and
// not an obviously fake number.
func Phone(phone string) (bool, string) {
	raw := strings.TrimSpace(phone)
	if raw == "" {
		return false, "phone number is required"
	}
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case '+', '-', ' ', '(', ')':
			continue
		}
		return false, "phone number contains invalid characters"
	}

	cleaned := digitsOnly(raw)
	if len(cleaned) < 8 || len(cleaned) > 15 {
		return false, "phone number must have 8-15 digits"
	}
	if repeatedDigit(cleaned) {
		return false, "phone number looks invalid"
	}
	if _, denied := phoneDenylist[cleaned]; denied {
		return false, "phone number looks invalid"
	}
	return true, ""
}

// Email is optional: empty is valid, otherwise the value must have the
// local@domain.tld shape.
func Email(email string) (bool, string) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return true, ""
	}
	if !emailPattern.MatchString(trimmed) {
		return false, "invalid email address"
	}
	return true, ""
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func repeatedDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
