package validation

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxEmailLength       = 254
	maxDisplayNameLength = 50
)

// ValidateEmail accepts a bare RFC 5322 address.
func ValidateEmail(email string) error {
	switch {
	case email == "":
		return errors.New("email is required")
	case len(email) > maxEmailLength:
		return errors.New("email is too long")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidateDisplayName checks the name shown on the leaderboard.
func ValidateDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return errors.New("display name is required")
	case utf8.RuneCountInString(trimmed) > maxDisplayNameLength:
		return errors.New("display name is too long (max 50 characters)")
	case trimmed != name:
		return errors.New("display name has leading or trailing spaces")
	}
	return nil
}
