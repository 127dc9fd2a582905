package account

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var (
	ErrEmptyIdentifier   = errors.New("identifier is empty")
	ErrInvalidIdentifier = errors.New("identifier is neither an email address nor an E.164 phone number")
)

var e164 = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// NormalizeIdentifier trims the identifier and lower-cases email addresses so that
// lookups are case-insensitive for email and exact for phone numbers.
func NormalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if IsEmail(identifier) {
		return strings.ToLower(identifier)
	}
	return identifier
}

func IsEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}

// CheckIdentifier expects an already normalized identifier.
func CheckIdentifier(identifier string) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	if IsEmail(identifier) {
		addr, err := mail.ParseAddress(identifier)
		if err != nil || addr.Address != identifier {
			return ErrInvalidIdentifier
		}
		return nil
	}
	if !e164.MatchString(identifier) {
		return ErrInvalidIdentifier
	}
	return nil
}
