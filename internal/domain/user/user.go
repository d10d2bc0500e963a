package user

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
)

var (
	ErrNotFound         = errors.New("user: not found")
	ErrEmailRequired    = errors.New("user: email is required")
	ErrNameRequired     = errors.New("user: name is required")
	ErrEmailAlreadyUsed = errors.New("user: email already registered")
	ErrPhoneAlreadyUsed = errors.New("user: phone number already registered")
	ErrInvalidPhone     = errors.New("user: phone number must be between 10-15 digits")
)

// User is a registered account. Phone is stored digits-only.
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

// Repository persists users. ByID doubles as the identity resolution point
// for conversation summaries.
type Repository interface {
	ByID(ctx context.Context, id string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	ByPhone(ctx context.Context, phone string) (*User, error)
	Save(ctx context.Context, user *User) error
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips non-digits and enforces a 10-15 digit length.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 10 || len(digits) > 15 {
		return "", ErrInvalidPhone
	}
	return digits, nil
}
