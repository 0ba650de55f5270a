package user

import (
	"net/mail"
	"strings"

	"booking-platform/internal/pkg/errs"
)

const (
	minPasswordLen = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
	maxEmailLen      = 254
)

var (
	ErrInvalidEmail    = errs.Define(errs.ErrValidation, errs.CodeValidation, "invalid email format")
	ErrInvalidRole     = errs.Define(errs.ErrValidation, errs.CodeValidation, "invalid role")
	ErrPasswordTooWeak = errs.Define(errs.ErrValidation, errs.CodeValidation, "password must be at least 8 characters long")
	ErrPasswordTooLong = errs.Define(errs.ErrValidation, errs.CodeValidation, "password must be at most 72 bytes")
)

// Email is a trimmed, lowercased address, so lookups by account or guest
// email are case-insensitive.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > maxEmailLen {
		return Email{}, ErrInvalidEmail
	}
	// bare address only: no display name, and the domain needs a dot
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndexByte(s, '@'):], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

// Password is a plaintext password that satisfies the length rules. It is
// never stored; only its bcrypt hash is.
type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	switch {
	case len([]rune(s)) < minPasswordLen:
		return Password{}, ErrPasswordTooWeak
	case len(s) > maxPasswordBytes:
		return Password{}, ErrPasswordTooLong
	}
	return Password{value: s}, nil
}

func (p Password) Value() string { return p.value }
