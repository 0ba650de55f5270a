package auth

import (
	"strings"

	"booking-platform/internal/domain/user"
	"booking-platform/internal/pkg/errs"
)

const maxDisplayNameLen = 100

var (
	ErrInvalidCredentials = errs.Define(errs.ErrValidation, errs.CodeValidation, "invalid email or password")
	ErrRoleNotAllowed     = errs.Define(errs.ErrValidation, errs.CodeValidation, "role cannot be chosen at registration")
	ErrInvalidDisplayName = errs.Define(errs.ErrValidation, errs.CodeValidation, "display name must be 1-100 characters")
)

// Credentials is a normalized email plus a password that passed the length rules.
type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(email, password string) (Credentials, error) {
	e, err := user.NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	p, err := user.NewPassword(password)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: e, password: p}, nil
}

func (c Credentials) Email() user.Email       { return c.email }
func (c Credentials) Password() user.Password { return c.password }

// Registration is a self-service signup. Admins are provisioned out of band,
// so only self-assignable roles are accepted; an empty role means client.
type Registration struct {
	Credentials
	displayName string
	role        user.Role
}

func NewRegistration(email, password, displayName, role string) (Registration, error) {
	creds, err := NewCredentials(email, password)
	if err != nil {
		return Registration{}, err
	}

	name := strings.TrimSpace(displayName)
	if name == "" || len([]rune(name)) > maxDisplayNameLen {
		return Registration{}, ErrInvalidDisplayName
	}

	r := user.RoleClient
	if role != "" {
		if r, err = user.NewRole(strings.ToLower(role)); err != nil {
			return Registration{}, err
		}
	}
	if !r.SelfAssignable() {
		return Registration{}, ErrRoleNotAllowed
	}

	return Registration{Credentials: creds, displayName: name, role: r}, nil
}

func (r Registration) DisplayName() string { return r.displayName }
func (r Registration) Role() user.Role     { return r.role }
