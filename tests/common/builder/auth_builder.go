//go:build unit || e2e

package builder

import (
	"strings"

	reqdto "booking-platform/internal/handler/dto/request"
)

// AuthBuilder produces login and registration payloads sharing one set of credentials.
type AuthBuilder struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "test@example.com",
		Password: "password123",
		Role:     "client",
	}
}

func (a *AuthBuilder) AsOwner() *AuthBuilder {
	a.Role = "owner"
	return a
}

func (a *AuthBuilder) WithEmail(email string) *AuthBuilder {
	a.Email = email
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

// BuildRegisterDTO defaults the display name to the email's local part.
func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	name := a.DisplayName
	if name == "" {
		name, _, _ = strings.Cut(a.Email, "@")
	}
	return reqdto.RegisterRequest{
		Email:       a.Email,
		Password:    a.Password,
		DisplayName: name,
		Role:        a.Role,
	}
}
