package reservation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"booking-platform/internal/domain/user"

	"github.com/google/uuid"
)

type ClientKind string

const (
	ClientKindRegistered ClientKind = "registered"
	ClientKindGuest      ClientKind = "guest"
)

// ClientIdentity is either a RegisteredClient or a GuestClient.
type ClientIdentity interface {
	Kind() ClientKind
	isClientIdentity()
}

type RegisteredClient struct {
	id uuid.UUID
}

func NewRegisteredClient(id uuid.UUID) (RegisteredClient, error) {
	if id == uuid.Nil {
		return RegisteredClient{}, ErrInvalidClientID
	}
	return RegisteredClient{id: id}, nil
}

func (RegisteredClient) Kind() ClientKind  { return ClientKindRegistered }
func (RegisteredClient) isClientIdentity() {}
func (c RegisteredClient) ID() uuid.UUID   { return c.id }

type GuestClient struct {
	name  string
	email user.Email
	phone string
}

func NewGuestClient(name, email, phone string) (GuestClient, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return GuestClient{}, ErrInvalidGuestName
	}
	em, err := user.NewEmail(email)
	if err != nil {
		return GuestClient{}, err
	}
	ph, err := normalizePhone(phone)
	if err != nil {
		return GuestClient{}, err
	}
	return GuestClient{name: name, email: em, phone: ph}, nil
}

func (GuestClient) Kind() ClientKind  { return ClientKindGuest }
func (GuestClient) isClientIdentity() {}
func (g GuestClient) Name() string    { return g.name }
func (g GuestClient) Email() string   { return g.email.Value() }
func (g GuestClient) Phone() string   { return g.phone }

// GuestInput is the raw guest snapshot supplied by a caller.
type GuestInput struct {
	Name  string
	Email string
	Phone string
}

// NewClientIdentity requires exactly one of clientID and guest.
func NewClientIdentity(clientID *uuid.UUID, guest *GuestInput) (ClientIdentity, error) {
	switch {
	case clientID != nil && guest != nil:
		return nil, ErrAmbiguousClient
	case clientID != nil:
		return NewRegisteredClient(*clientID)
	case guest != nil:
		return NewGuestClient(guest.Name, guest.Email, guest.Phone)
	default:
		return nil, ErrClientRequired
	}
}

// phone numbers keep a leading + and digits only
func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", ErrInvalidGuestPhone
		}
	}
	if digits < 7 || digits > 20 {
		return "", ErrInvalidGuestPhone
	}
	return b.String(), nil
}
