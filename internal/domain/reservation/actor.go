package reservation

import (
	"booking-platform/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the caller requesting a change. The zero value is anonymous.
type Actor struct {
	id   uuid.UUID
	role user.Role
}

func NewActor(id uuid.UUID, role user.Role) Actor {
	return Actor{id: id, role: role}
}

func (a Actor) ID() uuid.UUID   { return a.id }
func (a Actor) Role() user.Role { return a.role }

func (a Actor) IsAnonymous() bool {
	return a.id == uuid.Nil
}

func (a Actor) IsAdmin() bool {
	return !a.IsAnonymous() && a.role == user.RoleAdmin
}

// BypassesCancellationWindow is true only for administrative actors.
func (a Actor) BypassesCancellationWindow() bool {
	return a.IsAdmin()
}
