package user

type Role string

const (
	RoleClient Role = "client"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool { return r.rank() > 0 }

// rank orders roles by privilege; unknown roles rank zero.
func (r Role) rank() int {
	switch r {
	case RoleClient:
		return 1
	case RoleOwner:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r carries the privileges of floor.
func (r Role) AtLeast(floor Role) bool {
	return r.IsValid() && floor.IsValid() && r.rank() >= floor.rank()
}

// SelfAssignable roles can be chosen at registration.
func (r Role) SelfAssignable() bool {
	return r == RoleClient || r == RoleOwner
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
