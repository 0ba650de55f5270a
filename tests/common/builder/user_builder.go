//go:build unit || e2e

package builder

import (
	"time"

	"booking-platform/internal/domain/user"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// UserBuilder keeps one ID across its build targets, so a domain user, its
// row and its read model all describe the same account.
type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "test@example.com",
		DisplayName:  "Test User",
		PasswordHash: "hashed_password",
		Role:         string(user.RoleClient),
		IsActive:     true,
		CreatedAt:    ReferenceNow,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder { b.Email = email; return b }
func (b *UserBuilder) WithRole(role string) *UserBuilder { b.Role = role; return b }
func (b *UserBuilder) WithPasswordHash(h string) *UserBuilder { b.PasswordHash = h; return b }
func (b *UserBuilder) AsInactive() *UserBuilder { b.IsActive = false; return b }

func (b *UserBuilder) LoggedInAt(at time.Time) *UserBuilder {
	b.LastLogin = &at
	return b
}

// BuildDomain validates email and role the way registration does.
func (b *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(b.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(b.ID, email, b.DisplayName, b.PasswordHash, role, b.LastLogin, b.IsActive, b.CreatedAt, b.CreatedAt), nil
}

func (b *UserBuilder) MustBuildDomain() *user.User {
	u, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return u
}

func (b *UserBuilder) BuildInfra() sqlc.Users {
	var lastLogin pgtype.Timestamptz
	if b.LastLogin != nil {
		lastLogin = pgtype.Timestamptz{Time: *b.LastLogin, Valid: true}
	}
	created := pgtype.Timestamptz{Time: b.CreatedAt, Valid: true}
	return sqlc.Users{
		ID:           b.ID,
		Email:        b.Email,
		DisplayName:  b.DisplayName,
		PasswordHash: b.PasswordHash,
		Role:         b.Role,
		LastLogin:    lastLogin,
		IsActive:     b.IsActive,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func (b *UserBuilder) BuildReadModel() *queries.UserView {
	return &queries.UserView{
		ID:          b.ID,
		Email:       b.Email,
		DisplayName: b.DisplayName,
		Role:        b.Role,
		LastLogin:   b.LastLogin,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
	}
}
