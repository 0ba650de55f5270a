//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"booking-platform/internal/domain/user"
	reqdto "booking-platform/internal/handler/dto/request"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/pkg/jwt"
	"booking-platform/internal/pkg/password"
	"booking-platform/internal/usecase/commands"
	"booking-platform/tests/common/builder"
	"booking-platform/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCommands(t *testing.T) {
	ctx := context.Background()
	jwtService := jwt.NewService("test-secret", 15*time.Minute, time.Hour)

	setup := func(t *testing.T) (*memstore.Store, commands.AuthCommands) {
		t.Helper()
		clk := clock.NewMockClock(builder.ReferenceNow)
		store := memstore.New(clk)
		return store, commands.NewAuthCommands(store, jwtService, clk)
	}

	seedUser := func(t *testing.T, store *memstore.Store, b *builder.UserBuilder) *user.User {
		t.Helper()
		hash, err := password.HashPassword("password123")
		require.NoError(t, err)
		u, err := b.WithPasswordHash(hash).BuildDomain()
		require.NoError(t, err)
		store.PutUser(u)
		return u
	}

	t.Run("register issues tokens for the new user", func(t *testing.T) {
		store, cmds := setup(t)

		result, err := cmds.Register(ctx, reqdto.RegisterRequest{
			Email:       "Owner@Example.com",
			Password:    "password123",
			DisplayName: "Owner",
			Role:        "owner",
		})
		require.NoError(t, err)

		u := store.User(result.UserID)
		require.NotNil(t, u)
		assert.Equal(t, "owner@example.com", u.Email().Value())
		assert.Equal(t, user.RoleOwner, u.Role())
		assert.NoError(t, password.ComparePassword(u.PasswordHash(), "password123"))

		claims, err := jwtService.ValidateToken(result.TokenPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, result.UserID, claims.UserID)
		assert.Equal(t, "owner", claims.Role)
	})

	t.Run("register defaults to client", func(t *testing.T) {
		store, cmds := setup(t)

		result, err := cmds.Register(ctx, reqdto.RegisterRequest{Email: "c@example.com", Password: "password123", DisplayName: "C"})
		require.NoError(t, err)
		assert.Equal(t, user.RoleClient, store.User(result.UserID).Role())
	})

	t.Run("register with taken email NG", func(t *testing.T) {
		store, cmds := setup(t)
		seedUser(t, store, builder.NewUserBuilder().WithEmail("taken@example.com"))

		_, err := cmds.Register(ctx, reqdto.RegisterRequest{Email: "taken@example.com", Password: "password123", DisplayName: "T"})
		assert.ErrorIs(t, err, commands.ErrEmailTaken)
	})

	t.Run("login records last login", func(t *testing.T) {
		store, cmds := setup(t)
		u := seedUser(t, store, builder.NewUserBuilder().WithEmail("login@example.com"))

		result, err := cmds.Login(ctx, reqdto.LoginRequest{Email: "login@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, u.ID(), result.UserID)
		require.NotNil(t, store.User(u.ID()).LastLogin())
		assert.Equal(t, builder.ReferenceNow, *store.User(u.ID()).LastLogin())
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		store, cmds := setup(t)
		seedUser(t, store, builder.NewUserBuilder().WithEmail("login@example.com"))

		_, err := cmds.Login(ctx, reqdto.LoginRequest{Email: "login@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)

		_, err = cmds.Login(ctx, reqdto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("inactive user NG", func(t *testing.T) {
		store, cmds := setup(t)
		u := seedUser(t, store, builder.NewUserBuilder().WithEmail("gone@example.com"))
		store.PutUser(user.ReconstructUser(u.ID(), u.Email(), u.DisplayName(), u.PasswordHash(), u.Role(), nil, false, u.CreatedAt(), u.UpdatedAt()))

		token, err := jwtService.GenerateRefreshToken(u.ID(), u.Role())
		require.NoError(t, err)
		_, err = cmds.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, commands.ErrUserInactive)
	})

	t.Run("refresh reads the role from storage", func(t *testing.T) {
		store, cmds := setup(t)
		u := seedUser(t, store, builder.NewUserBuilder().WithRole("owner"))

		// token minted while the user was still a client
		token, err := jwtService.GenerateRefreshToken(u.ID(), user.RoleClient)
		require.NoError(t, err)

		pair, err := cmds.RefreshToken(ctx, token)
		require.NoError(t, err)
		claims, err := jwtService.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "owner", claims.Role)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		store, cmds := setup(t)
		u := seedUser(t, store, builder.NewUserBuilder())

		token, err := jwtService.GenerateAccessToken(u.ID(), u.Role())
		require.NoError(t, err)
		_, err = cmds.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("refresh for deleted user NG", func(t *testing.T) {
		_, cmds := setup(t)
		token, err := jwtService.GenerateRefreshToken(uuid.New(), user.RoleClient)
		require.NoError(t, err)

		_, err = cmds.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("garbage token NG", func(t *testing.T) {
		_, cmds := setup(t)
		_, err := cmds.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})
}
