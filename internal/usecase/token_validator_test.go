//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"booking-platform/internal/domain/user"
	"booking-platform/internal/pkg/jwt"
	"booking-platform/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("secret", 15*time.Minute, time.Hour)
	validator := usecase.NewTokenValidator(svc)
	userID := uuid.New()

	access, err := svc.GenerateAccessToken(userID, user.RoleAdmin)
	require.NoError(t, err)
	id, role, err := validator.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, user.RoleAdmin, role)

	refresh, err := svc.GenerateRefreshToken(userID, user.RoleAdmin)
	require.NoError(t, err)
	_, _, err = validator.ValidateToken(refresh)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	other, err := jwt.NewService("other-secret", time.Minute, time.Hour).GenerateAccessToken(userID, user.RoleClient)
	require.NoError(t, err)
	_, _, err = validator.ValidateToken(other)
	assert.Error(t, err)
}
