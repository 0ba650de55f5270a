//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"booking-platform/internal/domain/user"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens signed with the server's secret without going
// through the login endpoint.
type JWTHelper struct {
	cfg     config.JWTConfig
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{
		cfg:     cfg,
		service: jwt.NewService(cfg.Secret, cfg.AccessTokenDuration, cfg.RefreshTokenDuration),
	}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken returns an access token whose exp lies a minute in the past.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	expired := jwt.NewService(h.cfg.Secret, -time.Minute, h.cfg.RefreshTokenDuration)
	token, err := expired.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

// GenerateRefreshToken is used to prove refresh tokens are refused as bearer credentials.
func (h *JWTHelper) GenerateRefreshToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateRefreshToken(userID, role)
	require.NoError(t, err)
	return token
}
