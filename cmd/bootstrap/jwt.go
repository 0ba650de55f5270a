package bootstrap

import (
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(NewJWTService),
)

// NewJWTService signs both session tokens; a refresh token is never accepted
// where an access token is expected (see usecase.TokenValidator).
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration, cfg.JWT.RefreshTokenDuration)
}
