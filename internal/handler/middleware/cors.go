package middleware

import (
	"log/slog"
	"slices"

	"booking-platform/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware allows the configured origins. A "*" origin disables
// credentials because browsers reject that combination.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	wildcard := slices.Contains(cfg.AllowOrigins, "*")

	c := cors.DefaultConfig()
	c.AllowMethods = cfg.AllowMethods
	c.AllowHeaders = cfg.AllowHeaders
	c.ExposeHeaders = cfg.ExposeHeaders
	c.MaxAge = cfg.MaxAge
	if wildcard {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowOrigins
		c.AllowCredentials = cfg.AllowCredentials
	}

	slog.Info("cors configured", "origins", cfg.AllowOrigins, "credentials", c.AllowCredentials)
	return cors.New(c)
}
