package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/user"
	"booking-platform/internal/handler/httperr"
	"booking-platform/internal/pkg/cookie"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

type AuthMiddleware struct {
	validator usecase.TokenValidator
}

func NewAuthMiddleware(validator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// bearerToken prefers the access cookie set at login, then an
// "Authorization: Bearer" header. The scheme is matched case-insensitively.
func bearerToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// authenticate resolves the caller. ok is false when no token was sent.
func (m *AuthMiddleware) authenticate(c *gin.Context) (ok bool, err error) {
	token := bearerToken(c)
	if token == "" {
		return false, nil
	}
	id, role, err := m.validator.ValidateToken(token)
	if err != nil {
		return true, err
	}
	setIdentity(c, id, role)
	return true, nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sent, err := m.authenticate(c)
		switch {
		case !sent:
			deny(c, http.StatusUnauthorized, errs.CodeUnauthorized, "Access token required")
		case err != nil:
			slog.Warn("access token rejected", "path", c.FullPath(), "error", err.Error())
			deny(c, http.StatusUnauthorized, errs.CodeUnauthorized, "Invalid or expired token")
		default:
			c.Next()
		}
	}
}

// OptionalAuth lets guests through anonymously. A bad token is treated as no
// token rather than an error.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := m.authenticate(c); err != nil {
			slog.Debug("ignoring invalid token on optional auth route", "error", err.Error())
		}
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(floor user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			deny(c, http.StatusInternalServerError, errs.CodeInternal, "Internal server error")
			return
		}
		if !role.AtLeast(floor) {
			deny(c, http.StatusForbidden, errs.CodeForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context, status int, code errs.Code, msg string) {
	resp := httperr.Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	c.AbortWithStatusJSON(status, resp)
}

func setIdentity(c *gin.Context, userID uuid.UUID, role user.Role) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxUserRoleKey, role)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	v, ok := c.Get(ctxUserRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}

// GetActor returns the authenticated caller, or the anonymous actor for guests.
func GetActor(c *gin.Context) reservation.Actor {
	id, ok := GetUserID(c)
	if !ok {
		return reservation.Actor{}
	}
	role, _ := GetUserRole(c)
	return reservation.NewActor(id, role)
}
