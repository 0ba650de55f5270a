//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"booking-platform/internal/handler/dto/request"
	"booking-platform/tests/common/dbtest"
	"booking-platform/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
)

// Session holds what a browser would keep after logging in.
type Session struct {
	AccessToken string
	Cookies     []*http.Cookie
}

func Login(t *testing.T, router *gin.Engine, email, password string) Session {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, loginPath,
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	access := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, access, "access_token cookie missing")
	require.NotEmpty(t, access.Value)

	return Session{AccessToken: access.Value, Cookies: httptest.ExtractCookies(w)}
}

// LoginUser returns only the access token, for bearer-style requests.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	return Login(t, router, email, password).AccessToken
}

// CreateAndLogin inserts a user with dbtest.TestPasswordHash and logs them in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return LoginUser(t, router, email, "password123")
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, logoutPath, nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
