package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector-be/internal/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(jwtService *jwt.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey)})
	})
	return router
}

func TestAuthRequiredMissingToken(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(jwt.NewJWTService("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token")
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(jwt.NewJWTService("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is not valid")
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	t.Parallel()

	expired := jwt.NewJWTService("secret", -time.Minute)
	token, err := expired.GenerateToken("user-1")
	require.NoError(t, err)

	router := newAuthRouter(jwt.NewJWTService("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAttachesIdentity(t *testing.T) {
	t.Parallel()

	jwtService := jwt.NewJWTService("secret", time.Hour)
	token, err := jwtService.GenerateToken("user-42")
	require.NoError(t, err)

	router := newAuthRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
}
