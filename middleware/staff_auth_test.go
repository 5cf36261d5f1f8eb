package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concierge/config"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", StaffAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)
	return signed
}

func TestStaffAuthRejectsMissingToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := guardedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffAuthAcceptsBearerToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := guardedRouter()

	token := signToken(t, jwt.MapClaims{
		"role": "staff",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffAuthAcceptsQueryToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := guardedRouter()

	token := signToken(t, jwt.MapClaims{
		"role": "staff",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded?token="+token, nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffAuthRejectsWrongRole(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := guardedRouter()

	token := signToken(t, jwt.MapClaims{
		"role": "guest",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffAuthRejectsExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := guardedRouter()

	token := signToken(t, jwt.MapClaims{
		"role": "staff",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
