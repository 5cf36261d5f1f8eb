package handlers

import (
	"net/http"
	"time"

	"concierge/config"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const staffTokenTTL = 12 * time.Hour

// StaffHandler serves staff dashboard authentication.
type StaffHandler struct {
	Logger *zap.Logger
}

// NewStaffHandler returns a StaffHandler.
func NewStaffHandler(logger *zap.Logger) *StaffHandler {
	return &StaffHandler{Logger: logger}
}

// Login handles POST /api/staff/login. The dashboard shares one password,
// stored as a bcrypt hash in configuration.
func (h *StaffHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	hash := config.AppConfig.StaffPasswordHash
	if hash == "" {
		h.Logger.Error("staff login attempted but STAFF_PASSWORD_HASH is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "staff login is not configured"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	claims := jwt.MapClaims{
		"role": "staff",
		"exp":  time.Now().Add(staffTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		h.Logger.Error("failed to sign staff token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}
