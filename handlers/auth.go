package handlers

import (
	"net/http"
	"strings"

	"github.com/theaitel/loginaitel-sub003/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes OTP and password login endpoints.
type AuthHandler struct {
	Svc auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// RequestOTP sends a login code to the given phone. The response is the same
// whether or not the phone is registered.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Svc.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		logger.Error("OTP request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send login code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the phone is registered, a code has been sent"})
}

// VerifyOTP checks the login code and returns a session token.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Phone string `json:"phone" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.Svc.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		logger.Warn("OTP verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// AdminLogin authenticates a platform operator with email and password.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.Svc.AdminLogin(req.Email, req.Password)
	if err != nil {
		logger.Warn("admin login failed", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// Logout revokes the current session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No token supplied"})
		return
	}
	if err := h.Svc.Logout(token); err != nil {
		getLogger(c).Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
