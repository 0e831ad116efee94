package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ironlog/workout-app/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// === DTOs ===

type TokenRequest struct {
	ClientKey string `json:"clientKey" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// === Handlers ===

// Token handles POST /auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	token, err := h.authService.IssueToken(req.ClientKey)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid client key"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
