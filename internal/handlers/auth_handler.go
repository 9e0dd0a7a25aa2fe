package handlers

import (
	"context"
	"net/http"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// AdminAuthService is what the auth handler needs from the auth service
type AdminAuthService interface {
	Signup(ctx context.Context, creds *models.AdminCredentials) (*models.AdminUser, error)
	Login(ctx context.Context, creds *models.AdminCredentials) (*models.LoginResponse, error)
}

// AuthHandler handles admin signup and login
type AuthHandler struct {
	authService AdminAuthService
	errors      ErrorRenderer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AdminAuthService, errors ErrorRenderer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		errors:      errors,
	}
}

// Signup handles POST /api/admin/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.AdminCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "All fields required")
		return
	}

	if _, err := h.authService.Signup(c.Request.Context(), &req); err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin created successfully"})
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.AdminCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "All fields required")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
