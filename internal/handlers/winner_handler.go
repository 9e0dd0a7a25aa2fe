package handlers

import (
	"context"
	"net/http"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// WinnerService lists, declares and deletes winners
type WinnerService interface {
	ListWinners(ctx context.Context) ([]*models.Winner, error)
	DeclareWinner(ctx context.Context, req *models.DeclareWinnerRequest) (*models.Winner, error)
	DeleteWinner(ctx context.Context, winnerID string) error
}

// WinnerHandler serves the winners endpoints
type WinnerHandler struct {
	winners WinnerService
	errors  ErrorRenderer
}

// NewWinnerHandler creates a new WinnerHandler
func NewWinnerHandler(winners WinnerService, errors ErrorRenderer) *WinnerHandler {
	return &WinnerHandler{
		winners: winners,
		errors:  errors,
	}
}

// ListWinners handles GET /api/winners
func (h *WinnerHandler) ListWinners(c *gin.Context) {
	winners, err := h.winners.ListWinners(c.Request.Context())
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}

// DeclareWinner handles POST /api/winners
func (h *WinnerHandler) DeclareWinner(c *gin.Context) {
	var req models.DeclareWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Scheme ID, Ticket Number, and Prize are required")
		return
	}

	winner, err := h.winners.DeclareWinner(c.Request.Context(), &req)
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, winner)
}

// DeleteWinner handles DELETE /api/winners/:winnerId
func (h *WinnerHandler) DeleteWinner(c *gin.Context) {
	if err := h.winners.DeleteWinner(c.Request.Context(), c.Param("winnerId")); err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Winner deleted successfully"})
}
