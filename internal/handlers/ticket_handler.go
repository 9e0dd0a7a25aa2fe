package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PurchaseService is what the ticket handler needs from the purchase service
type PurchaseService interface {
	Reserve(ctx context.Context, schemeID string, index int) (*services.ReserveResult, error)
	SoldIndices(ctx context.Context, schemeID string) ([]int, error)
	VerifyAndIssue(ctx context.Context, req services.IssueRequest) (*services.IssueResult, error)
	TicketsByMobile(ctx context.Context, mobile string) (*models.User, error)
}

// TicketHandler serves the public purchase and lookup endpoints
type TicketHandler struct {
	purchases PurchaseService
	errors    ErrorRenderer
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(purchases PurchaseService, errors ErrorRenderer) *TicketHandler {
	return &TicketHandler{
		purchases: purchases,
		errors:    errors,
	}
}

// CheckTicket handles POST /api/tickets/check
func (h *TicketHandler) CheckTicket(c *gin.Context) {
	var req models.CheckTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Scheme ID and ticket number are required")
		return
	}

	res, err := h.purchases.Reserve(c.Request.Context(), req.SchemeID, req.TicketNumber)
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	if res.Status == services.ReserveConflict {
		c.JSON(http.StatusConflict, gin.H{
			"message":      fmt.Sprintf("Ticket number %d has already been purchased for this scheme.", req.TicketNumber),
			"code":         apperrors.CodeDuplicateTicket,
			"ticketNumber": res.TicketNumber,
			"isDuplicate":  true,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "ticketNumber": res.TicketNumber})
}

// PurchasedTickets handles GET /api/tickets/purchased-tickets/:schemeId
func (h *TicketHandler) PurchasedTickets(c *gin.Context) {
	indices, err := h.purchases.SoldIndices(c.Request.Context(), c.Param("schemeId"))
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchasedTickets": indices})
}

// VerifyPayment handles POST /api/verify-payment.
// The ticket image renders in the background, so the response carries no download link;
// it shows up on GET /api/user-tickets/:mobile once written.
func (h *TicketHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	res, err := h.purchases.VerifyAndIssue(c.Request.Context(), services.IssueRequestFromPayload(&req))
	if err != nil {
		h.errors.Render(c, err)
		return
	}

	switch res.Status {
	case services.IssueDuplicateTicket:
		c.JSON(http.StatusConflict, gin.H{
			"message":      fmt.Sprintf("Ticket number %d has already been purchased for this scheme.", req.TicketNumber),
			"code":         apperrors.CodeDuplicateTicket,
			"ticketNumber": res.TicketNumber,
			"isDuplicate":  true,
		})
	case services.IssueIdentityConflict:
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("A user with this %s already exists.", res.Field),
			"code":    apperrors.CodeIdentityConflict,
			"field":   res.Field,
		})
	default:
		c.JSON(http.StatusCreated, gin.H{
			"message":      "Ticket purchased successfully",
			"ticketNumber": res.TicketNumber,
			"userData":     res.User,
		})
	}
}

// UserTickets handles GET /api/user-tickets/:mobile
func (h *TicketHandler) UserTickets(c *gin.Context) {
	user, err := h.purchases.TicketsByMobile(c.Request.Context(), c.Param("mobile"))
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
