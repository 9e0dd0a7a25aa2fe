package handlers

import (
	"context"
	"net/http"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/razorpay"
	"github.com/gin-gonic/gin"
)

// OrderService opens payment orders
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*razorpay.Order, error)
}

// PaymentHandler handles gateway order creation
type PaymentHandler struct {
	orders OrderService
	errors ErrorRenderer
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(orders OrderService, errors ErrorRenderer) *PaymentHandler {
	return &PaymentHandler{
		orders: orders,
		errors: errors,
	}
}

// CreateOrder handles POST /api/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.errors.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}
