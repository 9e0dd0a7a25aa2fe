package services

import (
	"context"
	"errors"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/razorpay"
	log "github.com/sirupsen/logrus"
)

// OrderGateway creates payment orders
type OrderGateway interface {
	Configured() bool
	Receipt(ticketNumber int) string
	CreateOrder(amount float64, receipt string) (*razorpay.Order, error)
}

// PaymentService creates gateway orders for ticket purchases
type PaymentService struct {
	gateway OrderGateway
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(gateway OrderGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreateOrder validates the purchase intent and opens a captured order for it.
func (s *PaymentService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*razorpay.Order, error) {
	if req == nil || req.Amount <= 0 {
		return nil, apperrors.InvalidField("amount", "Amount must be greater than zero")
	}
	if req.UserData == nil {
		return nil, apperrors.InvalidField("userData", "User data is required")
	}
	if _, err := schemeFor(req.SchemeID, req.TicketNumber); err != nil {
		return nil, err
	}
	if !s.gateway.Configured() {
		return nil, apperrors.Config(apperrors.CodeGatewayUnconfigured, "Payment gateway is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Unexpected("request cancelled", err)
	}

	order, err := s.gateway.CreateOrder(req.Amount, s.gateway.Receipt(req.TicketNumber))
	if err != nil {
		if errors.Is(err, razorpay.ErrNotConfigured) {
			return nil, apperrors.Config(apperrors.CodeGatewayUnconfigured, "Payment gateway is not configured")
		}
		return nil, apperrors.Unexpected("Error creating order", err)
	}
	log.WithFields(log.Fields{
		"orderId":  order.ID,
		"schemeId": req.SchemeID,
		"amount":   order.Amount,
	}).Info("payment order created")
	return order, nil
}
