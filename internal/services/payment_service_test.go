package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/razorpay"
)

type fakeGateway struct {
	configured bool
	err        error
	amount     float64
	receipt    string
}

func (f *fakeGateway) Configured() bool { return f.configured }

func (f *fakeGateway) Receipt(n int) string { return "ticket_receipt" }

func (f *fakeGateway) CreateOrder(amount float64, receipt string) (*razorpay.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.amount, f.receipt = amount, receipt
	return &razorpay.Order{ID: "order_1", Amount: razorpay.ToMinorUnits(amount), Currency: "INR", Receipt: receipt}, nil
}

func orderRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{Amount: 100, TicketNumber: 1, SchemeID: "1", UserData: buyer("9876543210")}
}

func TestCreateOrder(t *testing.T) {
	gw := &fakeGateway{configured: true}
	order, err := NewPaymentService(gw).CreateOrder(context.Background(), orderRequest())
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Amount != 10000 || gw.receipt != "ticket_receipt" {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestCreateOrderErrors(t *testing.T) {
	noAmount := orderRequest()
	noAmount.Amount = 0
	noBuyer := orderRequest()
	noBuyer.UserData = nil

	cases := []struct {
		name string
		gw   *fakeGateway
		req  *models.CreateOrderRequest
		kind apperrors.Kind
	}{
		{"zero amount", &fakeGateway{configured: true}, noAmount, apperrors.KindValidation},
		{"missing buyer", &fakeGateway{configured: true}, noBuyer, apperrors.KindValidation},
		{"unconfigured", &fakeGateway{}, orderRequest(), apperrors.KindConfig},
		{"gateway failure", &fakeGateway{configured: true, err: errors.New("timeout")}, orderRequest(), apperrors.KindUnexpected},
	}
	for _, tc := range cases {
		if _, err := NewPaymentService(tc.gw).CreateOrder(context.Background(), tc.req); apperrors.KindOf(err) != tc.kind {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.kind, err)
		}
	}
}
