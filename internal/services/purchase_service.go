package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/razorpay"
	log "github.com/sirupsen/logrus"
)

// ReserveStatus is the outcome of an availability check
type ReserveStatus string

const (
	ReserveAvailable ReserveStatus = "available"
	ReserveConflict  ReserveStatus = "conflict"
)

// ReserveResult reports whether a ticket code is still unsold.
// Availability is advisory: the unique index decides at issue time.
type ReserveResult struct {
	Status       ReserveStatus `json:"status"`
	TicketNumber string        `json:"ticketNumber"`
}

// IssueStatus is the outcome of a verified purchase
type IssueStatus string

const (
	IssueIssued           IssueStatus = "issued"
	IssueDuplicateTicket  IssueStatus = "duplicate_ticket"
	IssueIdentityConflict IssueStatus = "identity_conflict"
)

// IssueRequest carries a payment confirmation and the ticket it pays for
type IssueRequest struct {
	OrderID     string
	PaymentID   string
	Signature   string
	SchemeID    string
	TicketIndex int
	Amount      float64
	Buyer       *models.BuyerData
}

// IssueRequestFromPayload maps the verify-payment body onto an IssueRequest.
func IssueRequestFromPayload(req *models.VerifyPaymentRequest) IssueRequest {
	return IssueRequest{
		OrderID:     req.RazorpayOrderID,
		PaymentID:   req.RazorpayPaymentID,
		Signature:   req.RazorpaySignature,
		SchemeID:    req.SchemeID,
		TicketIndex: req.TicketNumber,
		Amount:      req.Amount,
		Buyer:       req.UserData,
	}
}

// IssueResult is the tagged result of VerifyAndIssue.
// Ticket and User are set for IssueIssued; Field names the clashing identity field for IssueIdentityConflict.
type IssueResult struct {
	Status       IssueStatus
	TicketNumber string
	Ticket       *models.Ticket
	User         *models.User
	Field        string
}

// ArtifactScheduler renders ticket images out of band
type ArtifactScheduler interface {
	Schedule(ticket *models.Ticket, user *models.User)
}

// PurchaseService checks availability and turns verified payments into tickets
type PurchaseService struct {
	userRepo   repositories.UserRepository
	ticketRepo repositories.TicketRepository
	keySecret  string
	artifacts  ArtifactScheduler
	now        func() time.Time
}

// NewPurchaseService creates a new PurchaseService. keySecret is the gateway secret used to check signatures.
func NewPurchaseService(userRepo repositories.UserRepository, ticketRepo repositories.TicketRepository, keySecret string, artifacts ArtifactScheduler) *PurchaseService {
	return &PurchaseService{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
		keySecret:  keySecret,
		artifacts:  artifacts,
		now:        time.Now,
	}
}

// Reserve reports whether the requested ticket is still available. No lock is taken.
func (s *PurchaseService) Reserve(ctx context.Context, schemeID string, index int) (*ReserveResult, error) {
	if _, err := schemeFor(schemeID, index); err != nil {
		return nil, err
	}
	code := FormatTicketCode(strings.TrimSpace(schemeID), index)

	_, err := s.ticketRepo.FindBySchemeAndNumber(ctx, strings.TrimSpace(schemeID), code)
	switch {
	case err == nil:
		return &ReserveResult{Status: ReserveConflict, TicketNumber: code}, nil
	case errors.Is(err, repositories.ErrNotFound):
		return &ReserveResult{Status: ReserveAvailable, TicketNumber: code}, nil
	default:
		return nil, apperrors.Unexpected("Server error", err)
	}
}

// SoldIndices lists the numeric indices already sold in a scheme, ascending.
func (s *PurchaseService) SoldIndices(ctx context.Context, schemeID string) ([]int, error) {
	schemeID = strings.TrimSpace(schemeID)
	if _, ok := LookupScheme(schemeID); !ok {
		return nil, apperrors.InvalidField("schemeId", "Unknown scheme")
	}
	tickets, err := s.ticketRepo.FindByScheme(ctx, schemeID)
	if err != nil {
		return nil, apperrors.Unexpected("Server error", err)
	}
	indices := make([]int, 0, len(tickets))
	for _, t := range tickets {
		if n, ok := ParseTicketIndex(t.TicketNumber); ok {
			indices = append(indices, n)
		}
	}
	sort.Ints(indices)
	return indices, nil
}

// VerifyAndIssue checks the payment signature and materializes the ticket.
// Conflicts come back as tagged results; errors are reserved for invalid input,
// failed verification, missing configuration and unexpected failures.
func (s *PurchaseService) VerifyAndIssue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	if s.keySecret == "" {
		return nil, apperrors.Config(apperrors.CodeGatewayUnconfigured, "Payment gateway secret is not configured")
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, apperrors.Validation("Payment confirmation fields are required")
	}
	schemeID := strings.TrimSpace(req.SchemeID)
	if _, err := schemeFor(schemeID, req.TicketIndex); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, apperrors.InvalidField("amount", "Amount must be greater than zero")
	}
	if err := normalizeBuyer(req.Buyer); err != nil {
		return nil, err
	}

	if !razorpay.VerifySignature(s.keySecret, req.OrderID, req.PaymentID, req.Signature) {
		log.WithField("orderId", req.OrderID).Warn("payment signature mismatch")
		return nil, apperrors.PaymentVerificationFailed
	}

	code := FormatTicketCode(schemeID, req.TicketIndex)
	if _, err := s.ticketRepo.FindBySchemeAndNumber(ctx, schemeID, code); err == nil {
		return &IssueResult{Status: IssueDuplicateTicket, TicketNumber: code}, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Unexpected("Server error", err)
	}

	user, field, err := s.resolveBuyer(ctx, req.Buyer)
	if err != nil {
		return nil, err
	}
	if field != "" {
		return &IssueResult{Status: IssueIdentityConflict, TicketNumber: code, Field: field}, nil
	}

	ticket := &models.Ticket{
		UserID:            user.ID,
		SchemeID:          schemeID,
		TicketNumber:      code,
		AmountPaid:        req.Amount,
		PurchaseDate:      s.now(),
		PaymentStatus:     models.PaymentStatusPaid,
		RazorpayOrderID:   req.OrderID,
		RazorpayPaymentID: req.PaymentID,
		RazorpaySignature: req.Signature,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		if _, ok := repositories.AsDuplicateKey(err); ok {
			return &IssueResult{Status: IssueDuplicateTicket, TicketNumber: code}, nil
		}
		return nil, apperrors.Unexpected("Server error", err)
	}

	log.WithFields(log.Fields{
		"ticketNumber": code,
		"schemeId":     schemeID,
		"userId":       user.ID.Hex(),
	}).Info("ticket issued")

	if s.artifacts != nil {
		s.artifacts.Schedule(ticket, user)
	}

	tickets, err := s.ticketRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		// The ticket is committed; the sibling list is only decoration.
		log.WithError(err).Warn("failed to load buyer tickets")
		tickets = []*models.Ticket{ticket}
	}
	user.Tickets = tickets

	return &IssueResult{Status: IssueIssued, TicketNumber: code, Ticket: ticket, User: user}, nil
}

// resolveBuyer finds the buyer by mobile or email, creating one when absent.
// A non-empty field means the buyer's identity clashes with another user.
func (s *PurchaseService) resolveBuyer(ctx context.Context, buyer *models.BuyerData) (*models.User, string, error) {
	user, err := s.userRepo.FindByMobileOrEmail(ctx, buyer.Mobile, buyer.Email)
	if err == nil {
		return user, "", nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", apperrors.Unexpected("Server error", err)
	}

	user = &models.User{
		FullName: buyer.FullName,
		Mobile:   buyer.Mobile,
		Email:    buyer.Email,
		Aadhaar:  buyer.Aadhaar,
		State:    buyer.State,
		Age:      buyer.Age,
	}
	err = s.userRepo.Create(ctx, user)
	if err == nil {
		return user, "", nil
	}
	dup, ok := repositories.AsDuplicateKey(err)
	if !ok {
		return nil, "", apperrors.Unexpected("Server error", err)
	}
	if dup.Field == "mobile" {
		// A concurrent purchase created the same buyer first.
		if existing, findErr := s.userRepo.FindByMobile(ctx, buyer.Mobile); findErr == nil {
			return existing, "", nil
		}
	}
	return nil, dup.Field, nil
}

// TicketsByMobile returns the buyer with all of their tickets.
func (s *PurchaseService) TicketsByMobile(ctx context.Context, mobile string) (*models.User, error) {
	mobile = strings.TrimSpace(mobile)
	if !ValidMobile(mobile) {
		return nil, apperrors.InvalidField("mobile", "Mobile number must be 10 digits")
	}
	user, err := s.userRepo.FindByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Unexpected("Server error", err)
	}
	tickets, err := s.ticketRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Unexpected("Server error", err)
	}
	if len(tickets) == 0 {
		return nil, apperrors.NotFound("No tickets found for this mobile number")
	}
	user.Tickets = tickets
	return user, nil
}
