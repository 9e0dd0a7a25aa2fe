package services

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/ticketart"
)

var exportHeader = []string{
	"fullName", "mobile", "state", "aadhaar", "ticketNumber",
	"schemeId", "amountPaid", "purchaseDate", "razorpayPaymentId",
}

const exportDateLayout = "02/01/2006, 15:04:05"

// ExportService writes sold tickets as CSV
type ExportService struct {
	userRepo   repositories.UserRepository
	ticketRepo repositories.TicketRepository
}

// NewExportService creates a new ExportService
func NewExportService(userRepo repositories.UserRepository, ticketRepo repositories.TicketRepository) *ExportService {
	return &ExportService{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
	}
}

// ExportFilename is the attachment name for an export of schemeID ("" or "all" for every scheme).
func ExportFilename(schemeID string) string {
	return "tickets-export-scheme-" + exportScope(schemeID) + ".csv"
}

func exportScope(schemeID string) string {
	schemeID = strings.TrimSpace(schemeID)
	if schemeID == "" || strings.EqualFold(schemeID, "all") {
		return "all"
	}
	return schemeID
}

// ExportTickets writes the tickets of one scheme, or all schemes, newest first.
// Nothing is written when there are no tickets; the caller gets a not-found error instead.
func (s *ExportService) ExportTickets(ctx context.Context, schemeID string, w io.Writer) error {
	filter := exportScope(schemeID)
	if filter == "all" {
		filter = ""
	}
	tickets, err := s.ticketRepo.FindByScheme(ctx, filter)
	if err != nil {
		return apperrors.Unexpected("Server error", err)
	}
	if len(tickets) == 0 {
		return apperrors.NotFound("No tickets found for the selected scheme")
	}
	owners, err := loadOwners(ctx, s.userRepo, tickets)
	if err != nil {
		return apperrors.Unexpected("Server error", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return apperrors.Unexpected("failed to write export", err)
	}
	for _, t := range tickets {
		var fullName, mobile, state, aadhaar string
		if u, ok := owners[t.UserID]; ok {
			fullName, mobile, state, aadhaar = u.FullName, u.Mobile, u.State, u.Aadhaar
		}
		record := []string{
			fullName,
			mobile,
			state,
			aadhaar,
			t.TicketNumber,
			t.SchemeID,
			strconv.FormatFloat(t.AmountPaid, 'f', -1, 64),
			t.PurchaseDate.In(ticketart.Location).Format(exportDateLayout),
			t.RazorpayPaymentID,
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Unexpected("failed to write export", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Unexpected("failed to write export", err)
	}
	return nil
}
