package services

import (
	"context"
	"errors"
	"math"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TicketAdminService backs the admin ticket listing and deletion
type TicketAdminService struct {
	userRepo   repositories.UserRepository
	ticketRepo repositories.TicketRepository
}

// NewTicketAdminService creates a new TicketAdminService
func NewTicketAdminService(userRepo repositories.UserRepository, ticketRepo repositories.TicketRepository) *TicketAdminService {
	return &TicketAdminService{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
	}
}

// ListTickets returns one page of tickets, newest first, flattened with buyer details.
func (s *TicketAdminService) ListTickets(ctx context.Context, page, limit int) (*models.TicketPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	// The skip offset (page-1)*limit must fit in an int.
	if page-1 > math.MaxInt/limit {
		return nil, apperrors.InvalidField("page", "Page is out of range")
	}

	total, err := s.ticketRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Unexpected("Server error", err)
	}
	tickets, err := s.ticketRepo.FindPage(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Unexpected("Server error", err)
	}
	owners, err := loadOwners(ctx, s.userRepo, tickets)
	if err != nil {
		return nil, apperrors.Unexpected("Server error", err)
	}

	rows := make([]*models.TicketWithBuyer, 0, len(tickets))
	for _, t := range tickets {
		row := &models.TicketWithBuyer{Ticket: t}
		if u, ok := owners[t.UserID]; ok {
			row.FullName = u.FullName
			row.Mobile = u.Mobile
			row.Email = u.Email
			row.State = u.State
			row.Age = u.Age
			row.Aadhaar = u.Aadhaar
		}
		rows = append(rows, row)
	}

	return &models.TicketPage{
		Data:         rows,
		TotalPages:   int((total + int64(limit) - 1) / int64(limit)),
		TotalTickets: total,
	}, nil
}

// DeleteTicket removes a sold ticket.
func (s *TicketAdminService) DeleteTicket(ctx context.Context, ticketID string) error {
	id, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		return apperrors.InvalidField("ticketId", "Invalid ticket id")
	}
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Ticket not found")
		}
		return apperrors.Unexpected("Server error", err)
	}
	return nil
}

// loadOwners fetches the distinct owners of tickets keyed by user id.
func loadOwners(ctx context.Context, userRepo repositories.UserRepository, tickets []*models.Ticket) (map[primitive.ObjectID]*models.User, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(tickets))
	for _, t := range tickets {
		if !seen[t.UserID] {
			seen[t.UserID] = true
			ids = append(ids, t.UserID)
		}
	}
	owners := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return owners, nil
	}
	users, err := userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		owners[u.ID] = u
	}
	return owners, nil
}
