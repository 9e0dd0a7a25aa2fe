package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinnerService handles winner declaration and listing
type WinnerService struct {
	winnerRepo repositories.WinnerRepository
	ticketRepo repositories.TicketRepository
	userRepo   repositories.UserRepository
}

// NewWinnerService creates a new WinnerService
func NewWinnerService(winnerRepo repositories.WinnerRepository, ticketRepo repositories.TicketRepository, userRepo repositories.UserRepository) *WinnerService {
	return &WinnerService{
		winnerRepo: winnerRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

// ListWinners returns every winner ordered by scheme then prize, with owner name and state.
func (s *WinnerService) ListWinners(ctx context.Context) ([]*models.Winner, error) {
	winners, err := s.winnerRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Unexpected("Server error", err)
	}
	if err := s.attachOwners(ctx, winners); err != nil {
		return nil, apperrors.Unexpected("Server error", err)
	}
	return winners, nil
}

// DeclareWinner records a prize against a sold ticket.
func (s *WinnerService) DeclareWinner(ctx context.Context, req *models.DeclareWinnerRequest) (*models.Winner, error) {
	if req == nil {
		return nil, apperrors.Validation("Scheme ID, Ticket Number, and Prize are required")
	}
	schemeID := strings.TrimSpace(req.SchemeID)
	code := strings.ToUpper(strings.TrimSpace(req.TicketNumber))
	prize := strings.TrimSpace(req.Prize)
	if schemeID == "" || code == "" || prize == "" {
		return nil, apperrors.Validation("Scheme ID, Ticket Number, and Prize are required")
	}
	if _, ok := LookupScheme(schemeID); !ok {
		return nil, apperrors.InvalidField("schemeId", "Unknown scheme")
	}

	ticket, err := s.ticketRepo.FindBySchemeAndNumber(ctx, schemeID, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Ticket not found or not sold")
		}
		return nil, apperrors.Unexpected("Server error", err)
	}

	if _, err := s.winnerRepo.FindBySchemeAndNumber(ctx, schemeID, code); err == nil {
		return nil, duplicateWinner()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Unexpected("Server error", err)
	}

	userID := ticket.UserID
	winner := &models.Winner{
		SchemeID:     schemeID,
		TicketNumber: code,
		Prize:        prize,
		UserID:       &userID,
	}
	if err := s.winnerRepo.Create(ctx, winner); err != nil {
		if _, ok := repositories.AsDuplicateKey(err); ok {
			return nil, duplicateWinner()
		}
		return nil, apperrors.Unexpected("Server error", err)
	}
	if err := s.attachOwners(ctx, []*models.Winner{winner}); err != nil {
		log.WithError(err).Warn("failed to load winner owner")
	}

	log.WithFields(log.Fields{"schemeId": schemeID, "ticketNumber": code, "prize": prize}).Info("winner declared")
	return winner, nil
}

// DeleteWinner removes a winner record
func (s *WinnerService) DeleteWinner(ctx context.Context, winnerID string) error {
	id, err := primitive.ObjectIDFromHex(winnerID)
	if err != nil {
		return apperrors.InvalidField("winnerId", "Invalid winner id")
	}
	if err := s.winnerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Winner not found")
		}
		return apperrors.Unexpected("Server error", err)
	}
	return nil
}

func duplicateWinner() error {
	return apperrors.Conflict(apperrors.CodeDuplicateWinner, "ticketNumber", "This ticket has already been declared a winner")
}

func (s *WinnerService) attachOwners(ctx context.Context, winners []*models.Winner) error {
	ids := make([]primitive.ObjectID, 0, len(winners))
	for _, w := range winners {
		if w.UserID != nil {
			ids = append(ids, *w.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, w := range winners {
		if w.UserID == nil {
			continue
		}
		if u, ok := byID[*w.UserID]; ok {
			w.User = &models.WinnerOwner{FullName: u.FullName, State: u.State}
		}
	}
	return nil
}
