package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup matches no record
var ErrNotFound = errors.New("record not found")

// DuplicateKeyError is returned when a write violates a unique index.
// Field names the logical field behind the index (mobile, email, aadhaar, ticketNumber, username).
type DuplicateKeyError struct {
	Collection string
	Field      string
	Err        error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s in %s", e.Field, e.Collection)
}

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// AsDuplicateKey extracts a *DuplicateKeyError from err.
func AsDuplicateKey(err error) (*DuplicateKeyError, bool) {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}

// UserRepository defines the interface for buyer data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)
	// FindByMobileOrEmail matches on mobile, or on email when email is not empty.
	FindByMobileOrEmail(ctx context.Context, mobile, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error)
}

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	// Create fails with *DuplicateKeyError when (schemeId, ticketNumber) is taken.
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	FindBySchemeAndNumber(ctx context.Context, schemeID, ticketNumber string) (*models.Ticket, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Ticket, error)
	// FindByScheme returns tickets newest first; an empty schemeID matches every scheme.
	FindByScheme(ctx context.Context, schemeID string) ([]*models.Ticket, error)
	FindPage(ctx context.Context, page, limit int) ([]*models.Ticket, error)
	Count(ctx context.Context) (int64, error)
	SetDownloadLink(ctx context.Context, id primitive.ObjectID, link string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	// Create fails with *DuplicateKeyError when the ticket is already a winner.
	Create(ctx context.Context, winner *models.Winner) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error)
	FindBySchemeAndNumber(ctx context.Context, schemeID, ticketNumber string) (*models.Winner, error)
	// FindAll returns winners ordered by scheme then prize.
	FindAll(ctx context.Context) ([]*models.Winner, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	FindAll(ctx context.Context) ([]*models.AdminUser, error)
}
