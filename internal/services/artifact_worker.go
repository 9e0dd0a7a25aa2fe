package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/ticketart"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RenderFunc turns a ticket card into PNG bytes
type RenderFunc func(card ticketart.Card) ([]byte, error)

// ArtifactWorker renders ticket images in the background and backfills their download links.
// A failed render leaves the ticket without a link; Rerender can regenerate it.
type ArtifactWorker struct {
	userRepo   repositories.UserRepository
	ticketRepo repositories.TicketRepository
	dir        string
	urlPrefix  string
	timeout    time.Duration
	render     RenderFunc
	wg         sync.WaitGroup
}

// NewArtifactWorker creates a worker writing into dir and linking under urlPrefix.
func NewArtifactWorker(userRepo repositories.UserRepository, ticketRepo repositories.TicketRepository, dir, urlPrefix string, timeout time.Duration) *ArtifactWorker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ArtifactWorker{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
		dir:        dir,
		urlPrefix:  "/" + strings.Trim(urlPrefix, "/"),
		timeout:    timeout,
		render:     ticketart.Render,
	}
}

// WithRenderer swaps the renderer
func (w *ArtifactWorker) WithRenderer(render RenderFunc) *ArtifactWorker {
	w.render = render
	return w
}

// Schedule renders the ticket image in a new goroutine.
func (w *ArtifactWorker) Schedule(ticket *models.Ticket, user *models.User) {
	t := *ticket
	u := *user
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()
		if _, err := w.renderAndStore(ctx, &t, &u); err != nil {
			log.WithError(err).WithField("ticketId", t.ID.Hex()).Error("ticket artifact generation failed")
		}
	}()
}

// Wait blocks until every scheduled render has finished.
func (w *ArtifactWorker) Wait() {
	w.wg.Wait()
}

// Rerender regenerates the image for a ticket synchronously and returns the updated ticket.
func (w *ArtifactWorker) Rerender(ctx context.Context, ticketID string) (*models.Ticket, error) {
	id, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		return nil, apperrors.InvalidField("ticketId", "Invalid ticket id")
	}
	ticket, err := w.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Ticket not found")
		}
		return nil, apperrors.Unexpected("Server error", err)
	}
	user, err := w.userRepo.FindByID(ctx, ticket.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("Ticket owner not found")
		}
		return nil, apperrors.Unexpected("Server error", err)
	}

	link, err := w.renderAndStore(ctx, ticket, user)
	if err != nil {
		return nil, apperrors.Unexpected("failed to render ticket", err)
	}
	ticket.DownloadLink = link
	return ticket, nil
}

// FileName is the on-disk name of a ticket's image.
func FileName(ticketID primitive.ObjectID) string {
	return fmt.Sprintf("ticket_%s.png", ticketID.Hex())
}

func (w *ArtifactWorker) renderAndStore(ctx context.Context, ticket *models.Ticket, user *models.User) (string, error) {
	data, err := w.render(ticketart.Card{
		TicketID:     ticket.ID.Hex(),
		TicketNumber: ticket.TicketNumber,
		SchemeID:     ticket.SchemeID,
		FullName:     user.FullName,
		Mobile:       user.Mobile,
		State:        user.State,
		AmountPaid:   ticket.AmountPaid,
		PaymentID:    ticket.RazorpayPaymentID,
		PurchaseDate: ticket.PurchaseDate,
	})
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	name := FileName(ticket.ID)
	tmp := filepath.Join(w.dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(w.dir, name)); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("move artifact: %w", err)
	}

	link := path.Join(w.urlPrefix, name)
	if err := w.ticketRepo.SetDownloadLink(ctx, ticket.ID, link); err != nil {
		return "", fmt.Errorf("backfill download link: %w", err)
	}
	return link, nil
}
