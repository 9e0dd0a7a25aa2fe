package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.TicketRepository = (*TicketRepository)(nil)

// TicketRepository handles MongoDB operations for Ticket
type TicketRepository struct {
	collection *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{
		collection: db.Collection(ticketsCollection),
	}
}

// Create inserts a ticket. The (schemeId, ticketNumber) unique index decides concurrent purchases.
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	ticket.ID = primitive.NewObjectID()
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	if ticket.PurchaseDate.IsZero() {
		ticket.PurchaseDate = now
	}
	_, err := r.collection.InsertOne(ctx, ticket)
	return translateError(ticketsCollection, err)
}

// FindByID finds a ticket by ID
func (r *TicketRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindBySchemeAndNumber finds the ticket holding a code within a scheme
func (r *TicketRepository) FindBySchemeAndNumber(ctx context.Context, schemeID, ticketNumber string) (*models.Ticket, error) {
	return r.findOne(ctx, bson.M{"schemeId": schemeID, "ticketNumber": ticketNumber})
}

// FindByUserID returns a buyer's tickets, newest first
func (r *TicketRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Ticket, error) {
	opts := options.Find().SetSort(bson.M{"purchaseDate": -1})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

// FindByScheme returns tickets of one scheme (or all when schemeID is empty), newest first
func (r *TicketRepository) FindByScheme(ctx context.Context, schemeID string) ([]*models.Ticket, error) {
	filter := bson.M{}
	if schemeID != "" {
		filter["schemeId"] = schemeID
	}
	opts := options.Find().SetSort(bson.M{"purchaseDate": -1})
	return r.find(ctx, filter, opts)
}

// FindPage returns one page of tickets, newest first
func (r *TicketRepository) FindPage(ctx context.Context, page, limit int) ([]*models.Ticket, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"purchaseDate": -1}) // Sort by purchase date descending
	return r.find(ctx, bson.M{}, opts)
}

// Count counts all tickets
func (r *TicketRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// SetDownloadLink backfills the artifact link once rendering succeeds
func (r *TicketRepository) SetDownloadLink(ctx context.Context, id primitive.ObjectID, link string) error {
	update := bson.M{"$set": bson.M{"downloadLink": link, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete removes a ticket
func (r *TicketRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) findOne(ctx context.Context, filter bson.M) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.collection.FindOne(ctx, filter).Decode(&ticket); err != nil {
		return nil, translateError(ticketsCollection, err)
	}
	return &ticket, nil
}

func (r *TicketRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Ticket, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tickets := []*models.Ticket{}
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}
