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

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) repositories.WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection(winnersCollection),
	}
}

// Create creates a new winner
func (r *WinnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	winner.ID = primitive.NewObjectID()
	winner.CreatedAt = time.Now()
	winner.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, winner)
	return translateError(winnersCollection, err)
}

// FindByID finds a winner by ID
func (r *WinnerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Winner, error) {
	var winner models.Winner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&winner)
	if err != nil {
		return nil, translateError(winnersCollection, err)
	}
	return &winner, nil
}

// FindBySchemeAndNumber finds the winner declared for a ticket code
func (r *WinnerRepository) FindBySchemeAndNumber(ctx context.Context, schemeID, ticketNumber string) (*models.Winner, error) {
	var winner models.Winner
	err := r.collection.FindOne(ctx, bson.M{"schemeId": schemeID, "ticketNumber": ticketNumber}).Decode(&winner)
	if err != nil {
		return nil, translateError(winnersCollection, err)
	}
	return &winner, nil
}

// FindAll returns every winner ordered by scheme then prize
func (r *WinnerRepository) FindAll(ctx context.Context) ([]*models.Winner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "schemeId", Value: 1}, {Key: "prize", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	winners := []*models.Winner{}
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// Delete deletes a winner
func (r *WinnerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
