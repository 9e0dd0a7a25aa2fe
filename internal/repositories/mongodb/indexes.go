package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection   = "users"
	ticketsCollection = "tickets"
	winnersCollection = "winners"
	adminsCollection  = "admin_users"

	userMobileIndex         = "mobile_unique"
	userEmailIndex          = "email_unique"
	userAadhaarIndex        = "aadhaar_unique"
	ticketSchemeNumberIndex = "scheme_ticket_unique"
	winnerSchemeNumberIndex = "winner_scheme_ticket_unique"
	adminUsernameIndex      = "username_unique"
)

// EnsureIndexes creates the unique indexes that arbitrate concurrent writes.
// It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: options.Index().SetName(userMobileIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName(userEmailIndex).SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "aadhaar", Value: 1}}, Options: options.Index().SetName(userAadhaarIndex).SetUnique(true).SetSparse(true)},
		},
		ticketsCollection: {
			{Keys: bson.D{{Key: "schemeId", Value: 1}, {Key: "ticketNumber", Value: 1}}, Options: options.Index().SetName(ticketSchemeNumberIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "purchaseDate", Value: -1}}},
		},
		winnersCollection: {
			{Keys: bson.D{{Key: "schemeId", Value: 1}, {Key: "ticketNumber", Value: 1}}, Options: options.Index().SetName(winnerSchemeNumberIndex).SetUnique(true)},
		},
		adminsCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName(adminUsernameIndex).SetUnique(true)},
		},
	}
	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
