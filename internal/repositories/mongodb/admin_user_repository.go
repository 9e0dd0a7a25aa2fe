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

// Ensure adminUserRepository implements repositories.AdminUserRepository
var _ repositories.AdminUserRepository = (*adminUserRepository)(nil)

type adminUserRepository struct {
	collection *mongo.Collection
}

// NewAdminUserRepository creates a new repository for admin users
func NewAdminUserRepository(db *mongo.Database) repositories.AdminUserRepository {
	return &adminUserRepository{
		collection: db.Collection(adminsCollection), // Use a dedicated collection for admins
	}
}

// Create inserts a new admin user into the database
func (r *adminUserRepository) Create(ctx context.Context, adminUser *models.AdminUser) error {
	adminUser.ID = primitive.NewObjectID()
	now := time.Now()
	adminUser.CreatedAt = now
	adminUser.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, adminUser)
	return translateError(adminsCollection, err)
}

// FindByID finds an admin user by their ID
func (r *adminUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUsername finds an admin user by their (lower-cased) username
func (r *adminUserRepository) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// UpdatePassword replaces the stored password hash
func (r *adminUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	update := bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// FindAll lists admin accounts ordered by username
func (r *adminUserRepository) FindAll(ctx context.Context) ([]*models.AdminUser, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"username": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	admins := []*models.AdminUser{}
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminUserRepository) findOne(ctx context.Context, filter bson.M) (*models.AdminUser, error) {
	var adminUser models.AdminUser
	if err := r.collection.FindOne(ctx, filter).Decode(&adminUser); err != nil {
		return nil, translateError(adminsCollection, err)
	}
	return &adminUser, nil
}
