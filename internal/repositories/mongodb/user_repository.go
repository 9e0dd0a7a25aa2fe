package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection(usersCollection),
	}
}

// Create inserts a new user. Unique index violations surface as *repositories.DuplicateKeyError.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, user)
	return translateError(usersCollection, err)
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByMobile finds a user by mobile number
func (r *UserRepository) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"mobile": mobile})
}

// FindByMobileOrEmail finds a user by mobile, or by email when one is supplied
func (r *UserRepository) FindByMobileOrEmail(ctx context.Context, mobile, email string) (*models.User, error) {
	clauses := bson.A{bson.M{"mobile": mobile}}
	if email != "" {
		clauses = append(clauses, bson.M{"email": email})
	}
	return r.findOne(ctx, bson.M{"$or": clauses})
}

// FindByIDs loads every user whose ID is in ids
func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	users := []*models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateError(usersCollection, err)
	}
	return &user, nil
}
