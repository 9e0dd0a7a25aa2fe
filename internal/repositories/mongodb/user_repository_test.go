package mongodb

import (
	"context"
	"testing"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepositoryDuplicateFields(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	cases := []struct {
		index string
		field string
	}{
		{userMobileIndex, "mobile"},
		{userEmailIndex, "email"},
		{userAadhaarIndex, "aadhaar"},
	}
	for _, tc := range cases {
		tc := tc
		mt.Run(tc.field, func(mt *mtest.T) {
			repo := NewUserRepository(mt.DB)
			mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: test.users index: " + tc.index + " dup key",
			}))

			err := repo.Create(context.Background(), &models.User{FullName: "A", Mobile: "9876543210"})
			dup, ok := repositories.AsDuplicateKey(err)
			if !ok {
				t.Fatalf("expected DuplicateKeyError, got %v", err)
			}
			if dup.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, dup.Field)
			}
		})
	}
}

func TestUserRepositoryFindByIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty input skips the query", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		users, err := repo.FindByIDs(context.Background(), nil)
		if err != nil || len(users) != 0 {
			t.Fatalf("expected no users and no error, got %v %v", users, err)
		}
	})

	mt.Run("decodes matching users", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "fullName", Value: "Asha Rao"},
			{Key: "mobile", Value: "9876543210"},
			{Key: "state", Value: "Kerala"},
			{Key: "age", Value: 34},
		}))

		users, err := repo.FindByIDs(context.Background(), []primitive.ObjectID{id})
		if err != nil {
			t.Fatalf("find by ids: %v", err)
		}
		if len(users) != 1 || users[0].FullName != "Asha Rao" || users[0].Age != 34 {
			t.Fatalf("unexpected users %+v", users)
		}
	})
}
