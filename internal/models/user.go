package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a ticket buyer. Mobile is unique; email and aadhaar are unique when present.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Aadhaar   string             `bson:"aadhaar,omitempty" json:"aadhaar,omitempty"`
	State     string             `bson:"state" json:"state"`
	Age       int                `bson:"age" json:"age"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Tickets is populated on read; tickets live in their own collection.
	Tickets []*Ticket `bson:"-" json:"tickets,omitempty"`
}
