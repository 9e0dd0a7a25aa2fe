package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminCredentials is the body of admin signup and login requests
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful admin login
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// AdminUser is an operator account. Username is stored lower-cased and is unique.
type AdminUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
