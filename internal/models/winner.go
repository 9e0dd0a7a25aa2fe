package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winner records a prize declared against a sold ticket. (SchemeID, TicketNumber) is unique.
type Winner struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	SchemeID     string              `bson:"schemeId" json:"schemeId"`
	TicketNumber string              `bson:"ticketNumber" json:"ticketNumber"`
	Prize        string              `bson:"prize" json:"prize"`
	UserID       *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`

	User *WinnerOwner `bson:"-" json:"user,omitempty"`
}

// WinnerOwner is the public subset of the owning user shown next to a winner.
type WinnerOwner struct {
	FullName string `json:"fullName"`
	State    string `json:"state"`
}
