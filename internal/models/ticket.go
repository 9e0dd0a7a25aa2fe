package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus of a ticket
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// Ticket is a sold lottery ticket. (SchemeID, TicketNumber) is globally unique.
type Ticket struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	SchemeID          string             `bson:"schemeId" json:"schemeId"`
	TicketNumber      string             `bson:"ticketNumber" json:"ticketNumber"`
	AmountPaid        float64            `bson:"amountPaid" json:"amountPaid"`
	PurchaseDate      time.Time          `bson:"purchaseDate" json:"purchaseDate"`
	PaymentStatus     PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	RazorpayOrderID   string             `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string             `bson:"razorpayPaymentId" json:"razorpayPaymentId"`
	RazorpaySignature string             `bson:"razorpaySignature" json:"-"`
	DownloadLink      string             `bson:"downloadLink,omitempty" json:"downloadLink,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasArtifact reports whether the rendered ticket image has been backfilled.
func (t *Ticket) HasArtifact() bool {
	return t.DownloadLink != ""
}

// TicketWithBuyer is the admin listing row: a ticket flattened with its owner's details.
type TicketWithBuyer struct {
	*Ticket
	FullName string `json:"fullName"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email,omitempty"`
	State    string `json:"state"`
	Age      int    `json:"age"`
	Aadhaar  string `json:"aadhaar,omitempty"`
}

// TicketPage is one page of the admin ticket listing.
type TicketPage struct {
	Data         []*TicketWithBuyer `json:"data"`
	TotalPages   int                `json:"totalPages"`
	TotalTickets int64              `json:"totalTickets"`
}
