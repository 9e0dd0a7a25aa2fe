package models

// BuyerData identifies the person paying for a ticket
type BuyerData struct {
	FullName string `json:"fullName"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email,omitempty"`
	Aadhaar  string `json:"aadhaar,omitempty"`
	State    string `json:"state"`
	Age      int    `json:"age"`
}

// CheckTicketRequest asks whether a ticket index is still available in a scheme
type CheckTicketRequest struct {
	SchemeID     string `json:"schemeId"`
	TicketNumber int    `json:"ticketNumber"`
}

// CreateOrderRequest is the body of POST /api/create-order
type CreateOrderRequest struct {
	Amount       float64    `json:"amount"`
	TicketNumber int        `json:"ticketNumber"`
	SchemeID     string     `json:"schemeId"`
	UserData     *BuyerData `json:"userData"`
}

// VerifyPaymentRequest is the body of POST /api/verify-payment
type VerifyPaymentRequest struct {
	RazorpayOrderID   string     `json:"razorpay_order_id"`
	RazorpayPaymentID string     `json:"razorpay_payment_id"`
	RazorpaySignature string     `json:"razorpay_signature"`
	TicketNumber      int        `json:"ticketNumber"`
	SchemeID          string     `json:"schemeId"`
	Amount            float64    `json:"amount"`
	UserData          *BuyerData `json:"userData"`
}

// DeclareWinnerRequest is the body of POST /api/winners
type DeclareWinnerRequest struct {
	SchemeID     string `json:"schemeId"`
	TicketNumber string `json:"ticketNumber"`
	Prize        string `json:"prize"`
}
