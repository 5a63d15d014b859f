package models

// PaymentOrder is what a client needs to complete checkout.
type PaymentOrder struct {
	OrderID      string `json:"orderId"`
	ClientSecret string `json:"clientSecret,omitempty"`
	Amount       int64  `json:"amount"` // minor units
	Currency     string `json:"currency"`
	BookingID    string `json:"bookingId"`
}

// PaymentVerification is the client's claim that an order was paid.
type PaymentVerification struct {
	BookingID string `json:"bookingId" binding:"required"`
	OrderID   string `json:"orderId" binding:"required"`
}

// CreateOrderRequest is the payload for starting checkout on a booking.
type CreateOrderRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}
