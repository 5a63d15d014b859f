package models

import "time"

// PaymentStatus is the lifecycle state of a booking.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

// CanTransition reports whether s may move to next. Only pending moves.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	return s == PaymentPending && next.Terminal()
}

// ServiceSnapshot is the denormalized copy of a service taken at booking time.
type ServiceSnapshot struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Duration string  `bson:"duration" json:"duration"`
}

// Booking is a user's claim on one (date, slot) of a provider's service.
type Booking struct {
	ID            string          `bson:"id" json:"id"`
	UserID        string          `bson:"userId" json:"userId"`
	ProviderID    string          `bson:"providerId" json:"providerId"`
	Service       ServiceSnapshot `bson:"service" json:"service"`
	Date          string          `bson:"date" json:"date"`
	Slot          string          `bson:"slot" json:"slot"`
	PaymentStatus PaymentStatus   `bson:"paymentStatus" json:"paymentStatus"`
	PaymentRef    string          `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	HoldExpiresAt time.Time       `bson:"holdExpiresAt" json:"holdExpiresAt"`
	CreatedAt     time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	ServiceID  string `json:"serviceId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Slot       string `json:"slot" binding:"required"`
}
