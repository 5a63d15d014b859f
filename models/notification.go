package models

import "time"

// BookingConfirmedEvent is published once a booking's payment is committed.
// It carries enough for downstream consumers to notify or log without
// querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    string    `json:"bookingId"`
	UserID       string    `json:"userId"`
	ProviderID   string    `json:"providerId"`
	ProviderName string    `json:"providerName"`
	ServiceID    string    `json:"serviceId"`
	ServiceName  string    `json:"serviceName"`
	Date         string    `json:"date"`
	Slot         string    `json:"slot"`
	Amount       float64   `json:"amount"`
	ConfirmedAt  time.Time `json:"confirmedAt"`
}

// ServiceChangedEvent describes a provider's catalogue change.
type ServiceChangedEvent struct {
	Action      string              `json:"action"` // added, updated, deleted
	ProviderID  string              `json:"providerId"`
	ServiceID   string              `json:"serviceId"`
	ServiceName string              `json:"serviceName"`
	Price       float64             `json:"price,omitempty"`
	Duration    string              `json:"duration,omitempty"`
	Entries     []AvailabilityEntry `json:"availability,omitempty"`
}

// ExpirePayload is the asynq payload for expiring a stale pending booking.
type ExpirePayload struct {
	BookingID string `json:"bookingId"`
}
