package models

import "time"

// Service is a listing a provider offers, with its own bookable availability.
type Service struct {
	ID           string              `bson:"id" json:"id"`
	ProviderID   string              `bson:"providerId" json:"providerId"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description" json:"description"`
	Price        float64             `bson:"price" json:"price"`
	Duration     string              `bson:"duration" json:"duration"`
	Availability []AvailabilityEntry `bson:"availability" json:"availability"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Snapshot captures the fields a booking keeps of the service at booking time.
func (s Service) Snapshot() ServiceSnapshot {
	return ServiceSnapshot{
		ID:       s.ID,
		Name:     s.Name,
		Price:    s.Price,
		Duration: s.Duration,
	}
}

// ServiceInput is the payload for adding or editing a service.
// Zero-valued fields are left untouched on edit.
type ServiceInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	Duration     string              `json:"duration"`
	Availability []AvailabilityEntry `json:"availability"`
}
