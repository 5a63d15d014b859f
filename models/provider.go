package models

import "time"

// Provider is a service provider's public profile. Availability is the
// per-date union of the open slots of all of the provider's services.
type Provider struct {
	ID             string              `bson:"id" json:"id"`
	UserID         string              `bson:"userId" json:"userId"`
	Name           string              `bson:"name" json:"name"`
	Service        string              `bson:"service" json:"service"` // category, e.g. "Plumbing"
	Location       string              `bson:"location" json:"location"`
	Rating         float64             `bson:"rating" json:"rating"`
	Reviews        []string            `bson:"reviews" json:"reviews"`
	Services       []string            `bson:"services" json:"services"`
	Certifications []string            `bson:"certifications" json:"certifications"`
	Availability   []AvailabilityEntry `bson:"availability" json:"availability"`
	Photo          string              `bson:"photo,omitempty" json:"photo,omitempty"`
	FCMToken       string              `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ProviderProfileInput is the payload for creating or updating the caller's profile.
type ProviderProfileInput struct {
	Name           string   `json:"name"`
	Service        string   `json:"service"`
	Location       string   `json:"location"`
	Certifications []string `json:"certifications"`
}

// ProviderSearch filters the public provider listing.
type ProviderSearch struct {
	Query    string `form:"query"`
	Location string `form:"location"`
}
