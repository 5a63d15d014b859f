package models

import "time"

// Review is a user's rating of a provider for one completed booking.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewRequest is the payload for submitting a review.
type ReviewRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	BookingID  string `json:"bookingId" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}
