package reviewRepo

import (
	"context"

	"servicefinder/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a review; database.ErrDuplicate if the booking already has one.
	Create(ctx context.Context, review *models.Review) error
	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Review, error)
	// AverageRating returns the mean rating over all of a provider's reviews
	// and how many there are. The mean is 0 when there are none.
	AverageRating(ctx context.Context, providerID string) (float64, int, error)
}
