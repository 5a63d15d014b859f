package providerRepo

import (
	"context"

	"servicefinder/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByUserID retrieves the provider profile owned by a user.
	GetByUserID(ctx context.Context, userID string) (*models.Provider, error)
	// Search returns providers matching a free-text query and location.
	Search(ctx context.Context, criteria models.ProviderSearch) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// UpdateSet patches top-level fields of a provider.
	UpdateSet(ctx context.Context, id string, fields bson.M) error
	// SetAvailability replaces the provider's aggregated availability.
	SetAvailability(ctx context.Context, id string, entries []models.AvailabilityEntry) error
	// AddService links a service ID to the provider.
	AddService(ctx context.Context, id, serviceID string) error
	// RemoveService unlinks a service ID from the provider.
	RemoveService(ctx context.Context, id, serviceID string) error
	// RemoveSlot drops (date, slot) from the aggregate, reporting whether it was present.
	RemoveSlot(ctx context.Context, id, date, slot string) (bool, error)
	// AddReview appends a review reference to the provider.
	AddReview(ctx context.Context, id, reviewID string) error
	// SetRating stores the recomputed average rating.
	SetRating(ctx context.Context, id string, rating float64) error
}
