package catalogueRepo

import (
	"context"

	"servicefinder/models"
)

// ServiceRepository defines methods for service listing data access.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Service, error)
	// Update replaces the mutable fields of a service, including its availability.
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
	// RemoveSlot drops (date, slot) from the service only if it is still open.
	RemoveSlot(ctx context.Context, id, date, slot string) (bool, error)
}
