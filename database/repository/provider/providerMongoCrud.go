package providerRepo

import (
	"context"
	"fmt"
	"time"

	"servicefinder/database"
	"servicefinder/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new provider document.
func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// SetAvailability replaces the aggregated availability wholesale.
func (r *MongoProviderRepo) SetAvailability(ctx context.Context, id string, entries []models.AvailabilityEntry) error {
	if entries == nil {
		entries = []models.AvailabilityEntry{}
	}
	return r.UpdateSet(ctx, id, map[string]interface{}{"availability": entries})
}

// RemoveSlot drops (date, slot) from the aggregate in a single conditional
// write. It reports false when the slot was not present.
func (r *MongoProviderRepo) RemoveSlot(ctx context.Context, id, date, slot string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, database.SlotOpenFilter(id, date, slot), database.RemoveSlotPipeline(date, slot))
	if err != nil {
		return false, fmt.Errorf("failed to remove slot from provider %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}
