package providerRepo

import (
	"context"
	"fmt"
	"time"

	"servicefinder/database"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoProviderRepo) UpdateSet(ctx context.Context, id string, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	return r.updateWithOperator(ctx, id, bson.M{"$set": fields})
}

func (r *MongoProviderRepo) AddService(ctx context.Context, id, serviceID string) error {
	return r.updateWithOperator(ctx, id, bson.M{"$addToSet": bson.M{"services": serviceID}})
}

func (r *MongoProviderRepo) RemoveService(ctx context.Context, id, serviceID string) error {
	return r.updateWithOperator(ctx, id, bson.M{"$pull": bson.M{"services": serviceID}})
}

func (r *MongoProviderRepo) AddReview(ctx context.Context, id, reviewID string) error {
	return r.updateWithOperator(ctx, id, bson.M{"$addToSet": bson.M{"reviews": reviewID}})
}

func (r *MongoProviderRepo) SetRating(ctx context.Context, id string, rating float64) error {
	return r.UpdateSet(ctx, id, bson.M{"rating": rating})
}

func (r *MongoProviderRepo) updateWithOperator(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
