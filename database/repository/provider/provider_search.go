package providerRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"servicefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchFilter builds the Mongo filter for a provider listing query. Both
// terms are matched case-insensitively as literal substrings.
func SearchFilter(criteria models.ProviderSearch) bson.M {
	filter := bson.M{}
	if criteria.Location != "" {
		filter["location"] = literalRegex(criteria.Location)
	}
	if criteria.Query != "" {
		filter["$or"] = bson.A{
			bson.M{"name": literalRegex(criteria.Query)},
			bson.M{"service": literalRegex(criteria.Query)},
		}
	}
	return filter
}

func literalRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (r *MongoProviderRepo) Search(ctx context.Context, criteria models.ProviderSearch) ([]models.Provider, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, SearchFilter(criteria), opts)
	if err != nil {
		return nil, fmt.Errorf("provider search failed: %w", err)
	}
	defer cursor.Close(ctx)

	providers := []models.Provider{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}
