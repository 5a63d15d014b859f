package database

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SlotOpenFilter matches the document keyed by id whose availability still
// lists slot on date. Used as the compare half of compare-and-remove.
func SlotOpenFilter(id, date, slot string) bson.M {
	return bson.M{
		"id": id,
		"availability": bson.M{
			"$elemMatch": bson.M{
				"date":  date,
				"slots": slot,
			},
		},
	}
}

// literal keeps caller values from being read as field paths or operators
// inside aggregation expressions.
func literal(v string) bson.D {
	return bson.D{{Key: "$literal", Value: v}}
}

// RemoveSlotPipeline is an update pipeline that drops slot from the entry for
// date and then drops any entry left without slots, in one atomic write.
func RemoveSlotPipeline(date, slot string) mongo.Pipeline {
	withoutSlot := bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$availability", bson.A{}}}}},
		{Key: "as", Value: "a"},
		{Key: "in", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$eq", Value: bson.A{"$$a.date", literal(date)}}}},
			{Key: "then", Value: bson.D{
				{Key: "date", Value: "$$a.date"},
				{Key: "slots", Value: bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: "$$a.slots"},
					{Key: "as", Value: "s"},
					{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$s", literal(slot)}}}},
				}}}},
			}},
			{Key: "else", Value: "$$a"},
		}}}},
	}}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "availability", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: withoutSlot},
				{Key: "as", Value: "a"},
				{Key: "cond", Value: bson.D{{Key: "$gt", Value: bson.A{
					bson.D{{Key: "$size", Value: "$$a.slots"}}, 0,
				}}}},
			}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
}
