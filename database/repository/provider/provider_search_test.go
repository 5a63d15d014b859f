package providerRepo

import (
	"testing"

	"servicefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilterEmpty(t *testing.T) {
	if f := SearchFilter(models.ProviderSearch{}); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}
}

func TestSearchFilterEscapesInput(t *testing.T) {
	f := SearchFilter(models.ProviderSearch{Query: "a+b", Location: "Pune (West)"})

	loc, ok := f["location"].(primitive.Regex)
	if !ok {
		t.Fatalf("location filter missing: %v", f)
	}
	if loc.Pattern != `Pune \(West\)` || loc.Options != "i" {
		t.Fatalf("unexpected location regex: %+v", loc)
	}

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two $or branches, got %v", f["$or"])
	}
	name := or[0].(bson.M)["name"].(primitive.Regex)
	if name.Pattern != `a\+b` {
		t.Fatalf("query not escaped: %q", name.Pattern)
	}
}
