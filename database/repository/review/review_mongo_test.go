package reviewRepo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestAveragePipelineShape(t *testing.T) {
	p := AveragePipeline("p1")
	if len(p) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(p))
	}
	match := p[0][0]
	if match.Key != "$match" || match.Value.(bson.M)["providerId"] != "p1" {
		t.Fatalf("unexpected match stage: %v", p[0])
	}
	if p[1][0].Key != "$group" {
		t.Fatalf("expected $group stage, got %s", p[1][0].Key)
	}
	if _, err := bson.Marshal(bson.D{{Key: "pipeline", Value: p}}); err != nil {
		t.Fatalf("pipeline does not marshal: %v", err)
	}
}
