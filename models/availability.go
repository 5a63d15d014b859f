package models

// AvailabilityEntry pairs a date with the slots still open on it.
type AvailabilityEntry struct {
	Date  string   `bson:"date" json:"date"`   // e.g. "2024-06-01"
	Slots []string `bson:"slots" json:"slots"` // e.g. ["10am", "11am"]
}
