package utils

import "math"

// ToMinorUnits converts a price in major currency units (e.g. rupees) to the
// smallest unit the payment gateway charges in (e.g. paise).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits is the inverse of ToMinorUnits, rounded to two decimals.
func FromMinorUnits(amount int64) float64 {
	return math.Round(float64(amount)) / 100
}
