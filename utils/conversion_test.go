package utils

import "testing"

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		major float64
		minor int64
	}{
		{0, 0},
		{499, 49900},
		{19.99, 1999},
		{1.5, 150},
	}
	for _, tc := range cases {
		if got := ToMinorUnits(tc.major); got != tc.minor {
			t.Fatalf("ToMinorUnits(%v) = %d, want %d", tc.major, got, tc.minor)
		}
	}
	if got := FromMinorUnits(1999); got != 19.99 {
		t.Fatalf("FromMinorUnits(1999) = %v", got)
	}
}
