package utils

import "testing"

func TestHealthStatusHealthy(t *testing.T) {
	cases := []struct {
		name string
		in   HealthStatus
		want bool
	}{
		{"all up", HealthStatus{Mongo: true, Redis: []bool{true, true}}, true},
		{"mongo down", HealthStatus{Mongo: false, Redis: []bool{true}}, false},
		{"one redis down", HealthStatus{Mongo: true, Redis: []bool{true, false}}, false},
		{"no redis checked", HealthStatus{Mongo: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Healthy(); got != tc.want {
				t.Fatalf("Healthy() = %v, want %v", got, tc.want)
			}
		})
	}
}
