package utils

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{name: "same point", lat1: 47.1, lon1: 8.2, lat2: 47.1, lon2: 8.2, want: 0, tolerance: 0.001},
		{name: "zurich to bern", lat1: 47.3769, lon1: 8.5417, lat2: 46.9480, lon2: 7.4474, want: 95000, tolerance: 3000},
		{name: "one degree latitude", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 111195, tolerance: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("distance = %.0f m, expected %.0f ± %.0f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestCalculateBoundingBox(t *testing.T) {
	minLat, maxLat, minLon, maxLon := CalculateBoundingBox(47.1, 8.2, 1000)

	if minLat >= 47.1 || maxLat <= 47.1 || minLon >= 8.2 || maxLon <= 8.2 {
		t.Fatalf("box [%g,%g]x[%g,%g] does not contain center", minLat, maxLat, minLon, maxLon)
	}

	// 1 km should span roughly 0.009 degrees of latitude.
	if d := maxLat - minLat; math.Abs(d-0.018) > 0.002 {
		t.Errorf("latitude span = %g, expected ~0.018", d)
	}
	// Longitude degrees shrink with latitude, so the box is wider in
	// longitude than in latitude.
	if (maxLon - minLon) <= (maxLat - minLat) {
		t.Errorf("longitude span should exceed latitude span at 47°N")
	}
}
