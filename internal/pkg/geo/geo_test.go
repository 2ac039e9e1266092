package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	points := []Point{
		{Longitude: 0, Latitude: 0},
		{Longitude: 46.6753, Latitude: 24.7136},
		{Longitude: -180, Latitude: 89},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, Haversine(p, p))
	}
}

func TestHaversineSymmetry(t *testing.T) {
	riyadh := Point{Longitude: 46.6753, Latitude: 24.7136}
	jeddah := Point{Longitude: 39.1728, Latitude: 21.5433}

	assert.Equal(t, Haversine(riyadh, jeddah), Haversine(jeddah, riyadh))
}

func TestHaversineRiyadhJeddah(t *testing.T) {
	// Riyadh -> Jeddah is roughly 850 km by great circle
	d := DistanceKm(46.6753, 24.7136, 39.1728, 21.5433)

	assert.InDelta(t, 850, d, 850*0.05)
}
