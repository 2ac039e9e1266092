package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// Point is a geographic coordinate pair
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Haversine returns the great-circle distance between two points in kilometers
func Haversine(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// DistanceKm is a convenience wrapper over Haversine for raw coordinates
func DistanceKm(lon1, lat1, lon2, lat2 float64) float64 {
	return Haversine(Point{Longitude: lon1, Latitude: lat1}, Point{Longitude: lon2, Latitude: lat2})
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
