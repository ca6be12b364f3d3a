package domain

import "math"

const earthRadiusKm = 6371.0

// Immutable geographic coordinates (longitude, latitude) in decimal degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// HaversineDistanceKm returns the great-circle distance between two points in kilometers.
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	// Rounding can push a marginally above 1 for antipodal points.
	a = math.Min(1, a)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// DistanceTo returns the haversine distance from c to other in kilometers.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return HaversineDistanceKm(c.Lat, c.Lon, other.Lat, other.Lon)
}
