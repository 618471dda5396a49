package geo

import (
	"math"

	"safewalk-service/internal/domain"
)

// Mean Earth radius in meters (spherical model).
const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two coordinates in
// meters, using the haversine formula. Symmetric and non-negative.
func Distance(a, b domain.Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// InitialBearing returns the initial compass bearing from a to b in degrees,
// normalized to [0, 360). Unstable when a == b; callers must avoid that case.
func InitialBearing(a, b domain.Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := toDegrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// Destination projects origin forward by distanceMeters along an initial
// bearing (degrees) on a spherical Earth and returns the reached coordinate.
func Destination(origin domain.Coordinate, distanceMeters, bearingDeg float64) domain.Coordinate {
	ad := distanceMeters / earthRadiusMeters
	brg := toRadians(bearingDeg)
	lat1 := toRadians(origin.Lat)
	lon1 := toRadians(origin.Lon)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ad) +
		math.Cos(lat1)*math.Sin(ad)*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(ad)*math.Cos(lat1),
		math.Cos(ad)-math.Sin(lat1)*math.Sin(lat2),
	)

	return domain.Coordinate{
		Lat: toDegrees(lat2),
		Lon: toDegrees(lon2),
	}
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
