package domain

// Immutable geographic coordinate (latitude, longitude) in WGS 84 degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
