package domain

import (
	"math"
	"strconv"
)

// Immutable geographic coordinate (latitude, longitude).
// Out-of-range values are accepted as-is; only non-finite numbers are rejected.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewCoordinate(lat, lng float64) Coordinate { return Coordinate{Lat: lat, Lng: lng} }

// Validate reports ErrInvalidCoordinate for NaN or infinite components.
func (c Coordinate) Validate() error {
	if !finite(c.Lat) || !finite(c.Lng) {
		return &InvalidCoordinateError{Lat: c.Lat, Lng: c.Lng}
	}
	return nil
}

// Return the coordinate as "lat,lng" for provider query strings.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
