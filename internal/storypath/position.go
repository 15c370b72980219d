package storypath

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPosition is returned when a location_position string does not
// encode exactly two finite numbers.
var ErrInvalidPosition = errors.New("invalid location position")

// Coordinate is a parsed latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParsePosition converts the backend's "(lat,lng)" encoding into a
// Coordinate. Surrounding parentheses and whitespace are tolerated.
// Malformed input yields ErrInvalidPosition, never a panic — callers treat
// failure as "skip this location".
func ParsePosition(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, ErrInvalidPosition
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, ErrInvalidPosition
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, ErrInvalidPosition
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return Coordinate{}, ErrInvalidPosition
	}

	return Coordinate{Lat: lat, Lng: lng}, nil
}
