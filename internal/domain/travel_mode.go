package domain

import "strings"

// TravelMode is the closed set of modes the Directions API supports.
// The value is the provider's lowercase wire form.
type TravelMode string

const (
	TravelModeDriving   TravelMode = "driving"
	TravelModeWalking   TravelMode = "walking"
	TravelModeBicycling TravelMode = "bicycling"
	TravelModeTransit   TravelMode = "transit"
)

// DefaultTravelMode is used when a caller does not name a mode.
const DefaultTravelMode = TravelModeDriving

var travelModes = []TravelMode{
	TravelModeDriving,
	TravelModeWalking,
	TravelModeBicycling,
	TravelModeTransit,
}

// TravelModes returns every supported mode in declaration order.
func TravelModes() []TravelMode {
	out := make([]TravelMode, len(travelModes))
	copy(out, travelModes)
	return out
}

// ParseTravelMode accepts the wire form or the upper-case enum name
// ("walking", "WALKING"). Anything else fails; there is no silent default.
func ParseTravelMode(s string) (TravelMode, error) {
	norm := TravelMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range travelModes {
		if m == norm {
			return m, nil
		}
	}
	return "", &InvalidTravelModeError{Value: s}
}

func (m TravelMode) String() string { return string(m) }

// Valid reports whether m is one of the supported modes.
func (m TravelMode) Valid() bool {
	for _, known := range travelModes {
		if m == known {
			return true
		}
	}
	return false
}

func (m TravelMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &InvalidTravelModeError{Value: string(m)}
	}
	return []byte(m), nil
}

func (m *TravelMode) UnmarshalText(text []byte) error {
	parsed, err := ParseTravelMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
