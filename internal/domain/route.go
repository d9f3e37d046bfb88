package domain

// Root of a Directions API response.
// Routes are ordered as the provider ranked them; index 0 is authoritative.
type DirectionsResponse struct {
	Status            string             `json:"status"`
	ErrorMessage      string             `json:"error_message,omitempty"`
	GeocodedWaypoints []GeocodedWaypoint `json:"geocoded_waypoints,omitempty"`
	Routes            []Route            `json:"routes"`
}

// Opaque geocoder metadata for each waypoint of the request.
type GeocodedWaypoint struct {
	GeocoderStatus string   `json:"geocoder_status,omitempty"`
	PlaceID        string   `json:"place_id,omitempty"`
	Types          []string `json:"types,omitempty"`
}

// Represents one candidate route from origin to destination.
// A Route owns one Leg per waypoint segment, in travel order.
type Route struct {
	Bounds           Bounds   `json:"bounds"`
	Copyrights       string   `json:"copyrights,omitempty"`
	Summary          string   `json:"summary"`
	Legs             []Leg    `json:"legs"`
	OverviewPolyline Polyline `json:"overview_polyline"`
	Warnings         []string `json:"warnings,omitempty"`
}

// Bounds is the viewport box of a route.
type Bounds struct {
	Northeast *Coordinate `json:"northeast,omitempty"`
	Southwest *Coordinate `json:"southwest,omitempty"`
}

// Polyline carries the provider's encoded geometry. It is never decoded here.
type Polyline struct {
	Points string `json:"points"`
}

// One origin-to-destination segment of a route.
// Locations are pointers so a partial response stays distinguishable
// from a real (0,0) coordinate.
type Leg struct {
	StartAddress  string      `json:"start_address"`
	EndAddress    string      `json:"end_address"`
	StartLocation *Coordinate `json:"start_location,omitempty"`
	EndLocation   *Coordinate `json:"end_location,omitempty"`
	Distance      Distance    `json:"distance"`
	Duration      Duration    `json:"duration"`
	Steps         []Step      `json:"steps"`
}

// One maneuver-level sub-segment of a Leg.
type Step struct {
	StartLocation    *Coordinate `json:"start_location,omitempty"`
	EndLocation      *Coordinate `json:"end_location,omitempty"`
	Distance         Distance    `json:"distance"`
	Duration         Duration    `json:"duration"`
	HTMLInstructions string      `json:"html_instructions"`
	Maneuver         string      `json:"maneuver,omitempty"`
	TravelMode       string      `json:"travel_mode"`
	Polyline         Polyline    `json:"polyline"`
}

// Distance in meters with its human-readable form.
type Distance struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Duration in seconds with its human-readable form.
type Duration struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// FirstLeg returns routes[0].legs[0], the only leg estimates are taken from.
// It fails with ErrNoRouteFound when either sequence is empty.
func (r *DirectionsResponse) FirstLeg() (Route, Leg, error) {
	if r == nil || len(r.Routes) == 0 {
		return Route{}, Leg{}, r.noRoute()
	}

	route := r.Routes[0]
	if len(route.Legs) == 0 {
		return Route{}, Leg{}, r.noRoute()
	}

	return route, route.Legs[0], nil
}

func (r *DirectionsResponse) noRoute() error {
	if r == nil || r.Status == "" {
		return ErrNoRouteFound
	}
	return &NoRouteFoundError{Status: r.Status, Message: r.ErrorMessage}
}
