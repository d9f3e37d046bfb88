package ports

import (
	"context"
	"directions-route-service/internal/domain"
)

// Contract for retrieving raw Directions API bodies.
type DirectionsClient interface {
	// Perform exactly one request and return the raw body.
	// Failures are *domain.TransportError; the body is not interpreted.
	FetchRaw(
		ctx context.Context,
		origin domain.Coordinate,
		destination domain.Coordinate,
		mode domain.TravelMode,
		apiKey string,
	) (string, error)
}
