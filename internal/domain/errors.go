package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every TransportError.
	ErrTransport = errors.New("directions transport failure")
	// ErrMalformedResponse matches every MalformedResponseError.
	ErrMalformedResponse = errors.New("malformed directions response")
	// ErrNoRouteFound means a well-formed response carried no route or no leg.
	ErrNoRouteFound = errors.New("no route found")
	// ErrInvalidTravelMode matches every InvalidTravelModeError.
	ErrInvalidTravelMode = errors.New("invalid travel mode")
	// ErrInvalidCoordinate matches every InvalidCoordinateError.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidRenderConfig wraps every rejected path style.
	ErrInvalidRenderConfig = errors.New("invalid render config")
)

// TransportError is a network or IO failure talking to the provider:
// connection refused, timeout, non-2xx status or an empty body.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: status %d: %s", ErrTransport, e.Op, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", ErrTransport, e.Op)
	}
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// MalformedResponseError is a body that cannot be decoded into a DirectionsResponse.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedResponse, e.Err)
}

func (e *MalformedResponseError) Unwrap() error        { return e.Err }
func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

type InvalidTravelModeError struct {
	Value string
}

func (e *InvalidTravelModeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidTravelMode, e.Value)
}

func (e *InvalidTravelModeError) Is(target error) bool { return target == ErrInvalidTravelMode }

type InvalidCoordinateError struct {
	Lat, Lng float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("%s: (%v, %v) is not finite", ErrInvalidCoordinate, e.Lat, e.Lng)
}

func (e *InvalidCoordinateError) Is(target error) bool { return target == ErrInvalidCoordinate }

// NoRouteFoundError carries the provider status alongside ErrNoRouteFound
// (e.g. ZERO_RESULTS, REQUEST_DENIED).
type NoRouteFoundError struct {
	Status  string
	Message string
}

func (e *NoRouteFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status=%s: %s", ErrNoRouteFound, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status=%s", ErrNoRouteFound, e.Status)
}

func (e *NoRouteFoundError) Is(target error) bool { return target == ErrNoRouteFound }
