package services

import (
	"directions-route-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParseDirections decodes a raw Directions body into the route model.
//
// Unknown fields are ignored and missing optional fields stay empty.
// Anything that is not a JSON object matching the root schema fails with
// *domain.MalformedResponseError. An object with "routes": [] is a valid
// parse; emptiness is reported downstream as ErrNoRouteFound.
func ParseDirections(raw string) (*domain.DirectionsResponse, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &domain.MalformedResponseError{Err: errors.New("empty body")}
	}

	// json.Unmarshal accepts a bare null into a struct; the root must be an object.
	if trimmed[0] != '{' {
		return nil, &domain.MalformedResponseError{Err: errors.New("body is not a JSON object")}
	}

	var resp domain.DirectionsResponse
	if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		return nil, &domain.MalformedResponseError{Err: fmt.Errorf("decode directions response: %w", err)}
	}

	return &resp, nil
}
