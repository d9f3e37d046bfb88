package handlers

import (
	"context"
	"directions-route-service/internal/domain"
	"directions-route-service/internal/services"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequestIDContextKey is the gin context key holding the request ID.
const RequestIDContextKey = "request_id"

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// statusFor maps the error taxonomy onto HTTP statuses. The returned
// message is safe to show to clients.
func statusFor(err error) (int, string) {
	var netErr net.Error

	switch {
	case errors.Is(err, domain.ErrInvalidTravelMode),
		errors.Is(err, domain.ErrInvalidCoordinate),
		errors.Is(err, domain.ErrInvalidRenderConfig):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNoRouteFound):
		return http.StatusNotFound, "no route found"
	case errors.Is(err, services.ErrFacadeClosed):
		return http.StatusServiceUnavailable, "service shutting down"
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return http.StatusGatewayTimeout, "directions provider timed out"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "directions provider unavailable"
	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, "directions provider returned an invalid response"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// parseCoordinate reads "lat,lng".
func parseCoordinate(raw string) (domain.Coordinate, error) {
	latRaw, lngRaw, ok := strings.Cut(strings.TrimSpace(raw), ",")
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("expected lat,lng, got %q", raw)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("invalid latitude %q", latRaw)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("invalid longitude %q", lngRaw)
	}

	c := domain.NewCoordinate(lat, lng)
	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, err
	}
	return c, nil
}

// parseMode falls back to def when raw is blank.
func parseMode(raw string, def domain.TravelMode) (domain.TravelMode, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	return domain.ParseTravelMode(raw)
}
