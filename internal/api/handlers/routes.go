package handlers

import (
	"context"
	"directions-route-service/internal/api/dto"
	"directions-route-service/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteService is the slice of the route facade the HTTP layer uses.
type RouteService interface {
	GetTravelEstimations(ctx context.Context, source, destination domain.Coordinate, mode domain.TravelMode) (domain.Estimate, error)
	DrawRoute(ctx context.Context, source, destination domain.Coordinate, mode domain.TravelMode, cfg domain.RenderConfig) (domain.RenderablePath, domain.Estimate, error)
	RemovePaths(ctx context.Context)
	CurrentPath() (domain.RenderablePath, bool)
}

type RouteHandler struct {
	Routes      RouteService
	DefaultMode domain.TravelMode
	Logger      *zap.Logger
}

// Estimate serves GET /v1/estimates?origin=lat,lng&destination=lat,lng&mode=.
func (h *RouteHandler) Estimate(c *gin.Context) {
	origin, err := parseCoordinate(c.Query("origin"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "origin: "+err.Error())
		return
	}
	destination, err := parseCoordinate(c.Query("destination"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "destination: "+err.Error())
		return
	}
	mode, err := parseMode(c.Query("mode"), h.DefaultMode)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	est, err := h.Routes.GetTravelEstimations(c.Request.Context(), origin, destination, mode)
	if err != nil {
		h.fail(c, "estimate failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEstimateResponse(mode, est))
}

// Draw serves POST /v1/routes. It replaces the current path.
func (h *RouteHandler) Draw(c *gin.Context) {
	var req dto.DrawRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	origin, err := coordinate("origin", req.Origin)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	destination, err := coordinate("destination", req.Destination)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := parseMode(req.Mode, h.DefaultMode)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	path, est, err := h.Routes.DrawRoute(c.Request.Context(), origin, destination, mode, req.RenderConfig())
	if err != nil {
		h.fail(c, "draw route failed", err)
		return
	}

	c.JSON(http.StatusCreated, dto.DrawRouteResponse{
		Path:     path,
		Estimate: dto.NewEstimateResponse(mode, est),
	})
}

// Current serves GET /v1/routes/current.
func (h *RouteHandler) Current(c *gin.Context) {
	path, ok := h.Routes.CurrentPath()
	if !ok {
		writeError(c, http.StatusNotFound, "no route drawn")
		return
	}
	c.JSON(http.StatusOK, path)
}

// Clear serves DELETE /v1/routes/current.
func (h *RouteHandler) Clear(c *gin.Context) {
	h.Routes.RemovePaths(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *RouteHandler) fail(c *gin.Context, msg string, err error) {
	status, public := statusFor(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.Warn(msg,
			zap.Int("status", status),
			zap.String("req_id", c.GetString(RequestIDContextKey)),
			zap.Error(err),
		)
	}
	writeError(c, status, public)
}

func coordinate(field string, in *dto.CoordinateRequest) (domain.Coordinate, error) {
	if in == nil || in.Lat == nil || in.Lng == nil {
		return domain.Coordinate{}, &missingFieldError{field: field}
	}
	c := domain.NewCoordinate(*in.Lat, *in.Lng)
	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, err
	}
	return c, nil
}

type missingFieldError struct{ field string }

func (e *missingFieldError) Error() string { return e.field + " requires lat and lng" }
