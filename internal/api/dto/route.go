package dto

import "directions-route-service/internal/domain"

// CoordinateRequest uses pointers so a missing lat/lng is distinguishable from 0.
type CoordinateRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type StyleRequest struct {
	Color      string   `json:"color"`
	WidthPx    *int     `json:"width_px"`
	Alpha      *float64 `json:"alpha"`
	MarkerIcon string   `json:"marker_icon"`
}

// DrawRouteRequest is the body of POST /v1/routes. Omitted optional
// fields fall back to the default render config.
type DrawRouteRequest struct {
	Origin        *CoordinateRequest `json:"origin"`
	Destination   *CoordinateRequest `json:"destination"`
	Mode          string             `json:"mode"`
	Style         *StyleRequest      `json:"style"`
	ShowMarkers   *bool              `json:"show_markers"`
	BoundMarkers  *bool              `json:"bound_markers"`
	BoundsPadding *int               `json:"bounds_padding"`
}

// RenderConfig overlays the request on the defaults.
func (r DrawRouteRequest) RenderConfig() domain.RenderConfig {
	cfg := domain.DefaultRenderConfig()

	if s := r.Style; s != nil {
		if s.Color != "" {
			cfg.Style.Color = s.Color
		}
		if s.WidthPx != nil {
			cfg.Style.WidthPx = *s.WidthPx
		}
		if s.Alpha != nil {
			cfg.Style.Alpha = *s.Alpha
		}
		if s.MarkerIcon != "" {
			cfg.Style.MarkerIcon = s.MarkerIcon
		}
	}
	if r.ShowMarkers != nil {
		cfg.ShowMarkers = *r.ShowMarkers
	}
	if r.BoundMarkers != nil {
		cfg.BoundMarkers = *r.BoundMarkers
	}
	if r.BoundsPadding != nil {
		cfg.BoundsPadding = *r.BoundsPadding
	}

	return cfg
}

type DrawRouteResponse struct {
	Path     domain.RenderablePath `json:"path"`
	Estimate EstimateResponse      `json:"estimate"`
}
