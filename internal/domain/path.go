package domain

import (
	"fmt"
	"math"
	"regexp"
)

const (
	DefaultPathColor     = "#FF9800"
	DefaultPathWidthPx   = 12
	DefaultPathAlpha     = 0.6
	DefaultMarkerIcon    = "hue_orange"
	DefaultBoundsPadding = 5
)

var hexColor = regexp.MustCompile(`^#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// PathStyle is applied uniformly to every segment of a path.
type PathStyle struct {
	Color      string  `json:"color"`
	WidthPx    int     `json:"width_px"`
	Alpha      float64 `json:"alpha"`
	MarkerIcon string  `json:"marker_icon"`
}

// RenderConfig describes how a fetched route should be presented.
type RenderConfig struct {
	Style         PathStyle
	ShowMarkers   bool
	BoundMarkers  bool
	BoundsPadding int
}

// Validate checks the style and the bounds padding.
func (c RenderConfig) Validate() error {
	if c.BoundsPadding < 0 {
		return fmt.Errorf("%w: bounds_padding must not be negative, got %d", ErrInvalidRenderConfig, c.BoundsPadding)
	}
	return c.Style.Validate()
}

func DefaultPathStyle() PathStyle {
	return PathStyle{
		Color:      DefaultPathColor,
		WidthPx:    DefaultPathWidthPx,
		Alpha:      DefaultPathAlpha,
		MarkerIcon: DefaultMarkerIcon,
	}
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Style:         DefaultPathStyle(),
		ShowMarkers:   true,
		BoundMarkers:  true,
		BoundsPadding: DefaultBoundsPadding,
	}
}

// Validate rejects styles a renderer could not honor.
func (s PathStyle) Validate() error {
	if !hexColor.MatchString(s.Color) {
		return fmt.Errorf("%w: color %q must be #RRGGBB or #AARRGGBB", ErrInvalidRenderConfig, s.Color)
	}
	if s.WidthPx <= 0 {
		return fmt.Errorf("%w: width_px must be positive, got %d", ErrInvalidRenderConfig, s.WidthPx)
	}
	if math.IsNaN(s.Alpha) || s.Alpha < 0 || s.Alpha > 1 {
		return fmt.Errorf("%w: alpha must be within [0, 1], got %v", ErrInvalidRenderConfig, s.Alpha)
	}
	return nil
}

// Marker is a point annotation at a path endpoint.
type Marker struct {
	Position Coordinate `json:"position"`
	Icon     string     `json:"icon"`
	Title    string     `json:"title,omitempty"`
}

// CameraBounds is the box a map camera should frame.
type CameraBounds struct {
	Southwest Coordinate `json:"southwest"`
	Northeast Coordinate `json:"northeast"`
	PaddingPx int        `json:"padding_px"`
}

// NewCameraBounds returns the smallest box containing every point.
func NewCameraBounds(padding int, points ...Coordinate) (CameraBounds, bool) {
	if len(points) == 0 {
		return CameraBounds{}, false
	}

	b := CameraBounds{Southwest: points[0], Northeast: points[0], PaddingPx: padding}
	for _, p := range points[1:] {
		b.Southwest.Lat = math.Min(b.Southwest.Lat, p.Lat)
		b.Southwest.Lng = math.Min(b.Southwest.Lng, p.Lng)
		b.Northeast.Lat = math.Max(b.Northeast.Lat, p.Lat)
		b.Northeast.Lng = math.Max(b.Northeast.Lng, p.Lng)
	}
	return b, true
}

// RenderablePath is a flattened, styled coordinate sequence ready to draw.
// It is replaced wholesale on every successful draw.
type RenderablePath struct {
	ID           string        `json:"id"`
	Points       []Coordinate  `json:"points"`
	Style        PathStyle     `json:"style"`
	Markers      []Marker      `json:"markers,omitempty"`
	CameraBounds *CameraBounds `json:"camera_bounds,omitempty"`
}
