package services

import (
	"context"
	"directions-route-service/internal/domain"
	"directions-route-service/internal/ports"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuildPath flattens every Step's start coordinate across every Leg of
// route, in Leg-then-Step order, and applies style to the whole line.
//
// The final Step's end coordinate is deliberately not appended, so the
// line stops one point short of the destination; callers that need the
// true endpoint show a destination marker. Steps without a start location
// and Legs without Steps contribute nothing.
func BuildPath(route domain.Route, style domain.PathStyle) domain.RenderablePath {
	n := 0
	for _, leg := range route.Legs {
		n += len(leg.Steps)
	}

	points := make([]domain.Coordinate, 0, n)
	for _, leg := range route.Legs {
		for _, step := range leg.Steps {
			if step.StartLocation == nil {
				continue
			}
			points = append(points, *step.StartLocation)
		}
	}

	return domain.RenderablePath{Points: points, Style: style}
}

// PathBuilder owns the currently drawn path and forwards changes to an
// optional PathRenderer.
//
// The latest Build or RemovePaths call wins, and a replaced path is
// cleared on the renderer before its successor is drawn. The lock is held
// while the renderer is called so the renderer and Current never disagree.
type PathBuilder struct {
	renderer ports.PathRenderer
	logger   *zap.Logger
	newID    func() string

	mu      sync.Mutex
	current *domain.RenderablePath
}

// NewPathBuilder creates a builder. renderer may be nil.
func NewPathBuilder(renderer ports.PathRenderer, logger *zap.Logger) *PathBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PathBuilder{renderer: renderer, logger: logger, newID: uuid.NewString}
}

// Build turns route into a RenderablePath, adds endpoint markers and
// camera bounds per cfg, and makes it the current path.
// Renderer failures are logged; rendering is the collaborator's concern.
func (b *PathBuilder) Build(
	ctx context.Context,
	route domain.Route,
	cfg domain.RenderConfig,
	source domain.Coordinate,
	destination domain.Coordinate,
) domain.RenderablePath {
	path := BuildPath(route, cfg.Style)
	path.ID = b.newID()

	if cfg.ShowMarkers {
		path.Markers = []domain.Marker{
			{Position: source, Icon: cfg.Style.MarkerIcon, Title: "source"},
			{Position: destination, Icon: cfg.Style.MarkerIcon, Title: "destination"},
		}
	}
	if cfg.BoundMarkers {
		if bounds, ok := domain.NewCameraBounds(cfg.BoundsPadding, source, destination); ok {
			path.CameraBounds = &bounds
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	previous := b.current
	stored := clonePath(path)
	b.current = &stored

	if b.renderer == nil {
		return path
	}

	// The replaced path is cleared before the new one is drawn.
	if previous != nil {
		if err := b.renderer.Clear(ctx, previous.ID); err != nil {
			b.logger.Warn("clear replaced path failed", zap.String("path_id", previous.ID), zap.Error(err))
		}
	}
	if err := b.renderer.Render(ctx, clonePath(path)); err != nil {
		b.logger.Warn("render path failed", zap.String("path_id", path.ID), zap.Error(err))
	}

	return path
}

// RemovePaths clears the current path. Safe to call when nothing is drawn.
func (b *PathBuilder) RemovePaths(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return
	}
	id := b.current.ID
	b.current = nil

	if b.renderer != nil {
		if err := b.renderer.Clear(ctx, id); err != nil {
			b.logger.Warn("clear path failed", zap.String("path_id", id), zap.Error(err))
		}
	}
}

// Current returns the active path, if any.
func (b *PathBuilder) Current() (domain.RenderablePath, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return domain.RenderablePath{}, false
	}
	return clonePath(*b.current), true
}

// clonePath copies p so the result shares no backing arrays with it.
func clonePath(p domain.RenderablePath) domain.RenderablePath {
	p.Points = slices.Clone(p.Points)
	p.Markers = slices.Clone(p.Markers)
	if p.CameraBounds != nil {
		bounds := *p.CameraBounds
		p.CameraBounds = &bounds
	}
	return p
}
