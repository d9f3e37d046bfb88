package ports

import (
	"context"
	"directions-route-service/internal/domain"
)

// Port: the rendering collaborator that paints paths on a map surface.
// The core only hands it data; it never draws.
type PathRenderer interface {
	// Render replaces whatever path was previously shown.
	Render(ctx context.Context, path domain.RenderablePath) error
	// Clear removes the path with the given ID.
	Clear(ctx context.Context, pathID string) error
}
