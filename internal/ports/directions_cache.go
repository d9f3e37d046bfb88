package ports

import "context"

// Optional store of raw provider bodies keyed by request.
// Implementations expire entries themselves; a stale entry is a miss.
type DirectionsCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key string, raw string) error
}
