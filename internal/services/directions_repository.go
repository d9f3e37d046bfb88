package services

import (
	"context"
	"directions-route-service/internal/domain"
	"directions-route-service/internal/platform/obs"
	"directions-route-service/internal/ports"

	"go.uber.org/zap"
)

// DirectionsRepository composes a DirectionsClient and ParseDirections,
// optionally fronted by a DirectionsCache.
//
// Transport and parse failures propagate unchanged so callers can tell
// them apart. A response with no routes is a success here.
type DirectionsRepository struct {
	client ports.DirectionsClient
	cache  ports.DirectionsCache
	logger *zap.Logger
}

// NewDirectionsRepository wires a repository. cache may be nil.
func NewDirectionsRepository(
	client ports.DirectionsClient,
	cache ports.DirectionsCache,
	logger *zap.Logger,
) *DirectionsRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectionsRepository{client: client, cache: cache, logger: logger}
}

// CacheKey identifies one directions request independent of the API key.
func CacheKey(origin, destination domain.Coordinate, mode domain.TravelMode) string {
	return origin.String() + "|" + destination.String() + "|" + mode.String()
}

// FetchDirections retrieves and parses directions for one pair.
// A cache hit costs no network call; a miss costs exactly one.
func (r *DirectionsRepository) FetchDirections(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
	apiKey string,
) (_ *domain.DirectionsResponse, err error) {
	defer obs.Time(ctx, r.logger, "directions.FetchDirections")(&err)

	if !mode.Valid() {
		return nil, &domain.InvalidTravelModeError{Value: string(mode)}
	}
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if err := destination.Validate(); err != nil {
		return nil, err
	}

	key := CacheKey(origin, destination, mode)

	// Check the cache before issuing the external call.
	if resp, ok := r.fromCache(ctx, key); ok {
		return resp, nil
	}

	raw, err := r.client.FetchRaw(ctx, origin, destination, mode, apiKey)
	if err != nil {
		return nil, err
	}

	resp, err := ParseDirections(raw)
	if err != nil {
		return nil, err
	}

	// Only cache bodies that actually carry a route.
	if r.cache != nil && len(resp.Routes) > 0 {
		if err := r.cache.Put(ctx, key, raw); err != nil {
			r.logger.Warn("directions cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return resp, nil
}

func (r *DirectionsRepository) fromCache(ctx context.Context, key string) (*domain.DirectionsResponse, bool) {
	if r.cache == nil {
		return nil, false
	}

	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("directions cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	resp, err := ParseDirections(raw)
	if err != nil {
		r.logger.Warn("discarding unparseable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	r.logger.Debug("directions cache hit", zap.String("key", key))
	return resp, true
}
