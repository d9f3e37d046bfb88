package services

import (
	"context"
	"directions-route-service/internal/domain"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxInFlight bounds concurrent provider calls per facade.
const DefaultMaxInFlight = 8

// ErrFacadeClosed is returned by every call made after Close.
var ErrFacadeClosed = errors.New("route facade closed")

type FacadeConfig struct {
	APIKey      string
	MaxInFlight int64
}

// EstimateOutcome is the single result of an asynchronous estimate.
type EstimateOutcome struct {
	Estimate domain.Estimate
	Err      error
}

// DrawOutcome is the single result of an asynchronous draw.
type DrawOutcome struct {
	Path     domain.RenderablePath
	Estimate domain.Estimate
	Err      error
}

// RouteFacade is the entry point UI code talks to. It composes the
// DirectionsRepository and PathBuilder and owns the concurrency scope
// of every call it serves.
//
// Overlapping draws are not ordered: whichever completes last becomes the
// current path. Close tears the scope down; results of work still in
// flight are dropped.
type RouteFacade struct {
	repo    *DirectionsRepository
	builder *PathBuilder
	apiKey  string
	sem     *semaphore.Weighted
	logger  *zap.Logger

	scope  context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewRouteFacade(
	repo *DirectionsRepository,
	builder *PathBuilder,
	cfg FacadeConfig,
	logger *zap.Logger,
) *RouteFacade {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}

	scope, cancel := context.WithCancel(context.Background())
	return &RouteFacade{
		repo:    repo,
		builder: builder,
		apiKey:  cfg.APIKey,
		sem:     semaphore.NewWeighted(cfg.MaxInFlight),
		logger:  logger,
		scope:   scope,
		cancel:  cancel,
	}
}

// GetTravelEstimations returns the first leg's distance and duration.
func (f *RouteFacade) GetTravelEstimations(
	ctx context.Context,
	source domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
) (domain.Estimate, error) {
	resp, err := f.fetch(ctx, source, destination, mode)
	if err != nil {
		return domain.Estimate{}, err
	}

	est, err := domain.EstimateFromResponse(resp)
	if err != nil {
		return domain.Estimate{}, err
	}

	f.logger.Debug("travel estimate",
		zap.String("mode", mode.String()),
		zap.Int("distance_m", est.DistanceValue),
		zap.Int("duration_s", est.DurationValue),
	)
	return est, nil
}

// DrawRoute fetches directions once and derives both the path of
// routes[0] and the estimate of its first leg.
func (f *RouteFacade) DrawRoute(
	ctx context.Context,
	source domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
	cfg domain.RenderConfig,
) (domain.RenderablePath, domain.Estimate, error) {
	if err := cfg.Validate(); err != nil {
		return domain.RenderablePath{}, domain.Estimate{}, err
	}

	resp, err := f.fetch(ctx, source, destination, mode)
	if err != nil {
		return domain.RenderablePath{}, domain.Estimate{}, err
	}

	route, leg, err := resp.FirstLeg()
	if err != nil {
		return domain.RenderablePath{}, domain.Estimate{}, err
	}

	// Hold the read lock so Close cannot complete between the check and the build.
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return domain.RenderablePath{}, domain.Estimate{}, ErrFacadeClosed
	}

	path := f.builder.Build(ctx, route, cfg, source, destination)

	f.logger.Debug("route drawn",
		zap.String("path_id", path.ID),
		zap.Int("points", len(path.Points)),
	)
	return path, domain.EstimateFromLeg(leg), nil
}

// RemovePaths clears the current path.
func (f *RouteFacade) RemovePaths(ctx context.Context) {
	f.builder.RemovePaths(ctx)
}

// CurrentPath returns the path drawn by the most recently completed draw.
func (f *RouteFacade) CurrentPath() (domain.RenderablePath, bool) {
	return f.builder.Current()
}

// GetTravelEstimationsAsync runs GetTravelEstimations in the facade scope.
// The channel yields one outcome, or is closed empty if the facade is
// closed first.
func (f *RouteFacade) GetTravelEstimationsAsync(
	source domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
) <-chan EstimateOutcome {
	return launch(f, func(ctx context.Context) EstimateOutcome {
		est, err := f.GetTravelEstimations(ctx, source, destination, mode)
		return EstimateOutcome{Estimate: est, Err: err}
	})
}

// DrawRouteAsync runs DrawRoute in the facade scope.
func (f *RouteFacade) DrawRouteAsync(
	source domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
	cfg domain.RenderConfig,
) <-chan DrawOutcome {
	return launch(f, func(ctx context.Context) DrawOutcome {
		path, est, err := f.DrawRoute(ctx, source, destination, mode, cfg)
		return DrawOutcome{Path: path, Estimate: est, Err: err}
	})
}

// Close cancels in-flight work and waits for it to stop. After Close
// returns no further outcomes are delivered. Safe to call twice.
func (f *RouteFacade) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	f.cancel()
	f.wg.Wait()
}

// fetch ties ctx to the facade scope and bounds concurrent provider calls.
func (f *RouteFacade) fetch(
	ctx context.Context,
	source domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
) (*domain.DirectionsResponse, error) {
	if f.scope.Err() != nil {
		return nil, ErrFacadeClosed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(f.scope, cancel)
	defer stop()

	if err := f.sem.Acquire(ctx, 1); err != nil {
		if f.scope.Err() != nil {
			return nil, ErrFacadeClosed
		}
		return nil, fmt.Errorf("route facade: wait for slot: %w", err)
	}
	defer f.sem.Release(1)

	resp, err := f.repo.FetchDirections(ctx, source, destination, mode, f.apiKey)
	if err != nil {
		if f.scope.Err() != nil {
			return nil, ErrFacadeClosed
		}
		return nil, err
	}

	return resp, nil
}

// launch runs work on its own goroutine inside the facade scope and
// delivers its result unless the scope is torn down first.
func launch[T any](f *RouteFacade, work func(ctx context.Context) T) <-chan T {
	out := make(chan T, 1)

	f.mu.RLock()
	if f.closed {
		f.mu.RUnlock()
		close(out)
		return out
	}
	f.wg.Add(1)
	f.mu.RUnlock()

	go func() {
		defer f.wg.Done()
		defer close(out)

		deliver(f, out, work(f.scope))
	}()

	return out
}

// deliver sends res unless the facade has been closed. The check and the
// send happen under the read lock, so nothing lands after Close.
func deliver[T any](f *RouteFacade, out chan<- T, res T) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed || f.scope.Err() != nil {
		return false
	}
	out <- res
	return true
}
