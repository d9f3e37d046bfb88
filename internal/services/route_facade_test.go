package services

import (
	"context"
	"directions-route-service/internal/adapters/directions"
	"directions-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFacade(t *testing.T, client *directions.MockDirectionsClient, maxInFlight int64) (*RouteFacade, *recordingRenderer) {
	t.Helper()
	renderer := &recordingRenderer{}
	repo := NewDirectionsRepository(client, nil, nil)
	f := NewRouteFacade(repo, NewPathBuilder(renderer, nil), FacadeConfig{APIKey: "test-key", MaxInFlight: maxInFlight}, nil)
	t.Cleanup(f.Close)
	return f, renderer
}

func TestGetTravelEstimations(t *testing.T) {
	client := directions.NewMockDirectionsClient(directions.MockReply{
		Origin: lahoreSrc, Destination: lahoreDst, Mode: domain.TravelModeDriving, Body: oneRouteBody,
	})
	f, _ := newTestFacade(t, client, 0)

	est, err := f.GetTravelEstimations(context.Background(), lahoreSrc, lahoreDst, domain.TravelModeDriving)
	require.NoError(t, err)

	assert.Equal(t, "2.1 km", est.DistanceText)
	assert.Equal(t, 2100, est.DistanceValue)
	assert.Equal(t, "7 mins", est.DurationText)
	assert.Equal(t, 420, est.DurationValue)
	assert.Equal(t, 1, client.Calls())
}

func TestGetTravelEstimationsNoRoute(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(zeroResultsBody, nil)
	f, _ := newTestFacade(t, client, 0)

	_, err := f.GetTravelEstimations(context.Background(), lahoreSrc, lahoreDst, domain.TravelModeTransit)
	require.ErrorIs(t, err, domain.ErrNoRouteFound)
	assert.NotErrorIs(t, err, domain.ErrMalformedResponse)
	assert.NotErrorIs(t, err, domain.ErrTransport)
}

func TestGetTravelEstimationsLegless(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(`{"routes":[{"legs":[]}],"status":"OK"}`, nil)
	f, _ := newTestFacade(t, client, 0)

	_, err := f.GetTravelEstimations(context.Background(), lahoreSrc, lahoreDst, domain.TravelModeDriving)
	assert.ErrorIs(t, err, domain.ErrNoRouteFound)
}

func TestGetTravelEstimationsCallerCancel(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	client.Gate = make(chan struct{})
	f, _ := newTestFacade(t, client, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.GetTravelEstimations(ctx, lahoreSrc, lahoreDst, domain.TravelModeDriving)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrFacadeClosed)
}

func TestDrawRouteFetchesOnce(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	f, renderer := newTestFacade(t, client, 0)

	path, est, err := f.DrawRoute(context.Background(), lahoreSrc, lahoreDst, domain.TravelModeDriving, domain.DefaultRenderConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, client.Calls())
	assert.Equal(t, 420, est.DurationValue)
	assert.Equal(t, "Gulberg III, Lahore", est.StartAddress)
	assert.Len(t, path.Points, 2)
	assert.NotEmpty(t, path.ID)
	require.Len(t, renderer.rendered, 1)

	current, ok := f.CurrentPath()
	require.True(t, ok)
	assert.Equal(t, path.ID, current.ID)
}

func TestDrawRouteNoRouteLeavesCurrentPath(t *testing.T) {
	client := directions.NewMockDirectionsClient(
		directions.MockReply{Origin: lahoreSrc, Destination: lahoreDst, Mode: domain.TravelModeDriving, Body: oneRouteBody},
		directions.MockReply{Origin: lahoreSrc, Destination: lahoreDst, Mode: domain.TravelModeWalking, Body: zeroResultsBody},
	)
	f, _ := newTestFacade(t, client, 0)
	ctx := context.Background()

	drawn, _, err := f.DrawRoute(ctx, lahoreSrc, lahoreDst, domain.TravelModeDriving, domain.DefaultRenderConfig())
	require.NoError(t, err)

	_, _, err = f.DrawRoute(ctx, lahoreSrc, lahoreDst, domain.TravelModeWalking, domain.DefaultRenderConfig())
	require.ErrorIs(t, err, domain.ErrNoRouteFound)

	current, ok := f.CurrentPath()
	require.True(t, ok)
	assert.Equal(t, drawn.ID, current.ID)
}

func TestDrawRouteRejectsBadConfigBeforeFetching(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	f, _ := newTestFacade(t, client, 0)

	cfg := domain.DefaultRenderConfig()
	cfg.Style.Color = "orange"

	_, _, err := f.DrawRoute(context.Background(), lahoreSrc, lahoreDst, domain.TravelModeDriving, cfg)
	require.ErrorIs(t, err, domain.ErrInvalidRenderConfig)
	assert.Equal(t, 0, client.Calls())
}

func TestRemovePaths(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	f, renderer := newTestFacade(t, client, 0)
	ctx := context.Background()

	f.RemovePaths(ctx)

	path, _, err := f.DrawRoute(ctx, lahoreSrc, lahoreDst, domain.TravelModeDriving, domain.DefaultRenderConfig())
	require.NoError(t, err)

	f.RemovePaths(ctx)
	f.RemovePaths(ctx)

	_, ok := f.CurrentPath()
	assert.False(t, ok)
	assert.Equal(t, []string{path.ID}, renderer.cleared)
}

func TestAsyncDelivery(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	f, _ := newTestFacade(t, client, 0)

	select {
	case out, ok := <-f.GetTravelEstimationsAsync(lahoreSrc, lahoreDst, domain.TravelModeDriving):
		require.True(t, ok)
		require.NoError(t, out.Err)
		assert.Equal(t, 2100, out.Estimate.DistanceValue)
	case <-time.After(time.Second):
		t.Fatal("estimate not delivered")
	}

	select {
	case out, ok := <-f.DrawRouteAsync(lahoreSrc, lahoreDst, domain.TravelModeDriving, domain.DefaultRenderConfig()):
		require.True(t, ok)
		require.NoError(t, out.Err)
		assert.Len(t, out.Path.Points, 2)
		assert.Equal(t, 420, out.Estimate.DurationValue)
	case <-time.After(time.Second):
		t.Fatal("draw not delivered")
	}
}

func TestAsyncErrorIsDelivered(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways("", &domain.TransportError{Op: "fetch directions", StatusCode: 502})
	f, _ := newTestFacade(t, client, 0)

	out, ok := <-f.GetTravelEstimationsAsync(lahoreSrc, lahoreDst, domain.TravelModeDriving)
	require.True(t, ok)
	assert.ErrorIs(t, out.Err, domain.ErrTransport)
}

func TestCloseSuppressesLateResults(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	client.Gate = make(chan struct{})
	f, renderer := newTestFacade(t, client, 0)

	draws := f.DrawRouteAsync(lahoreSrc, lahoreDst, domain.TravelModeDriving, domain.DefaultRenderConfig())
	estimates := f.GetTravelEstimationsAsync(lahoreSrc, lahoreDst, domain.TravelModeDriving)

	require.Eventually(t, func() bool { return client.Calls() == 2 }, time.Second, 5*time.Millisecond)

	f.Close()
	close(client.Gate)

	_, ok := <-draws
	assert.False(t, ok, "draw outcome delivered after Close")
	_, ok = <-estimates
	assert.False(t, ok, "estimate outcome delivered after Close")

	assert.Empty(t, renderer.rendered)
	_, drawn := f.CurrentPath()
	assert.False(t, drawn)
}

func TestCallsAfterClose(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	f, _ := newTestFacade(t, client, 0)
	f.Close()
	f.Close()

	_, err := f.GetTravelEstimations(context.Background(), lahoreSrc, lahoreDst, domain.TravelModeDriving)
	assert.ErrorIs(t, err, ErrFacadeClosed)

	_, _, err = f.DrawRoute(context.Background(), lahoreSrc, lahoreDst, domain.TravelModeDriving, domain.DefaultRenderConfig())
	assert.ErrorIs(t, err, ErrFacadeClosed)

	_, ok := <-f.DrawRouteAsync(lahoreSrc, lahoreDst, domain.TravelModeDriving, domain.DefaultRenderConfig())
	assert.False(t, ok)

	assert.Equal(t, 0, client.Calls())
}

func TestMaxInFlightBoundsProviderCalls(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	client.Gate = make(chan struct{})
	f, _ := newTestFacade(t, client, 1)

	first := f.GetTravelEstimationsAsync(lahoreSrc, lahoreDst, domain.TravelModeDriving)
	second := f.GetTravelEstimationsAsync(lahoreSrc, lahoreDst, domain.TravelModeWalking)

	require.Eventually(t, func() bool { return client.Calls() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, client.Calls())

	close(client.Gate)

	for _, ch := range []<-chan EstimateOutcome{first, second} {
		out, ok := <-ch
		require.True(t, ok)
		require.NoError(t, out.Err)
	}
	assert.Equal(t, 2, client.Calls())
}

func TestRedrawClearsPreviousPath(t *testing.T) {
	client := directions.NewMockDirectionsClient().ReplyAlways(oneRouteBody, nil)
	f, renderer := newTestFacade(t, client, 0)
	ctx := context.Background()

	first, _, err := f.DrawRoute(ctx, lahoreSrc, lahoreDst, domain.TravelModeDriving, domain.DefaultRenderConfig())
	require.NoError(t, err)
	second, _, err := f.DrawRoute(ctx, lahoreDst, lahoreSrc, domain.TravelModeDriving, domain.DefaultRenderConfig())
	require.NoError(t, err)

	f.RemovePaths(ctx)

	assert.Equal(t, []string{first.ID, second.ID}, renderer.cleared)
}

func TestDeliverAfterCloseDropsResult(t *testing.T) {
	client := directions.NewMockDirectionsClient()
	f, _ := newTestFacade(t, client, 0)

	out := make(chan EstimateOutcome, 1)
	require.True(t, deliver(f, out, EstimateOutcome{}))
	<-out

	f.Close()

	assert.False(t, deliver(f, out, EstimateOutcome{}))
	assert.Empty(t, out)
}
