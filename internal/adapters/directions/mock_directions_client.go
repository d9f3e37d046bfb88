package directions

import (
	"context"
	"directions-route-service/internal/domain"
	"fmt"
	"sync"
)

// MockReply is a scripted FetchRaw result for one request.
type MockReply struct {
	Origin, Destination domain.Coordinate
	Mode                domain.TravelMode
	Body                string
	Err                 error
}

// MockDirectionsClient is a scripted, in-memory DirectionsClient.
// When Gate is set every call blocks until Gate is closed or ctx ends.
type MockDirectionsClient struct {
	Gate chan struct{}

	mu       sync.Mutex
	replies  map[string]MockReply
	fallback *MockReply
	calls    int
}

func NewMockDirectionsClient(replies ...MockReply) *MockDirectionsClient {
	m := &MockDirectionsClient{replies: make(map[string]MockReply, len(replies))}
	for _, r := range replies {
		m.replies[mockKey(r.Origin, r.Destination, r.Mode)] = r
	}
	return m
}

// ReplyAlways answers every unscripted request with body/err.
func (m *MockDirectionsClient) ReplyAlways(body string, err error) *MockDirectionsClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &MockReply{Body: body, Err: err}
	return m
}

func (m *MockDirectionsClient) FetchRaw(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
	apiKey string,
) (string, error) {
	key := mockKey(origin, destination, mode)

	m.mu.Lock()
	m.calls++
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", &domain.TransportError{Op: "mock fetch", Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.replies[key]; ok {
		return r.Body, r.Err
	}
	if m.fallback != nil {
		return m.fallback.Body, m.fallback.Err
	}

	return "", &domain.TransportError{Op: "mock fetch", Err: fmt.Errorf("missing reply for %q", key)}
}

// Calls reports how many FetchRaw calls were made.
func (m *MockDirectionsClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func mockKey(origin, destination domain.Coordinate, mode domain.TravelMode) string {
	return origin.String() + "|" + destination.String() + "|" + mode.String()
}
