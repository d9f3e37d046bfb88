package services

import (
	"context"
	"directions-route-service/internal/domain"
	"sync"
)

var (
	lahoreSrc = domain.NewCoordinate(31.490127, 74.316971)
	lahoreDst = domain.NewCoordinate(31.474316, 74.316112)
)

// One route, one leg, two steps; trimmed from a real Directions response.
const oneRouteBody = `{
  "geocoded_waypoints": [{"geocoder_status": "OK", "place_id": "ChIJ1", "types": ["street_address"]}],
  "routes": [{
    "bounds": {"northeast": {"lat": 31.490127, "lng": 74.316971}, "southwest": {"lat": 31.474316, "lng": 74.316112}},
    "copyrights": "Map data ©2026",
    "summary": "Ferozepur Rd",
    "legs": [{
      "distance": {"text": "2.1 km", "value": 2100},
      "duration": {"text": "7 mins", "value": 420},
      "start_address": "Gulberg III, Lahore",
      "end_address": "Model Town, Lahore",
      "start_location": {"lat": 31.490127, "lng": 74.316971},
      "end_location": {"lat": 31.474316, "lng": 74.316112},
      "steps": [
        {
          "distance": {"text": "1.2 km", "value": 1200},
          "duration": {"text": "4 mins", "value": 240},
          "start_location": {"lat": 31.490127, "lng": 74.316971},
          "end_location": {"lat": 31.48, "lng": 74.3165},
          "html_instructions": "Head <b>south</b>",
          "polyline": {"points": "a~l~Fjk~uOwHJy@P"},
          "travel_mode": "DRIVING"
        },
        {
          "distance": {"text": "0.9 km", "value": 900},
          "duration": {"text": "3 mins", "value": 180},
          "start_location": {"lat": 31.48, "lng": 74.3165},
          "end_location": {"lat": 31.474316, "lng": 74.316112},
          "html_instructions": "Turn <b>left</b>",
          "maneuver": "turn-left",
          "polyline": {"points": "cxl~Fjk~uO"},
          "travel_mode": "DRIVING"
        }
      ],
      "traffic_speed_entry": [],
      "via_waypoint": []
    }],
    "overview_polyline": {"points": "a~l~Fjk~uOwHJy@P"},
    "warnings": [],
    "waypoint_order": []
  }],
  "status": "OK"
}`

const zeroResultsBody = `{"routes": [], "status": "ZERO_RESULTS"}`

// recordingRenderer is an in-memory PathRenderer.
type recordingRenderer struct {
	mu       sync.Mutex
	rendered []domain.RenderablePath
	cleared  []string
	err      error
}

func (r *recordingRenderer) Render(ctx context.Context, path domain.RenderablePath) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered = append(r.rendered, path)
	return r.err
}

func (r *recordingRenderer) Clear(ctx context.Context, pathID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, pathID)
	return r.err
}

// memoryCache is an in-memory DirectionsCache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	getErr  error
	putErr  error
	puts    int
}

func newMemoryCache() *memoryCache { return &memoryCache{entries: map[string]string{}} }

func (m *memoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) Put(ctx context.Context, key, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[key] = raw
	return nil
}
