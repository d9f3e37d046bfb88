package directions

import (
	"context"
	"directions-route-service/internal/domain"
	"directions-route-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"
	DefaultTimeout = 10 * time.Second

	directionsPath = "/directions/json"
)

// GoogleDirectionsClient implements DirectionsClient against the
// Google Maps Directions API.
//
// Each FetchRaw call performs exactly one HTTP attempt; retries are
// left to callers. The client is safe for concurrent use.
type GoogleDirectionsClient struct {
	session *http.Client
	timeout time.Duration
	baseURL string
	maxBody int64
	logger  *zap.Logger
}

type Option func(*GoogleDirectionsClient)

// WithHTTPClient replaces the default http.Client. The client is never
// mutated; a WithTimeout option applies to a copy of it.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GoogleDirectionsClient) {
		if c != nil {
			g.session = c
		}
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(g *GoogleDirectionsClient) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the transport timeout, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(g *GoogleDirectionsClient) { g.timeout = d }
}

func NewGoogleDirectionsClient(logger *zap.Logger, opts ...Option) *GoogleDirectionsClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &GoogleDirectionsClient{
		session: &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		maxBody: maxBodyBytes,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.timeout > 0 {
		session := *client.session
		session.Timeout = client.timeout
		client.session = &session
	}

	return client
}

// FetchRaw returns the raw Directions JSON for one origin/destination pair.
func (g *GoogleDirectionsClient) FetchRaw(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
	apiKey string,
) (_ string, err error) {
	defer obs.Time(ctx, g.logger, "google.FetchRaw")(&err)

	endpoint := g.buildURL(origin, destination, mode, apiKey)

	req, err := g.newRequest(ctx, endpoint)
	if err != nil {
		return "", &domain.TransportError{Op: "build directions request", Err: err}
	}

	g.logger.Debug("directions request",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("url", redactKey(req.URL)),
	)

	body, err := g.do(req)
	if err != nil {
		return "", err
	}

	return body, nil
}

// buildURL embeds origin/destination as "lat,lng", the lowercase mode,
// metric units and the API key.
func (g *GoogleDirectionsClient) buildURL(
	origin domain.Coordinate,
	destination domain.Coordinate,
	mode domain.TravelMode,
	apiKey string,
) string {
	q := url.Values{}
	q.Set("origin", origin.String())
	q.Set("destination", destination.String())
	q.Set("sensor", "false")
	q.Set("units", "metric")
	q.Set("mode", strings.ToLower(mode.String()))
	q.Set("key", apiKey)

	return g.baseURL + directionsPath + "?" + q.Encode()
}

func redactKey(u *url.URL) string {
	c := *u
	q := c.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
	}
	c.RawQuery = q.Encode()
	return c.String()
}
