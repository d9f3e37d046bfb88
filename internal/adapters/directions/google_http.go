package directions

import (
	"context"
	"directions-route-service/internal/domain"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Upper bound on a directions body; real responses are far smaller.
const maxBodyBytes = 8 << 20

// Cap on how much of an error body is kept for diagnostics.
const maxErrorBody = 1024

func (g *GoogleDirectionsClient) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do executes req once. Connection failures, non-2xx statuses, empty
// bodies and bodies over the size cap surface as *domain.TransportError.
func (g *GoogleDirectionsClient) do(req *http.Request) (string, error) {
	resp, err := g.session.Do(req)
	if err != nil {
		return "", &domain.TransportError{Op: "execute directions request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &domain.TransportError{
			Op:         "execute directions request",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBody+1))
	if err != nil {
		return "", &domain.TransportError{Op: "read directions body", Err: err}
	}
	if int64(len(b)) > g.maxBody {
		return "", &domain.TransportError{
			Op:  "read directions body",
			Err: fmt.Errorf("body exceeds %d bytes", g.maxBody),
		}
	}

	body := string(b)
	if strings.TrimSpace(body) == "" {
		return "", &domain.TransportError{Op: "read directions body", Err: io.ErrUnexpectedEOF}
	}

	return body, nil
}
