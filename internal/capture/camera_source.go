package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// CameraSource grabs one snapshot from a network camera's still-image
// endpoint.
type CameraSource struct {
	snapshotURL string
	httpClient  *http.Client
}

func NewCameraSource(snapshotURL string, httpClient *http.Client) *CameraSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CameraSource{
		snapshotURL: snapshotURL,
		httpClient:  httpClient,
	}
}

func (s *CameraSource) Capture(ctx context.Context) (*Frame, error) {
	if s.snapshotURL == "" {
		return nil, fmt.Errorf("%w: camera snapshot URL is not configured", ErrNoFrame)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.snapshotURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid camera snapshot URL: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: camera not reachable: %v", ErrNoFrame, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: camera returned status %d", ErrNoFrame, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return DecodeFrame(data, "camera:"+s.snapshotURL)
}
