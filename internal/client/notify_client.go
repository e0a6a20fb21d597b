package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"plate-service/internal/config"
)

const (
	NotifyStatusOK      = "OK"
	NotifyStatusInvalid = "INVALID"

	// NoPlate is sent in place of a plate when none was read.
	NoPlate = "NONE"
)

// Notification is the query carried to the gate actuator.
type Notification struct {
	Plate  string
	Status string
}

type NotifyClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNotifyClient(cfg *config.Config) *NotifyClient {
	return &NotifyClient{
		baseURL: cfg.Notify.URL,
		httpClient: &http.Client{
			Timeout: cfg.Notify.Timeout,
		},
	}
}

// Notify issues a single GET <base>?plate=..&status=.. request. It does not
// retry.
func (c *NotifyClient) Notify(ctx context.Context, n Notification) error {
	if c.baseURL == "" {
		return fmt.Errorf("notify URL is not configured")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid notify URL: %w", err)
	}

	q := u.Query()
	q.Set("plate", n.Plate)
	q.Set("status", n.Status)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("actuator returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
