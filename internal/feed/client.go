// internal/feed/client.go
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/yackko/neo-analyzer/internal/config"
)

// maxBodyBytes bounds a single feed response. One day of NeoWs data is well
// under a megabyte.
const maxBodyBytes = 16 << 20

var ErrMissingAPIKey = errors.New("API key is missing")

// Client retrieves one day of the NeoWs feed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewClient returns a Client for the feed endpoint at baseURL.
func NewClient(logger log.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.With(logger, "component", "feed"),
	}
}

// Fetch returns the raw JSON feed for date (YYYY-MM-DD).
func (c *Client) Fetch(ctx context.Context, date, apiKey string) ([]byte, error) {
	if _, err := time.Parse(config.DateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid date '%s'. Use YYYY-MM-DD. (Details: %w)", date, err)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("start_date", date)
	q.Set("end_date", date)
	q.Set("api_key", apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	level.Debug(c.logger).Log("msg", "fetching feed", "date", date, "host", u.Host)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed request for %s returned %s", date, resp.Status)
	}
	level.Debug(c.logger).Log("msg", "feed fetched", "date", date, "bytes", len(body))
	return body, nil
}
