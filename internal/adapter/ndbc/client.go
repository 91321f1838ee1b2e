// Package ndbc fetches a station's observation feeds over HTTP.
package ndbc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/marine-obs-service/internal/config"
	"github.com/couchcryptid/marine-obs-service/internal/observability"
)

// Feed labels used in metrics and logs.
const (
	feedTabular   = "tabular"
	feedNarrative = "narrative"
)

// Client retrieves the two plaintext observation feeds for one station.
type Client struct {
	station    string
	baseURL    string
	httpClient *http.Client
	cache      *revalidationCache
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client for the configured station.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		station: cfg.StationID,
		baseURL: cfg.FeedBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		cache:   newRevalidationCache(),
		metrics: metrics,
		logger:  logger,
	}
}

// FetchTabular retrieves the station's column-formatted data feed.
func (c *Client) FetchTabular(ctx context.Context) (string, error) {
	return c.fetch(ctx, feedTabular, fmt.Sprintf("%s/data/realtime2/%s.txt", c.baseURL, c.station))
}

// FetchNarrative retrieves the station's plain-language latest-observation report.
func (c *Client) FetchNarrative(ctx context.Context) (string, error) {
	return c.fetch(ctx, feedNarrative, fmt.Sprintf("%s/data/latest_obs/%s.txt", c.baseURL, c.station))
}

func (c *Client) fetch(ctx context.Context, feed, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.cache.decorate(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(feed, "error").Inc()
		return "", fmt.Errorf("fetch %s feed: %w", feed, err)
	}
	defer resp.Body.Close()
	c.metrics.FetchDuration.WithLabelValues(feed).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusNotModified {
		c.metrics.FetchRequests.WithLabelValues(feed, "not_modified").Inc()
		if body, ok := c.cache.body(url); ok {
			c.logger.Debug("feed unchanged, served from cache", "feed", feed)
			return body, nil
		}
		// A 304 with no cached copy means our validators are stale.
		c.cache.forget(url)
		return "", fmt.Errorf("fetch %s feed: not modified but no cached copy", feed)
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.FetchRequests.WithLabelValues(feed, "error").Inc()
		return "", fmt.Errorf("fetch %s feed: status %d", feed, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(feed, "error").Inc()
		return "", fmt.Errorf("read %s feed: %w", feed, err)
	}

	body := string(data)
	c.cache.store(url, resp.Header, body)
	c.metrics.FetchRequests.WithLabelValues(feed, "success").Inc()
	return body, nil
}
