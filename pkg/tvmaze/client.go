// Package tvmaze fetches the daily web-television schedule from the TVMaze
// API and persists it as per-day JSON files.
package tvmaze

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wdm0006/tvetl/pkg/config"
	"github.com/wdm0006/tvetl/pkg/io/jsonio"
)

const (
	schedulePath = "/schedule/web"
	userAgent    = "tvetl/1.0"
)

// Record is one schedule entry: an episode with its show embedded.
type Record = jsonio.Record

// Fetcher returns the schedule records for one day.
type Fetcher interface {
	Fetch(ctx context.Context, date time.Time) []Record
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// Fetch requests the web schedule for date. Any failure is logged and yields
// an empty result.
func (c *Client) Fetch(ctx context.Context, date time.Time) []Record {
	day := date.Format(config.DateLayout)
	records, err := c.fetch(ctx, day)
	if err != nil {
		c.logger.Error("fetch schedule failed", zap.String("date", day), zap.Error(err))
		return []Record{}
	}
	c.logger.Debug("fetched schedule", zap.String("date", day), zap.Int("records", len(records)))
	return records
}

func (c *Client) fetch(ctx context.Context, day string) ([]Record, error) {
	u := c.baseURL + schedulePath + "?" + url.Values{"date": {day}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("request failed: %s", res.Status)
	}
	var records []Record
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
