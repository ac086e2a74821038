// Package calendar fetches economic-calendar events and normalizes the
// inconsistent field names upstream feeds use into one shape.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/pkg/httputil"
	"github.com/rfarias/garimpo/pkg/logger"
)

// Client handles communication with the calendar feed.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a new calendar client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

var _ contracts.CalendarProvider = (*Client)(nil)

// rawEvent accepts every field-name variant the feeds have used. Pairs like
// importance/impact and event/title are mutually exclusive in practice.
type rawEvent struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Country    string `json:"country"`
	Event      string `json:"event"`
	Title      string `json:"title"`
	Importance string `json:"importance"`
	Impact     string `json:"impact"`
	Actual     string `json:"actual"`
	Forecast   string `json:"forecast"`
	Previous   string `json:"previous"`
}

// Events fetches and normalizes the feed for one country code.
func (c *Client) Events(ctx context.Context, country string) ([]contracts.CalendarEvent, error) {
	params := url.Values{}
	params.Set("country", country)
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	fullURL := fmt.Sprintf("%s/events?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var raw []rawEvent
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	events := make([]contracts.CalendarEvent, 0, len(raw))
	for _, ev := range raw {
		normalized := normalize(ev)
		if normalized.Event == "" || normalized.Date == "" {
			continue
		}
		events = append(events, normalized)
	}

	c.logger.WithFields(map[string]interface{}{
		"country": country,
		"count":   len(events),
	}).Debug("Fetched calendar events")

	return events, nil
}

// normalize maps one raw feed entry to the canonical event shape.
func normalize(raw rawEvent) contracts.CalendarEvent {
	name := raw.Event
	if name == "" {
		name = raw.Title
	}

	importance := raw.Importance
	if importance == "" {
		importance = raw.Impact
	}

	return contracts.CalendarEvent{
		Date:       raw.Date,
		Time:       raw.Time,
		Country:    strings.ToUpper(raw.Country),
		Event:      name,
		Importance: normalizeImportance(importance),
		Actual:     raw.Actual,
		Forecast:   raw.Forecast,
		Previous:   raw.Previous,
	}
}

// normalizeImportance folds the numeric and star-based scales some feeds use
// into low/medium/high.
func normalizeImportance(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high", "3", "***":
		return "high"
	case "medium", "moderate", "2", "**":
		return "medium"
	case "low", "1", "*":
		return "low"
	default:
		return "low"
	}
}
