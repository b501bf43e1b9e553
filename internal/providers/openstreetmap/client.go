package openstreetmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
// and https://nominatim.org/release-docs/develop/api/Reverse/
// Sample requests:
// - https://nominatim.openstreetmap.org/search?q=istanbul&format=json&limit=10
// - https://nominatim.openstreetmap.org/reverse?lat=41.0082&lon=28.9784&format=json
const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// Nominatim payloads are small; anything past this is not a geocoding response
	maxResponseBytes = 4 << 20
)

// ErrNotFound is returned by Reverse when Nominatim has no place for the coordinates
var ErrNotFound = errors.New("no place found")

// SearchParams are the query parameters of a /search request
type SearchParams struct {
	Query       string
	Limit       int
	CountryCode string
	Language    string
}

// ReverseParams are the query parameters of a /reverse request
type ReverseParams struct {
	Latitude  float64
	Longitude float64
	Language  string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		logger:     logger.With("component", "nominatim-client"),
	}
}

// Search looks up places matching a free-text query, in provider relevance order
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Place, error) {
	q := url.Values{}
	q.Set("q", params.Query)
	q.Set("format", "json")
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.CountryCode != "" {
		q.Set("countrycodes", params.CountryCode)
	}
	if params.Language != "" {
		q.Set("accept-language", params.Language)
	}
	q.Set("addressdetails", "1")
	q.Set("extratags", "0")
	q.Set("namedetails", "0")

	body, err := c.get(ctx, "/search", q)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// A malformed item only costs that item
	places := make([]Place, 0, len(items))
	for i, item := range items {
		var place Place
		if err := json.Unmarshal(item, &place); err != nil {
			c.logger.Debug("skipping undecodable search item", "index", i, "error", err)
			continue
		}
		places = append(places, place)
	}

	return places, nil
}

// Reverse looks up the place closest to a coordinate
func (c *Client) Reverse(ctx context.Context, params ReverseParams) (*Place, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(params.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(params.Longitude, 'f', -1, 64))
	q.Set("format", "json")
	if params.Language != "" {
		q.Set("accept-language", params.Language)
	}
	q.Set("addressdetails", "1")

	body, err := c.get(ctx, "/reverse", q)
	if err != nil {
		return nil, err
	}

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, apiErr.Error)
	}

	var place Place
	if err := json.Unmarshal(body, &place); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &place, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim usage policy requires an identifying User-Agent
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("nominatim request", "path", path, "params", query.Encode())

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}
