// Package feehistory fetches the hourly cumulative fee series from the
// configured analytics source. The endpoint and credential are configuration,
// never literals.
package feehistory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"earnapi/internal/yield"
)

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fee history API error (%d): %s", e.Status, e.Body)
}

type Client struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client, host, apiKey string) *Client {
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

type sampleWire struct {
	Timestamp     int64   `json:"ts"`
	CumulativeUsd float64 `json:"cumulative_fees_usd"`
}

// GetHourlySeries returns the trailing fee series for a pool, oldest first.
func (c *Client) GetHourlySeries(ctx context.Context, poolID string, hours int) ([]yield.FeeSample, error) {
	if poolID == "" {
		return nil, fmt.Errorf("pool id is required")
	}
	query := url.Values{}
	query.Set("interval", "1h")
	if hours > 0 {
		query.Set("limit", strconv.Itoa(hours))
	}
	body, err := c.doRequest(ctx, "/pools/"+url.PathEscape(poolID)+"/fees", query)
	if err != nil {
		return nil, err
	}
	var wire struct {
		Data []sampleWire `json:"data"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode fee series: %w", err)
	}
	series := make([]yield.FeeSample, 0, len(wire.Data))
	for _, s := range wire.Data {
		series = append(series, yield.FeeSample{Timestamp: s.Timestamp, CumulativeUsd: s.CumulativeUsd})
	}
	return series, nil
}
