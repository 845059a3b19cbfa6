// Package discovery queries OpenStreetMap for businesses near a point,
// deduplicates them, runs contact enrichment per candidate, scores them
// against the freelancer's niche and paginates the ranked result.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultOverpassURL = "https://overpass-api.de/api/interpreter"
	overpassTimeout    = 35 * time.Second
	overpassUserAgent  = "freelead/1.0 (business lead finder)"
)

// Place is a raw OpenStreetMap element returned by Overpass.
type Place struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Name returns the display name of the place, preferring the name tag, then
// brand and operator tags.
func (p Place) Name() string {
	for _, key := range []string{"name", "brand:name", "operator"} {
		if value := strings.TrimSpace(p.Tags[key]); value != "" {
			return value
		}
	}
	return ""
}

// HTTPClient abstracts the outbound HTTP call for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OverpassClient queries the public Overpass API.
type OverpassClient struct {
	client  HTTPClient
	baseURL string
}

// NewOverpassClient builds an Overpass client. Empty baseURL selects the
// public interpreter endpoint; a nil client falls back to a default
// http.Client with the Overpass timeout.
func NewOverpassClient(client HTTPClient, baseURL string) *OverpassClient {
	if client == nil {
		client = &http.Client{Timeout: overpassTimeout}
	}
	if baseURL == "" {
		baseURL = defaultOverpassURL
	}
	return &OverpassClient{client: client, baseURL: baseURL}
}

// Search returns OSM nodes around the coordinate matching any of the given
// tag filters (e.g. "amenity=restaurant").
func (c *OverpassClient) Search(ctx context.Context, lat, lon float64, radius int, tags []string) ([]Place, error) {
	var nodes strings.Builder
	for _, tag := range tags {
		key, value, ok := strings.Cut(tag, "=")
		if !ok {
			continue
		}
		fmt.Fprintf(&nodes, `node(around:%d,%f,%f)["%s"="%s"];`, radius, lat, lon, key, value)
	}

	query := fmt.Sprintf("[out:json][timeout:30];(%s);out body;", nodes.String())
	body := strings.NewReader("data=" + url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", overpassUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass status %d", resp.StatusCode)
	}

	var payload struct {
		Elements []Place `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	return payload.Elements, nil
}
