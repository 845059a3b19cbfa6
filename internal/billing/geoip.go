package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const geoLookupTimeout = 5 * time.Second

// HTTPClient abstracts the transport so lookups can be stubbed in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeoDetector resolves a caller's country from the request IP using the
// ipapi.co service. Lookups always resolve to a supported country so the
// price table has an entry for whatever comes back.
type GeoDetector struct {
	httpClient HTTPClient
}

func NewGeoDetector(client HTTPClient) *GeoDetector {
	if client == nil {
		client = &http.Client{Timeout: geoLookupTimeout}
	}
	return &GeoDetector{httpClient: client}
}

// DetectCountry returns the ISO country code for ip, or DefaultCountry when
// the lookup fails or the country has no price entry.
func (g *GeoDetector) DetectCountry(ctx context.Context, ip string) string {
	if ip == "" {
		return DefaultCountry
	}

	ctx, cancel := context.WithTimeout(ctx, geoLookupTimeout)
	defer cancel()

	url := fmt.Sprintf("https://ipapi.co/%s/json/", ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return DefaultCountry
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return DefaultCountry
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DefaultCountry
	}

	var body struct {
		CountryCode string `json:"country_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return DefaultCountry
	}
	if !SupportedCountry(body.CountryCode) {
		return DefaultCountry
	}
	return body.CountryCode
}
