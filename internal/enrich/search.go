package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	searchTimeout   = 8 * time.Second
	searchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	searchEndpoint  = "https://www.google.com/search"
)

// com.br before com so the longer TLD wins the match.
var websitePattern = regexp.MustCompile(`(?i)https?://(?:www\.)?[a-z0-9\-]+\.(?:com\.br|com|net|org|br)`)

// Hosts that must never be mistaken for the business's own website.
var excludedWebsiteHosts = []string{"google", "facebook", "instagram", "linkedin"}

// SearchResult carries the channels recovered from a search-engine result
// page when the business has no known website.
type SearchResult struct {
	Social  map[string]string
	Website string
}

// WebSearcher recovers social profiles and a candidate website for
// businesses without a known site by scanning public search results.
type WebSearcher struct {
	client   HTTPClient
	endpoint string
	timeout  time.Duration
}

// NewWebSearcher builds a search-engine fallback lookup. A nil client falls
// back to a default http.Client bounded by the search timeout.
func NewWebSearcher(client HTTPClient) *WebSearcher {
	if client == nil {
		client = &http.Client{Timeout: searchTimeout}
	}
	return &WebSearcher{client: client, endpoint: searchEndpoint, timeout: searchTimeout}
}

// Lookup searches for "<name> <city> instagram facebook linkedin" and
// extracts social links plus the first non-platform website candidate.
// Any fetch failure soft-fails to an empty result.
func (w *WebSearcher) Lookup(ctx context.Context, name, city string) (SearchResult, error) {
	empty := SearchResult{Social: map[string]string{}}

	query := url.QueryEscape(name + " " + city + " instagram facebook linkedin")

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.endpoint+"?q="+query, nil)
	if err != nil {
		return empty, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return empty, fmt.Errorf("search fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("read search body: %w", err)
	}
	html := string(body)

	return SearchResult{
		Social:  extractAllSocialLinks(html),
		Website: firstBusinessWebsite(html),
	}, nil
}

func firstBusinessWebsite(html string) string {
	for _, candidate := range websitePattern.FindAllString(html, -1) {
		if isExcludedWebsite(candidate) {
			continue
		}
		return candidate
	}
	return ""
}

func isExcludedWebsite(candidate string) bool {
	lowered := strings.ToLower(candidate)
	for _, host := range excludedWebsiteHosts {
		if strings.Contains(lowered, host) {
			return true
		}
	}
	return false
}
