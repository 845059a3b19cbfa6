package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	scrapeTimeout   = 10 * time.Second
	scrapeUserAgent = "Mozilla/5.0 (compatible; FreeLead/1.0)"
)

// HTTPClient abstracts HTTP requests so external fetches can be stubbed in
// tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ScrapeResult holds the contact channels recovered from a single website
// fetch.
type ScrapeResult struct {
	Email       string
	Phone       string
	WhatsApp    string
	Social      map[string]string
	ContactForm string
}

// Scraper fetches business websites and extracts contact channels from the
// response body.
type Scraper struct {
	client  HTTPClient
	timeout time.Duration
}

// NewScraper builds a website scraper. A nil client falls back to a default
// http.Client bounded by the scrape timeout.
func NewScraper(client HTTPClient) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: scrapeTimeout}
	}
	return &Scraper{client: client, timeout: scrapeTimeout}
}

// Scrape issues a single GET against the website and extracts email, phone,
// WhatsApp, social links and a contact-form URL. Transport failures and
// timeouts are returned to the caller; the orchestrator recovers them.
func (s *Scraper) Scrape(ctx context.Context, website string) (ScrapeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, website, nil)
	if err != nil {
		return ScrapeResult{}, fmt.Errorf("build scrape request: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return ScrapeResult{}, fmt.Errorf("fetch website: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ScrapeResult{}, fmt.Errorf("read website body: %w", err)
	}
	html := string(body)

	signals := ExtractContactSignals(html)
	result := ScrapeResult{
		Email:    signals.Email,
		Phone:    signals.Phone,
		WhatsApp: signals.WhatsApp,
		Social:   extractAllSocialLinks(html),
	}

	if doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html)); parseErr == nil {
		base, urlErr := url.Parse(website)
		if urlErr != nil {
			base = nil
		}
		result.ContactForm = FindContactPage(doc, base)
	}

	return result, nil
}

// extractAllSocialLinks probes the fixed platform set. Twitter is resolved
// as twitter.com first with an x.com fallback.
func extractAllSocialLinks(html string) map[string]string {
	social := make(map[string]string, len(Platforms))
	for _, platform := range Platforms {
		switch platform {
		case "twitter":
			link := ExtractSocialLink(html, "twitter.com")
			if link == "" {
				link = ExtractSocialLink(html, "x.com")
			}
			social[platform] = link
		default:
			social[platform] = ExtractSocialLink(html, platform+".com")
		}
	}
	return social
}
