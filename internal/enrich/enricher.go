package enrich

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/tofind/freelead/internal/entity"
)

const (
	mapsSearchURL   = "https://www.google.com/maps/search/"
	googleSearchURL = "https://www.google.com/search?q="
)

// Enricher is the entry point of the contact-enrichment pipeline. Its
// EnrichContact contract is total: every internal failure degrades to a
// partial or empty profile, never an error.
type Enricher struct {
	scraper  *Scraper
	searcher *WebSearcher
}

// NewEnricher wires the orchestrator with its website scraper and search
// fallback. A nil client gives each sub-lookup its own default HTTP client.
func NewEnricher(client HTTPClient) *Enricher {
	return &Enricher{
		scraper:  NewScraper(client),
		searcher: NewWebSearcher(client),
	}
}

// EnrichContact discovers contact channels for a business. It performs at
// most one outbound fetch: a website scrape when the business has an http
// website, otherwise a search-engine lookup. The Google Maps link is always
// attached, and a last-resort search link is set exactly when no direct
// channel was found.
func (e *Enricher) EnrichContact(ctx context.Context, business entity.BusinessQuery) entity.ContactProfile {
	profile := entity.ContactProfile{
		Website: business.Website,
		Social:  emptySocial(),
	}

	if business.Website != "" && strings.HasPrefix(business.Website, "http") {
		scraped, err := e.scraper.Scrape(ctx, business.Website)
		if err != nil {
			log.Printf("enrich: website scrape failed business=%q: %v", business.Name, err)
		} else {
			profile.Email = scraped.Email
			profile.Phone = scraped.Phone
			profile.WhatsApp = scraped.WhatsApp
			profile.ContactForm = scraped.ContactForm
			mergeSocial(profile.Social, scraped.Social)
		}
	} else {
		found, err := e.searcher.Lookup(ctx, business.Name, business.City)
		if err != nil {
			log.Printf("enrich: search fallback failed business=%q: %v", business.Name, err)
		} else {
			mergeSocial(profile.Social, found.Social)
			if found.Website != "" {
				profile.Website = found.Website
			}
		}
	}

	profile.GoogleMaps = MapsLink(business.Name, business.City)

	if !profile.HasDirectChannel() {
		profile.Fallback = fallbackSearchLink(business.Name, business.City)
	}

	return profile
}

// MapsLink builds the deterministic Google Maps search URL for a business.
// No network call is involved.
func MapsLink(name, city string) string {
	return mapsSearchURL + url.PathEscape(strings.TrimSpace(name+" "+city))
}

func fallbackSearchLink(name, city string) string {
	return googleSearchURL + url.QueryEscape(strings.TrimSpace(name+" "+city)+" contact")
}

func emptySocial() map[string]string {
	social := make(map[string]string, len(Platforms))
	for _, platform := range Platforms {
		social[platform] = ""
	}
	return social
}

func mergeSocial(dst, src map[string]string) {
	for platform, link := range src {
		if link != "" {
			dst[platform] = link
		}
	}
}
