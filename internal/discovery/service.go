package discovery

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"

	"github.com/tofind/freelead/internal/dto"
	"github.com/tofind/freelead/internal/entity"
)

const (
	// PageSize is the fixed pagination window for ranked results.
	PageSize = 5

	maxCandidates        = 50
	maxConcurrentEnrich  = 5
	defaultRadiusMeters  = 5000
	defaultPhoneRegion   = "BR"
	maxPhoneLength       = 15
	newBusinessThreshold = 3
)

var (
	nonPhoneChars = regexp.MustCompile(`[^\d+]`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9]`)
)

// PlaceSource finds raw business candidates around a coordinate.
type PlaceSource interface {
	Search(ctx context.Context, lat, lon float64, radius int, tags []string) ([]Place, error)
}

// ContactEnricher is the sole entry point discovery consumes from the
// enrichment pipeline. Its contract is total: it never fails.
type ContactEnricher interface {
	EnrichContact(ctx context.Context, business entity.BusinessQuery) entity.ContactProfile
}

// PitchWriter generates an outreach pitch for a business. Optional; failures
// fall back to a generic description.
type PitchWriter interface {
	Pitch(ctx context.Context, businessName, category, niche string) (string, error)
}

// ProfileCache stores enrichment results keyed by business identity.
// Optional; a nil cache disables caching.
type ProfileCache interface {
	GetProfile(ctx context.Context, name, city string) (*entity.ContactProfile, error)
	SetProfile(ctx context.Context, name, city string, profile entity.ContactProfile) error
}

// Service runs the discovery and ranking pipeline.
type Service struct {
	places   PlaceSource
	enricher ContactEnricher
	pitch    PitchWriter
	cache    ProfileCache
}

// NewService wires the discovery pipeline. pitch and cache may be nil.
func NewService(places PlaceSource, enricher ContactEnricher, pitch PitchWriter, cache ProfileCache) *Service {
	return &Service{places: places, enricher: enricher, pitch: pitch, cache: cache}
}

// Recommend searches for businesses around the requested coordinate,
// deduplicates and enriches them, ranks by niche compatibility and returns
// the requested page. A business with no discoverable contact channel is
// never dropped; it carries its fallback search link instead.
func (s *Service) Recommend(ctx context.Context, req dto.RecommendRequest) (*dto.RecommendResponse, error) {
	radius := req.Radius
	if radius <= 0 {
		radius = defaultRadiusMeters
	}
	niche := req.Niche
	if _, ok := nicheOSMTags[niche]; !ok {
		niche = DefaultNiche
	}

	places, err := s.places.Search(ctx, req.Lat, req.Lon, radius, OSMTags(niche))
	if err != nil {
		// Discovery is best-effort: an unavailable map source yields an
		// empty result set, not a request failure.
		log.Printf("discovery: overpass search failed: %v", err)
		places = nil
	}

	candidates := dedupeByName(places)
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	ranked := s.enrichAll(ctx, candidates, req, niche)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompatibilityScore > ranked[j].CompatibilityScore
	})

	page, hasMore, nextOffset := Paginate(ranked, req.Offset)

	return &dto.RecommendResponse{
		Businesses: page,
		Metadata: dto.BatchMetadata{
			TotalFound:    len(ranked),
			HasMore:       hasMore,
			NextOffset:    nextOffset,
			CurrentOffset: req.Offset,
			Radius:        radius,
			Niche:         niche,
		},
		AllBusinesses: ranked,
	}, nil
}

// Paginate slices a ranked batch into a fixed-size page.
func Paginate(all []entity.RankedBusiness, offset int) (page []entity.RankedBusiness, hasMore bool, nextOffset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(all) {
		offset = len(all)
	}

	end := offset + PageSize
	if end > len(all) {
		end = len(all)
	}

	hasMore = len(all) > offset+PageSize
	nextOffset = offset
	if hasMore {
		nextOffset = offset + PageSize
	}
	return all[offset:end], hasMore, nextOffset
}

// dedupeByName drops unnamed places and keeps the first occurrence of each
// case-normalized trimmed name.
func dedupeByName(places []Place) []Place {
	seen := make(map[string]struct{}, len(places))
	kept := make([]Place, 0, len(places))

	for _, place := range places {
		name := strings.ToLower(strings.TrimSpace(place.Name()))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		kept = append(kept, place)
	}
	return kept
}

// enrichAll runs contact enrichment for every candidate concurrently with a
// bounded number of calls in flight. Output order follows input order via an
// index-aligned join.
func (s *Service) enrichAll(ctx context.Context, candidates []Place, req dto.RecommendRequest, niche string) []entity.RankedBusiness {
	ranked := make([]entity.RankedBusiness, len(candidates))

	sem := make(chan struct{}, maxConcurrentEnrich)
	var wg sync.WaitGroup

	for i, place := range candidates {
		wg.Add(1)
		go func(idx int, p Place) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ranked[idx] = s.buildRanked(ctx, idx, p, req, niche)
		}(i, place)
	}

	wg.Wait()
	return ranked
}

func (s *Service) buildRanked(ctx context.Context, index int, place Place, req dto.RecommendRequest, niche string) entity.RankedBusiness {
	name := place.Name()
	lat, lon := place.Lat, place.Lon
	if lat == 0 && lon == 0 {
		lat, lon = req.Lat, req.Lon
	}

	phone := sanitizePhone(firstTag(place.Tags, "phone", "contact:phone"))
	email := firstTag(place.Tags, "email", "contact:email")
	if email != "" && !strings.Contains(email, "@") {
		email = ""
	}
	website := firstTag(place.Tags, "website", "url", "contact:website")
	if website != "" && !strings.HasPrefix(website, "http") {
		website = "https://" + website
	}

	city := firstTag(place.Tags, "addr:city", "addr:suburb")
	if city == "" {
		city = "Unknown"
	}
	address := buildAddress(place, lat, lon)

	profile := s.lookupProfile(ctx, entity.BusinessQuery{
		Name:    name,
		Website: website,
		City:    city,
		Address: address,
	})

	if email == "" {
		email = profile.Email
	}
	if phone == "" {
		phone = sanitizePhone(profile.Phone)
	}
	if website == "" {
		website = profile.Website
	}

	businessType := firstTag(place.Tags, "amenity", "shop", "office")
	category := Category(niche, name)
	distance := roundDistance(distanceKm(lat, lon, req.Lat, req.Lon))

	business := entity.RankedBusiness{
		ID:                 buildID(name, lat, lon, index),
		Name:               name,
		Description:        fmt.Sprintf("%s business located %.1fkm away.", category, distance),
		Address:            address,
		Distance:           distance,
		Phone:              phone,
		Email:              email,
		Website:            website,
		Social:             profile.Social,
		ContactForm:        profile.ContactForm,
		ContactFallback:    profile.Fallback,
		GoogleMaps:         profile.GoogleMaps,
		Category:           category,
		CompatibilityScore: CompatibilityScore(niche, businessType, name),
		IsNew:              index < newBusinessThreshold,
	}

	if s.pitch != nil {
		if pitch, err := s.pitch.Pitch(ctx, name, category, niche); err == nil && pitch != "" {
			business.Description = pitch
		}
	}

	return business
}

func (s *Service) lookupProfile(ctx context.Context, query entity.BusinessQuery) entity.ContactProfile {
	if s.cache != nil {
		if cached, err := s.cache.GetProfile(ctx, query.Name, query.City); err == nil && cached != nil {
			return *cached
		}
	}

	profile := s.enricher.EnrichContact(ctx, query)

	if s.cache != nil {
		if err := s.cache.SetProfile(ctx, query.Name, query.City, profile); err != nil {
			log.Printf("discovery: cache write failed business=%q: %v", query.Name, err)
		}
	}
	return profile
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(tags[key]); value != "" {
			return value
		}
	}
	return ""
}

func buildAddress(place Place, lat, lon float64) string {
	street := strings.TrimSpace(place.Tags["addr:street"])
	city := firstTag(place.Tags, "addr:city", "addr:suburb")
	postcode := strings.TrimSpace(place.Tags["addr:postcode"])

	if street == "" && city == "" {
		return fmt.Sprintf("Near %.4f, %.4f", lat, lon)
	}

	var b strings.Builder
	b.WriteString(street)
	if street != "" && city != "" {
		b.WriteString(", ")
	}
	b.WriteString(city)
	if postcode != "" {
		b.WriteString(" - " + postcode)
	}
	return b.String()
}

// distanceKm approximates the distance between two coordinates with a flat
// projection (111 km per degree of latitude, 85 per degree of longitude),
// adequate for city-scale radii.
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat1 - lat2) * 111
	dLon := (lon1 - lon2) * 85
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

func roundDistance(km float64) float64 {
	return math.Round(km*10) / 10
}

func buildID(name string, lat, lon float64, index int) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "_")
	return fmt.Sprintf("%s_%.6f_%.6f_%d", slug, lat, lon, index)
}

// sanitizePhone keeps map-sourced and scraped phone values presentable:
// numbers phonenumbers recognises are formatted E.164, anything else is
// stripped to digits (plus a leading +) and truncated.
func sanitizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if parsed, err := phonenumbers.Parse(raw, defaultPhoneRegion); err == nil && phonenumbers.IsValidNumber(parsed) {
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}

	cleaned := nonPhoneChars.ReplaceAllString(raw, "")
	if len(cleaned) > maxPhoneLength {
		cleaned = cleaned[:maxPhoneLength]
	}
	return cleaned
}
