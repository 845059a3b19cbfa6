package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/tofind/freelead/internal/dto"
	"github.com/tofind/freelead/internal/entity"
)

type fakePlaceSource struct {
	places []Place
	err    error

	gotRadius int
	gotTags   []string
}

func (f *fakePlaceSource) Search(ctx context.Context, lat, lon float64, radius int, tags []string) ([]Place, error) {
	f.gotRadius = radius
	f.gotTags = tags
	return f.places, f.err
}

type fakeEnricher struct {
	mu      sync.Mutex
	calls   int
	profile entity.ContactProfile
}

func (f *fakeEnricher) EnrichContact(ctx context.Context, business entity.BusinessQuery) entity.ContactProfile {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.profile
}

type fakePitch struct {
	text string
}

func (f fakePitch) Pitch(ctx context.Context, businessName, category, niche string) (string, error) {
	if f.text == "" {
		return "", errors.New("no pitch")
	}
	return f.text, nil
}

type memoryCache struct {
	mu       sync.Mutex
	profiles map[string]entity.ContactProfile
	hits     int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{profiles: map[string]entity.ContactProfile{}}
}

func (m *memoryCache) GetProfile(ctx context.Context, name, city string) (*entity.ContactProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[name+"|"+city]; ok {
		m.hits++
		return &p, nil
	}
	return nil, nil
}

func (m *memoryCache) SetProfile(ctx context.Context, name, city string, profile entity.ContactProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[name+"|"+city] = profile
	return nil
}

func namedPlace(id int64, name string, extra map[string]string) Place {
	tags := map[string]string{"name": name}
	for k, v := range extra {
		tags[k] = v
	}
	return Place{ID: id, Lat: -23.55, Lon: -46.63, Tags: tags}
}

func TestRecommendDeduplicatesAndCaps(t *testing.T) {
	places := make([]Place, 0, 120)
	for i := 0; i < 60; i++ {
		places = append(places, namedPlace(int64(i), fmt.Sprintf("Business %d", i), nil))
	}
	// Duplicate names differing only in case and whitespace.
	places = append(places,
		namedPlace(200, "  business 0 ", nil),
		namedPlace(201, "BUSINESS 1", nil),
		Place{ID: 202, Lat: -23.55, Lon: -46.63, Tags: map[string]string{"amenity": "cafe"}},
	)

	enricher := &fakeEnricher{profile: entity.ContactProfile{Social: map[string]string{}}}
	svc := NewService(&fakePlaceSource{places: places}, enricher, nil, nil)

	resp, err := svc.Recommend(context.Background(), dto.RecommendRequest{Lat: -23.55, Lon: -46.63, Niche: "seo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Metadata.TotalFound != 50 {
		t.Fatalf("expected cap of 50 candidates, got %d", resp.Metadata.TotalFound)
	}
	if enricher.calls != 50 {
		t.Fatalf("expected one enrichment per candidate, got %d", enricher.calls)
	}

	names := map[string]bool{}
	for _, b := range resp.AllBusinesses {
		key := strings.ToLower(strings.TrimSpace(b.Name))
		if names[key] {
			t.Fatalf("duplicate business %q survived dedup", b.Name)
		}
		names[key] = true
	}
}

func TestRecommendRanksByScore(t *testing.T) {
	places := []Place{
		namedPlace(1, "Quiet Warehouse", map[string]string{"office": "company"}),
		namedPlace(2, "Padaria Central", map[string]string{"shop": "bakery"}),
		namedPlace(3, "Restaurant Bella", map[string]string{"amenity": "restaurant"}),
	}
	enricher := &fakeEnricher{profile: entity.ContactProfile{Social: map[string]string{}}}
	svc := NewService(&fakePlaceSource{places: places}, enricher, nil, nil)

	resp, err := svc.Recommend(context.Background(), dto.RecommendRequest{Lat: -23.55, Lon: -46.63, Niche: "web_designer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores := make([]int, len(resp.AllBusinesses))
	for i, b := range resp.AllBusinesses {
		scores[i] = b.CompatibilityScore
	}
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[i-1] {
			t.Fatalf("results not sorted by score desc: %v", scores)
		}
	}
	if resp.AllBusinesses[0].CompatibilityScore != 90 {
		t.Fatalf("expected a keyword match at the top, got %d", resp.AllBusinesses[0].CompatibilityScore)
	}
	if last := resp.AllBusinesses[len(resp.AllBusinesses)-1]; last.CompatibilityScore != 50 {
		t.Fatalf("expected base score at the bottom, got %d", last.CompatibilityScore)
	}
}

func TestRecommendOverpassFailureYieldsEmptyBatch(t *testing.T) {
	svc := NewService(&fakePlaceSource{err: errors.New("overpass 504")}, &fakeEnricher{}, nil, nil)

	resp, err := svc.Recommend(context.Background(), dto.RecommendRequest{Lat: -23.55, Lon: -46.63})
	if err != nil {
		t.Fatalf("expected soft failure, got %v", err)
	}
	if resp.Metadata.TotalFound != 0 || len(resp.Businesses) != 0 {
		t.Fatalf("expected empty batch, got %+v", resp.Metadata)
	}
	if resp.Metadata.HasMore {
		t.Fatalf("empty batch cannot have more pages")
	}
}

func TestRecommendDefaultsRadiusAndNiche(t *testing.T) {
	source := &fakePlaceSource{}
	svc := NewService(source, &fakeEnricher{}, nil, nil)

	resp, err := svc.Recommend(context.Background(), dto.RecommendRequest{Lat: -23.55, Lon: -46.63, Niche: "astrology"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.gotRadius != 5000 {
		t.Fatalf("expected default radius, got %d", source.gotRadius)
	}
	if resp.Metadata.Niche != DefaultNiche {
		t.Fatalf("expected fallback niche, got %q", resp.Metadata.Niche)
	}
	if len(source.gotTags) == 0 {
		t.Fatalf("expected OSM tag filters for the default niche")
	}
}

func TestRecommendMergesTagAndProfileContacts(t *testing.T) {
	places := []Place{
		namedPlace(1, "Padaria Silva", map[string]string{
			"phone":     "+55 11 98765-4321",
			"addr:city": "São Paulo",
		}),
	}
	enricher := &fakeEnricher{profile: entity.ContactProfile{
		Email:      "contato@padariasilva.com.br",
		Social:     map[string]string{"instagram": "https://instagram.com/padariasilva"},
		GoogleMaps: "https://www.google.com/maps/search/Padaria%20Silva",
	}}
	svc := NewService(&fakePlaceSource{places: places}, enricher, nil, nil)

	resp, err := svc.Recommend(context.Background(), dto.RecommendRequest{Lat: -23.55, Lon: -46.63, Niche: "web_designer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := resp.Businesses[0]
	if got.Phone != "+5511987654321" {
		t.Fatalf("phone = %q, want E.164 from map tag", got.Phone)
	}
	if got.Email != "contato@padariasilva.com.br" {
		t.Fatalf("email = %q, want profile email", got.Email)
	}
	if got.Social["instagram"] == "" {
		t.Fatalf("expected social links carried over")
	}
	if got.GoogleMaps == "" {
		t.Fatalf("expected maps link carried over")
	}
}

func TestRecommendUsesPitchWhenAvailable(t *testing.T) {
	places := []Place{namedPlace(1, "Padaria Silva", nil)}
	enricher := &fakeEnricher{profile: entity.ContactProfile{Social: map[string]string{}}}

	svc := NewService(&fakePlaceSource{places: places}, enricher, fakePitch{text: "Custom pitch."}, nil)
	resp, err := svc.Recommend(context.Background(), dto.RecommendRequest{Lat: -23.55, Lon: -46.63})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Businesses[0].Description != "Custom pitch." {
		t.Fatalf("description = %q", resp.Businesses[0].Description)
	}

	// A failing pitch writer leaves the generated description in place.
	svc = NewService(&fakePlaceSource{places: places}, enricher, fakePitch{}, nil)
	resp, err = svc.Recommend(context.Background(), dto.RecommendRequest{Lat: -23.55, Lon: -46.63})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Businesses[0].Description, "located") {
		t.Fatalf("expected fallback description, got %q", resp.Businesses[0].Description)
	}
}

func TestRecommendCachesProfiles(t *testing.T) {
	places := []Place{namedPlace(1, "Padaria Silva", map[string]string{"addr:city": "São Paulo"})}
	enricher := &fakeEnricher{profile: entity.ContactProfile{Email: "a@b.com", Social: map[string]string{}}}
	cache := newMemoryCache()
	svc := NewService(&fakePlaceSource{places: places}, enricher, nil, cache)

	req := dto.RecommendRequest{Lat: -23.55, Lon: -46.63}
	if _, err := svc.Recommend(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Recommend(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if enricher.calls != 1 {
		t.Fatalf("expected single enrichment with warm cache, got %d", enricher.calls)
	}
	if cache.hits != 1 {
		t.Fatalf("expected one cache hit, got %d", cache.hits)
	}
}

func TestPaginate(t *testing.T) {
	batch := make([]entity.RankedBusiness, 12)
	for i := range batch {
		batch[i] = entity.RankedBusiness{ID: fmt.Sprintf("b%d", i)}
	}

	tests := []struct {
		name      string
		offset    int
		wantLen   int
		wantMore  bool
		wantNext  int
		wantFirst string
	}{
		{name: "first page", offset: 0, wantLen: 5, wantMore: true, wantNext: 5, wantFirst: "b0"},
		{name: "middle page", offset: 5, wantLen: 5, wantMore: true, wantNext: 10, wantFirst: "b5"},
		{name: "final partial page", offset: 10, wantLen: 2, wantMore: false, wantNext: 10, wantFirst: "b10"},
		{name: "past the end", offset: 40, wantLen: 0, wantMore: false, wantNext: 12},
		{name: "negative offset clamps", offset: -3, wantLen: 5, wantMore: true, wantNext: 5, wantFirst: "b0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, hasMore, next := Paginate(batch, tt.offset)
			if len(page) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(page), tt.wantLen)
			}
			if hasMore != tt.wantMore {
				t.Fatalf("hasMore = %v, want %v", hasMore, tt.wantMore)
			}
			if tt.offset >= 0 && next != tt.wantNext {
				t.Fatalf("nextOffset = %d, want %d", next, tt.wantNext)
			}
			if tt.wantFirst != "" && page[0].ID != tt.wantFirst {
				t.Fatalf("first = %q, want %q", page[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "valid brazilian mobile", in: "+55 (11) 98765-4321", want: "+5511987654321"},
		{name: "local number without country code", in: "(11) 98765-4321", want: "+5511987654321"},
		{name: "unparseable keeps digits", in: "call 123-456 ext 9", want: "1234569"},
		{name: "long garbage truncated", in: "111222333444555666777", want: "111222333444555"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePhone(tt.in); got != tt.want {
				t.Fatalf("sanitizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildAddress(t *testing.T) {
	withTags := Place{Tags: map[string]string{
		"addr:street":   "Rua Augusta",
		"addr:city":     "São Paulo",
		"addr:postcode": "01305-000",
	}}
	if got := buildAddress(withTags, -23.55, -46.63); got != "Rua Augusta, São Paulo - 01305-000" {
		t.Fatalf("address = %q", got)
	}

	bare := Place{Tags: map[string]string{}}
	if got := buildAddress(bare, -23.5505, -46.6333); got != "Near -23.5505, -46.6333" {
		t.Fatalf("fallback address = %q", got)
	}
}
