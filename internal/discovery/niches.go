package discovery

import (
	"hash/fnv"
	"strings"
)

// DefaultNiche is used when a request names an unknown niche.
const DefaultNiche = "web_designer"

const (
	baseCompatibility    = 50
	matchedCompatibility = 90
)

// nicheOSMTags maps each freelancer niche to the OSM tag filters whose
// businesses are most likely to need that niche's services.
var nicheOSMTags = map[string][]string{
	"web_designer": {
		"amenity=restaurant", "amenity=cafe", "shop=bakery", "shop=clothes",
		"shop=hairdresser", "shop=beauty", "amenity=bar", "shop=florist",
		"amenity=pharmacy",
	},
	"social_media": {
		"shop=clothes", "shop=jewelry", "amenity=restaurant",
		"leisure=fitness_centre", "shop=beauty", "shop=cosmetics",
		"amenity=fast_food",
	},
	"seo": {
		"shop=electronics", "shop=furniture", "amenity=restaurant",
		"office=company", "shop=car", "shop=bicycle",
	},
	"content_creator": {
		"amenity=cinema", "amenity=theatre", "shop=books",
		"office=advertising", "tourism=hotel", "leisure=sports_centre",
	},
}

// nicheCompatibility lists the business-type keywords that lift the
// compatibility score from the base to the matched value.
var nicheCompatibility = map[string][]string{
	"web_designer":    {"restaurant", "cafe", "shop", "salon", "pharmacy", "bar", "bakery"},
	"social_media":    {"clothes", "beauty", "jewelry", "restaurant", "salon"},
	"seo":             {"shop", "office", "company", "electronics"},
	"content_creator": {"hotel", "tourism", "cinema", "theatre", "books"},
}

// nicheCategories labels results for display.
var nicheCategories = map[string][]string{
	"web_designer":    {"Web Design", "Digital Marketing", "Online Presence"},
	"social_media":    {"Social Media", "Digital Marketing", "Brand Building"},
	"seo":             {"SEO", "Digital Marketing", "Online Visibility"},
	"content_creator": {"Content Creation", "Marketing", "Brand Storytelling"},
}

// OSMTags returns the Overpass tag filters for a niche, falling back to the
// default niche for unknown values.
func OSMTags(niche string) []string {
	if tags, ok := nicheOSMTags[niche]; ok {
		return tags
	}
	return nicheOSMTags[DefaultNiche]
}

// CompatibilityScore rates how well a business type or name matches the
// niche. The heuristic is deliberately coarse: a keyword hit scores 90,
// anything else scores 50.
func CompatibilityScore(niche, businessType, businessName string) int {
	keywords, ok := nicheCompatibility[niche]
	if !ok {
		keywords = nicheCompatibility[DefaultNiche]
	}

	loweredType := strings.ToLower(businessType)
	loweredName := strings.ToLower(businessName)
	for _, keyword := range keywords {
		if strings.Contains(loweredType, keyword) || strings.Contains(loweredName, keyword) {
			return matchedCompatibility
		}
	}
	return baseCompatibility
}

// Category picks a stable display category for a business. The choice is
// derived from the name hash so repeated searches label a business the same
// way.
func Category(niche, businessName string) string {
	categories, ok := nicheCategories[niche]
	if !ok {
		categories = nicheCategories[DefaultNiche]
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(businessName)))
	return categories[int(h.Sum32())%len(categories)]
}
