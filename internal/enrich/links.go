// Package enrich implements the contact-enrichment pipeline: given a bare
// business record it discovers a best-effort set of contact channels from the
// business website or, failing that, from search-engine result pages.
//
// Every lookup is best-effort. Extraction errors degrade to empty fields and
// never escape Enricher.EnrichContact.
package enrich

import (
	"regexp"
	"strings"
	"sync"
)

// Platforms enumerates the social networks probed during enrichment, in the
// order their links are resolved. Twitter is probed as twitter.com first with
// an x.com fallback.
var Platforms = []string{"linkedin", "facebook", "instagram", "twitter", "youtube", "tiktok"}

var (
	linkPatternMu    sync.Mutex
	linkPatternCache = map[string]*regexp.Regexp{}
)

func socialLinkPattern(domain string) *regexp.Regexp {
	linkPatternMu.Lock()
	defer linkPatternMu.Unlock()

	if re, ok := linkPatternCache[domain]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)https?://(www\.)?` + regexp.QuoteMeta(domain) + `/[^\s"'<>)]+`)
	linkPatternCache[domain] = re
	return re
}

// ExtractSocialLink returns the first outbound link to the given platform
// domain found in the HTML, with trailing punctuation trimmed. It returns
// the empty string when no link is present.
func ExtractSocialLink(html, platformDomain string) string {
	match := socialLinkPattern(platformDomain).FindString(html)
	if match == "" {
		return ""
	}
	return strings.TrimRight(match, ",;)")
}
