package enrich

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var contactCues = []string{"contact", "get in touch", "contato"}

// FindContactPage scans anchors in document order for a likely "contact us"
// link and resolves it against the base URL. The first matching anchor wins.
// A malformed href yields the empty string rather than an error.
func FindContactPage(doc *goquery.Document, base *url.URL) string {
	var found string

	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.ToLower(sel.Text())
		href, _ := sel.Attr("href")

		if !matchesContactCue(text) && !matchesContactCue(strings.ToLower(href)) {
			return true
		}

		// First matching anchor decides the outcome, even when its href
		// turns out to be unusable.
		if href != "" {
			found = resolveHref(href, base)
		}
		return false
	})

	return found
}

func matchesContactCue(value string) bool {
	for _, cue := range contactCues {
		if strings.Contains(value, cue) {
			return true
		}
	}
	return false
}

func resolveHref(href string, base *url.URL) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if base == nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
