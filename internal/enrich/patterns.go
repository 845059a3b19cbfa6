package enrich

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// Brazilian numbers (+55, optional area code) or US 3-3-4 grouping.
	phonePattern = regexp.MustCompile(`(\+?55\s?)?(\(?\d{2}\)?\s?)?\d{4,5}-?\d{4}|(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	whatsappPattern = regexp.MustCompile(`(?i)wa\.me/\d+|whatsapp[^\s"'<>]*\d{10,}`)
)

// emailDenylist rejects placeholder and tooling addresses that commonly leak
// into page markup. Phone and WhatsApp extraction carry no equivalent list,
// so boilerplate digit runs can slip through; that imprecision is inherited
// from the data sources and accepted.
var emailDenylist = []string{
	"example.com",
	"yoursite.com",
	"placeholder",
	"test.com",
	"@sentry",
	"noreply",
}

// ContactSignals carries the pattern-matched contact channels found in a
// document. Empty strings mean the channel was not found.
type ContactSignals struct {
	Email    string
	Phone    string
	WhatsApp string
}

// ExtractContactSignals scans raw HTML for email, phone and WhatsApp
// references. The first acceptable match wins for each channel; multiple
// candidates are not ranked.
func ExtractContactSignals(html string) ContactSignals {
	return ContactSignals{
		Email:    firstValidEmail(html),
		Phone:    phonePattern.FindString(html),
		WhatsApp: whatsappPattern.FindString(html),
	}
}

func firstValidEmail(html string) string {
	for _, candidate := range emailPattern.FindAllString(html, -1) {
		if isDenylisted(candidate) {
			continue
		}
		return candidate
	}
	return ""
}

func isDenylisted(email string) bool {
	lowered := strings.ToLower(email)
	for _, blocked := range emailDenylist {
		if strings.Contains(lowered, blocked) {
			return true
		}
	}
	return false
}
