// Package billing integrates the Stripe subscription paywall: regional
// pricing, hosted checkout sessions, payment verification and the webhook
// that flips the premium entitlement flag.
package billing

// Price describes one regional subscription price.
type Price struct {
	PriceID      string
	Amount       int64
	Currency     string
	Symbol       string
	DisplayPrice string
}

// DefaultCountry is used when detection fails or a region is unsupported.
const DefaultCountry = "US"

// prices holds the fixed per-region monthly subscription table.
var prices = map[string]Price{
	"US": {PriceID: "price_premium_us", Amount: 700, Currency: "usd", Symbol: "$", DisplayPrice: "$7"},
	"IN": {PriceID: "price_premium_in", Amount: 3000, Currency: "inr", Symbol: "₹", DisplayPrice: "₹30"},
	"BR": {PriceID: "price_premium_br", Amount: 1000, Currency: "brl", Symbol: "R$", DisplayPrice: "R$10"},
}

// PriceFor returns the price entry for a country code and whether the
// country is supported.
func PriceFor(country string) (Price, bool) {
	price, ok := prices[country]
	return price, ok
}

// SupportedCountry reports whether a country code has a price entry.
func SupportedCountry(code string) bool {
	_, ok := prices[code]
	return ok
}
