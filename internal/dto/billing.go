package dto

// CheckoutRequest starts a subscription checkout for a user.
type CheckoutRequest struct {
	Email   string `json:"email"`
	Country string `json:"country,omitempty"`
}

// CheckoutResponse returns the hosted checkout URL and display price.
type CheckoutResponse struct {
	URL     string `json:"url"`
	Pricing string `json:"pricing"`
}

// VerifyPaymentRequest confirms a completed checkout session.
type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

// StatusRequest asks for a user's subscription state.
type StatusRequest struct {
	Email string `json:"email"`
}

// StatusResponse reports the entitlement flag set by the Stripe webhook.
type StatusResponse struct {
	IsPaid   bool   `json:"isPaid"`
	Country  string `json:"country"`
	PlanType string `json:"planType"`
}

// CountryResponse reports the detected country and its regional pricing.
type CountryResponse struct {
	Country string      `json:"country"`
	Pricing PricingInfo `json:"pricing"`
}

// PricingInfo is the client-facing slice of a regional price entry.
type PricingInfo struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	PriceID  string `json:"priceId"`
}
