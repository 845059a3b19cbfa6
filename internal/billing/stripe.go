package billing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ErrUnsupportedCountry signals a checkout request for a region without a
// price entry.
var ErrUnsupportedCountry = errors.New("unsupported country")

// Entitlement describes a premium state change derived from a verified
// Stripe event.
type Entitlement struct {
	Email      string
	Premium    bool
	CustomerID string
	Country    string
	PlanType   string
}

// CheckoutSession is the client-facing result of starting a checkout.
type CheckoutSession struct {
	URL     string
	Pricing string
}

// Client wraps the Stripe API for subscription checkout and webhooks.
type Client struct {
	webhookSecret string
	frontendURL   string
}

// NewClient configures the Stripe SDK. secretKey is the account API key;
// webhookSecret validates event signatures.
func NewClient(secretKey, webhookSecret, frontendURL string) *Client {
	stripe.Key = secretKey
	return &Client{webhookSecret: webhookSecret, frontendURL: frontendURL}
}

// CreateCheckout starts a hosted subscription checkout for the user's
// region.
func (c *Client) CreateCheckout(email, country string) (*CheckoutSession, error) {
	price, ok := PriceFor(country)
	if !ok {
		return nil, ErrUnsupportedCountry
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail:      stripe.String(email),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(price.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String("FreeLead Premium"),
					Description: stripe.String("Unlimited searches and full contact access"),
				},
				UnitAmount: stripe.Int64(price.Amount),
				Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
					Interval: stripe.String("month"),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(c.frontendURL + "/?payment=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(c.frontendURL + "/?payment=cancelled"),
	}
	params.AddMetadata("user_email", email)
	params.AddMetadata("country", country)
	params.AddMetadata("plan_type", "premium")

	created, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &CheckoutSession{URL: created.URL, Pricing: price.DisplayPrice}, nil
}

// VerifyPayment retrieves a checkout session and, when paid, returns the
// entitlement to grant. A nil entitlement with nil error means the session
// exists but is not paid yet.
func (c *Client) VerifyPayment(sessionID string) (*Entitlement, error) {
	retrieved, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	if retrieved.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, nil
	}

	entitlement := &Entitlement{
		Email:    retrieved.Metadata["user_email"],
		Premium:  true,
		Country:  retrieved.Metadata["country"],
		PlanType: retrieved.Metadata["plan_type"],
	}
	if retrieved.Customer != nil {
		entitlement.CustomerID = retrieved.Customer.ID
	}
	return entitlement, nil
}

// HandleWebhook validates the event signature and translates the events we
// care about into entitlement changes. Unknown event types yield a nil
// entitlement and no error.
func (c *Client) HandleWebhook(payload []byte, signature string) (*Entitlement, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var completed stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &completed); err != nil {
			return nil, fmt.Errorf("decode checkout event: %w", err)
		}
		entitlement := &Entitlement{
			Email:    completed.Metadata["user_email"],
			Premium:  true,
			Country:  completed.Metadata["country"],
			PlanType: completed.Metadata["plan_type"],
		}
		if completed.Customer != nil {
			entitlement.CustomerID = completed.Customer.ID
		}
		return entitlement, nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription event: %w", err)
		}
		if sub.Customer == nil {
			return nil, errors.New("subscription event without customer")
		}
		cust, err := customer.Get(sub.Customer.ID, nil)
		if err != nil {
			return nil, fmt.Errorf("retrieve customer: %w", err)
		}
		return &Entitlement{Email: cust.Email, Premium: false}, nil
	}

	return nil, nil
}
