package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered freelancer account. Premium entitlement is
// flipped by the Stripe webhook, never by client requests.
type User struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"password_hash"`
	Niche            string    `json:"niche"`
	Premium          bool      `json:"premium"`
	StripeCustomerID string    `json:"stripe_customer_id,omitempty"`
	Country          string    `json:"country,omitempty"`
	PlanType         string    `json:"plan_type,omitempty"`
	QuotaUsed        int       `json:"quota_used"`
	QuotaDay         string    `json:"quota_day,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
