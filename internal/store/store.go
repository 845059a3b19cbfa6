// Package store persists user accounts and subscription entitlements behind
// a small interface so handlers and middleware stay independent of the
// backing storage. Two implementations exist: a JSON file for single-node
// deployments and Postgres for everything else.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/tofind/freelead/internal/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup criteria.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailDuplicate signals a registration against an existing email.
	ErrEmailDuplicate = errors.New("email already exists")
	// ErrQuotaExceeded signals the daily contact quota is spent.
	ErrQuotaExceeded = errors.New("daily contact quota exceeded")
)

// UserStore declares the persistence operations the application needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// SetPremium flips the webhook-driven entitlement flag.
	SetPremium(ctx context.Context, email string, premium bool, customerID, country, planType string) error
	// ConsumeQuota spends one unit of the user's daily contact quota,
	// resetting the counter on day rollover, and returns the remaining
	// allowance. ErrQuotaExceeded is returned when nothing is left.
	ConsumeQuota(ctx context.Context, email string, limit int) (remaining int, err error)
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
