package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tofind/freelead/internal/entity"
)

// PGXUserStore implements UserStore with pgx.
type PGXUserStore struct {
	pool *pgxpool.Pool
}

// NewPGXUserStore instantiates a Postgres-backed user store.
func NewPGXUserStore(pool *pgxpool.Pool) *PGXUserStore {
	return &PGXUserStore{pool: pool}
}

const userColumns = `id, email, password_hash, niche, premium, stripe_customer_id, country, plan_type, quota_used, quota_day, created_at, updated_at`

// isDuplicateEmail reports whether err is a unique violation on the users
// email constraint.
func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.Message, "users_email_key")
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Niche,
		&user.Premium,
		&user.StripeCustomerID,
		&user.Country,
		&user.PlanType,
		&user.QuotaUsed,
		&user.QuotaDay,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

// FindByEmail fetches a user by email if present.
func (s *PGXUserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

// Create inserts a new user row.
func (s *PGXUserStore) Create(ctx context.Context, user *entity.User) error {
	row := s.pool.QueryRow(ctx, `
        INSERT INTO users (email, password_hash, niche, quota_day)
        VALUES ($1, $2, $3, $4)
        RETURNING `+userColumns+`
    `, user.Email, user.PasswordHash, user.Niche, today())

	created, err := scanUser(row)
	if err != nil {
		if isDuplicateEmail(err) {
			return fmt.Errorf("%w: %v", ErrEmailDuplicate, err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	*user = *created
	return nil
}

// SetPremium updates the entitlement flag and subscription metadata.
func (s *PGXUserStore) SetPremium(ctx context.Context, email string, premium bool, customerID, country, planType string) error {
	tag, err := s.pool.Exec(ctx, `
        UPDATE users SET
            premium = $2,
            stripe_customer_id = COALESCE(NULLIF($3, ''), stripe_customer_id),
            country = COALESCE(NULLIF($4, ''), country),
            plan_type = COALESCE(NULLIF($5, ''), plan_type),
            updated_at = NOW()
        WHERE lower(email) = lower($1)
    `, email, premium, customerID, country, planType)
	if err != nil {
		return fmt.Errorf("update premium flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ConsumeQuota spends one unit of today's contact quota in a single
// conditional update, so concurrent consumers cannot overspend.
func (s *PGXUserStore) ConsumeQuota(ctx context.Context, email string, limit int) (int, error) {
	row := s.pool.QueryRow(ctx, `
        UPDATE users SET
            quota_used = CASE WHEN quota_day = $2 THEN quota_used + 1 ELSE 1 END,
            quota_day = $2,
            updated_at = NOW()
        WHERE lower(email) = lower($1)
          AND (quota_day <> $2 OR quota_used < $3)
        RETURNING quota_used
    `, email, today(), limit)

	var used int
	if err := row.Scan(&used); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the user is unknown or the quota is spent.
			if _, findErr := s.FindByEmail(ctx, email); findErr != nil {
				return 0, findErr
			}
			return 0, ErrQuotaExceeded
		}
		return 0, fmt.Errorf("consume quota: %w", err)
	}

	return limit - used, nil
}

var _ UserStore = (*PGXUserStore)(nil)
