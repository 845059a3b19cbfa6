// Package cache provides an optional Redis-backed store for enrichment
// results, keyed by hashed business identity so repeated searches in the
// same area do not re-scrape the same websites.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tofind/freelead/internal/entity"
)

const (
	// EnrichmentTTL bounds how long a cached contact profile is served
	// before the sources are consulted again.
	EnrichmentTTL = 7 * 24 * time.Hour

	enrichmentPrefix = "freelead:enrich:v1:"
)

// Client wraps redis.Client with domain-aware helpers.
type Client struct {
	rdb *redis.Client
}

// New creates a cache client. addr example: "localhost:6379".
func New(addr, password string, db int) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Client{rdb: rdb}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error { return c.rdb.Close() }

// ProfileKey returns the cache key for a business identity.
func ProfileKey(name, city string) string {
	raw := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(city))
	h := sha256.Sum256([]byte(raw))
	return enrichmentPrefix + fmt.Sprintf("%x", h)
}

// GetProfile returns a cached contact profile or nil on miss.
func (c *Client) GetProfile(ctx context.Context, name, city string) (*entity.ContactProfile, error) {
	raw, err := c.rdb.Get(ctx, ProfileKey(name, city)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var profile entity.ContactProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &profile, nil
}

// SetProfile stores a contact profile with the enrichment TTL.
func (c *Client) SetProfile(ctx context.Context, name, city string, profile entity.ContactProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := c.rdb.Set(ctx, ProfileKey(name, city), raw, EnrichmentTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
