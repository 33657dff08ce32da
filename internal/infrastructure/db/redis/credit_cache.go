package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/legacyapp/user-service/internal/api/metrics"
	"github.com/legacyapp/user-service/internal/core/ports"
)

const defaultCreditTTL = time.Hour

// CreditCache is a read-through cache in front of the credit bureau.
// Key format: credit:<last name>:<YYYY-MM-DD>. The last name is used exactly
// as sent to the bureau, which distinguishes case.
//
// Redis failures never fail a lookup; the bureau is queried directly instead.
type CreditCache struct {
	client *redis.Client
	next   ports.CreditService
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCreditCache wraps next with a Redis cache. A non-positive ttl uses one hour.
func NewCreditCache(client *redis.Client, next ports.CreditService, ttl time.Duration, log zerolog.Logger) *CreditCache {
	if ttl <= 0 {
		ttl = defaultCreditTTL
	}
	return &CreditCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *CreditCache) GetCreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int, error) {
	key := c.key(lastName, dateOfBirth)

	limit, err := c.client.Get(ctx, key).Int()
	switch {
	case err == nil:
		metrics.CreditCacheTotal.WithLabelValues("hit").Inc()
		return limit, nil
	case errors.Is(err, redis.Nil):
		metrics.CreditCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.CreditCacheTotal.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Msg("credit cache read failed, querying bureau")
	}

	limit, err = c.next.GetCreditLimit(ctx, lastName, dateOfBirth)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, limit, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("failed to cache credit limit")
	}
	return limit, nil
}

func (c *CreditCache) key(lastName string, dateOfBirth time.Time) string {
	return fmt.Sprintf("credit:%s:%s", lastName, dateOfBirth.UTC().Format(time.DateOnly))
}
