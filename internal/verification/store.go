// Package verification issues and checks the short-lived numeric codes that
// prove control of an email address. Codes live exclusively in an expiring
// cache keyed by email: at most one code is live per address, reissuing
// overwrites, and a successful check consumes the code so it cannot be
// replayed within the remaining window.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// Outcome is the result of checking a submitted code.
type Outcome int

const (
	// Expired covers both an elapsed TTL and a code that was never issued;
	// the two are indistinguishable once the cache entry is gone.
	Expired Outcome = iota
	Mismatch
	Valid
)

// Cache is the minimal key/value contract the store needs: per-key atomic
// set/get/delete with TTL-based eviction. Redis provides it in production.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) error
}

// Store generates, caches and consumes verification codes.
type Store struct {
	cache Cache
	ttl   time.Duration
}

func New(cache Cache, ttl time.Duration) *Store {
	return &Store{cache: cache, ttl: ttl}
}

// Issue generates a six-digit code and caches it under the email for the
// configured window, replacing any earlier code for that address. The code
// is returned for the caller to hand to the email dispatcher.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	if err := s.cache.Set(ctx, email, code, s.ttl); err != nil {
		return "", err
	}
	return code, nil
}

// Check compares a submitted code with the cached one. A match deletes the
// entry before reporting Valid, making every code single-use. The returned
// error is reserved for cache failures; outcome alone carries the verdict.
func (s *Store) Check(ctx context.Context, email, submitted string) (Outcome, error) {
	cached, ok, err := s.cache.Get(ctx, email)
	if err != nil {
		return Expired, err
	}
	if !ok {
		return Expired, nil
	}
	if cached != submitted {
		return Mismatch, nil
	}
	if err := s.cache.Del(ctx, email); err != nil {
		return Expired, err
	}
	return Valid, nil
}

// redisCache adapts a go-redis client to the Cache interface.
type redisCache struct{ rdb *redis.Client }

// NewRedisCache wraps rdb for use by the store.
func NewRedisCache(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *redisCache) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
