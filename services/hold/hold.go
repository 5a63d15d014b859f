// Package hold keeps short-lived exclusive claims on (service, date, slot)
// triples so two pending bookings cannot race for the same slot.
package hold

import (
	"context"
	"fmt"
	"time"

	"servicefinder/utils"

	"github.com/go-redis/redis/v8"
)

// Store acquires and releases slot holds.
type Store interface {
	// Acquire claims key for owner until ttl elapses. It reports false if
	// someone else holds it.
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	// Release drops key only if owner still holds it.
	Release(ctx context.Context, key, owner string) error
}

// Key builds the hold key for a provider's slot. Services of one provider
// share its calendar, so the provider is the unit that is held.
func Key(providerID, date, slot string) string {
	return fmt.Sprintf("%s%s:%s:%s", utils.HoldKeyPrefix, providerID, date, slot)
}

var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisStore is a Store backed by SET NX with expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store on the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, key, owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire hold %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisStore) Release(ctx context.Context, key, owner string) error {
	if err := releaseScript.Run(ctx, s.client, []string{key}, owner).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release hold %s: %w", key, err)
	}
	return nil
}
