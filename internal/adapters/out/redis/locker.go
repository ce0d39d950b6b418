// Package redis implements the cross-instance key lock on top of Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deliveryno/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 10 * time.Second
	keyPrefix  = "lock:"
)

var _ ports.KeyLocker = (*Locker)(nil)

// releaseScript deletes the key only while it still carries our token, so an
// expired lock taken over by another writer is never released by us.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// Locker grants a single holder per key with SET NX PX. The TTL bounds how
// long a crashed holder can block a key.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLocker(client *redis.Client, ttl time.Duration) (*Locker, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Locker{client: client, ttl: ttl}, nil
}

func (l *Locker) TryLock(ctx context.Context, key string) (ports.ReleaseFunc, error) {
	token := uuid.NewString()
	redisKey := keyPrefix + key

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	if !ok {
		return nil, ports.ErrLockNotAcquired
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			return fmt.Errorf("unlock %s: %w", key, err)
		}
		return nil
	}, nil
}
