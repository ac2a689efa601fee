package inventory

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLock is a lease-style lock so only one replica runs each scan cycle.
// The lease expires on its own; there is no release, the holder simply owns
// the current window.
type RedisLock struct {
	rdb   *redis.Client
	key   string
	owner string
	ttl   time.Duration
}

func NewRedisLock(rdb *redis.Client, key, owner string, ttl time.Duration) *RedisLock {
	if key == "" {
		key = "vetsched:inventory:scan"
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisLock{rdb: rdb, key: key, owner: owner, ttl: ttl}
}

func (l *RedisLock) TryAcquire(ctx context.Context) (bool, error) {
	return l.rdb.SetNX(ctx, l.key, l.owner, l.ttl).Result()
}
