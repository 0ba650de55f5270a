package lock

import (
	"context"
	"errors"
	"time"

	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotOwned = errors.New("lock is no longer owned by this lease")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

// RedisLocker is a SET NX PX lock with an owner token, retried at a fixed delay.
type RedisLocker struct {
	client     redis.UniversalClient
	ttl        time.Duration
	retries    int
	retryDelay time.Duration
}

func NewRedisLocker(client redis.UniversalClient, cfg config.RedisConfig) *RedisLocker {
	retries := cfg.LockRetry
	if retries < 1 {
		retries = 1
	}
	return &RedisLocker{
		client:     client,
		ttl:        cfg.LockTTL,
		retries:    retries,
		retryDelay: cfg.RetryDelay,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (shared.Lease, error) {
	token := uuid.NewString()
	for attempt := 0; attempt < l.retries; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errs.Wrap(err, "failed to acquire lock")
		}
		if ok {
			return &redisLease{client: l.client, key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryDelay):
		}
	}
	return nil, shared.ErrLockNotAcquired
}

type redisLease struct {
	client redis.UniversalClient
	key    string
	token  string
}

func (l *redisLease) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return errs.Wrap(err, "failed to release lock")
	}
	if n == 0 {
		// TTL expired and another holder may own the key now
		return ErrLockNotOwned
	}
	return nil
}
