package ownerlock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix    = "serenity:owner_lock:"
	defaultRedisTTL   = 30 * time.Second
	redisPollInitial  = 20 * time.Millisecond
	redisPollMax      = 500 * time.Millisecond
	redisUnlockBudget = 2 * time.Second
)

var errLockHeld = errors.New("owner lock held")

// compare-and-delete so an expired holder never frees a successor's lock.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every process pointed at the same Redis. The
// TTL bounds how long a crashed holder can block an owner.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := redisKeyPrefix + key
	token := uuid.NewString()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = redisPollInitial
	exp.MaxInterval = redisPollMax
	exp.MaxElapsedTime = 0
	exp.Reset()

	err := backoff.Retry(func() error {
		ok, err := r.rdb.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("acquire owner lock: %w", err))
		}
		if !ok {
			return errLockHeld
		}
		return nil
	}, backoff.WithContext(exp, ctx))
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			uctx, cancel := context.WithTimeout(context.Background(), redisUnlockBudget)
			defer cancel()
			_ = unlockScript.Run(uctx, r.rdb, []string{redisKey}, token).Err()
		})
	}, nil
}
