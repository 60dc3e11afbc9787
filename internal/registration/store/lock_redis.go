package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	id "signup/pkg/domain"
	"signup/pkg/platform/sentinel"
)

const lockKeyPrefix = "signup:lock:"

// Defaults for RedisLocker. The lease only has to outlive one
// load-mutate-save cycle; the submitter runs without the lock.
const (
	DefaultLockLease = 5 * time.Second
	DefaultLockWait  = 3 * time.Second
	lockRetry        = 25 * time.Millisecond
	unlockTimeout    = time.Second
)

// releaseScript deletes the lock only while it still holds our token, so a
// holder whose lease ran out cannot free somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serialises form updates across server instances sharing one
// Redis. Each lock is a SET NX key with a lease, released by token.
type RedisLocker struct {
	client redis.UniversalClient
	lease  time.Duration
	wait   time.Duration
}

// RedisLockerOption configures a RedisLocker.
type RedisLockerOption func(*RedisLocker)

// WithLockLease sets how long a lock survives a holder that never releases it.
func WithLockLease(d time.Duration) RedisLockerOption {
	return func(l *RedisLocker) {
		l.lease = d
	}
}

// WithLockWait bounds how long Lock waits for a busy form.
func WithLockWait(d time.Duration) RedisLockerOption {
	return func(l *RedisLocker) {
		l.wait = d
	}
}

func NewRedisLocker(client redis.UniversalClient, opts ...RedisLockerOption) *RedisLocker {
	l := &RedisLocker{
		client: client,
		lease:  DefaultLockLease,
		wait:   DefaultLockWait,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func lockKey(formID id.FormID) string {
	return lockKeyPrefix + formID.String()
}

// Lock blocks until formID's lock is acquired, the wait bound passes, or ctx
// ends. Failures wrap sentinel.ErrUnavailable.
func (l *RedisLocker) Lock(ctx context.Context, formID id.FormID) (func(), error) {
	key := lockKey(formID)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	retry := time.NewTimer(0)
	defer retry.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: form lock busy: %v", sentinel.ErrUnavailable, ctx.Err())
		case <-retry.C:
		}

		ok, err := l.client.SetNX(ctx, key, token, l.lease).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: acquire form lock: %v", sentinel.ErrUnavailable, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		retry.Reset(lockRetry)
	}
}

// release ignores errors: the lease frees the key if the delete is lost.
func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
	defer cancel()
	_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
}
