//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"signup/internal/registration/store"
	id "signup/pkg/domain"
	"signup/pkg/platform/sentinel"
	"signup/pkg/testutil/containers"
)

type RedisLockerSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisLockerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLockerSuite))
}

func (s *RedisLockerSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisLockerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

// Two lockers stand in for two server instances sharing one Redis.
func (s *RedisLockerSuite) TestExcludesOtherInstances() {
	ctx := context.Background()
	formID := id.NewFormID()
	first := store.NewRedisLocker(s.redis.Client)
	second := store.NewRedisLocker(s.redis.Client, store.WithLockWait(100*time.Millisecond))

	unlock, err := first.Lock(ctx, formID)
	s.Require().NoError(err)

	_, err = second.Lock(ctx, formID)
	s.ErrorIs(err, sentinel.ErrUnavailable, "a held lock is not granted twice")

	other, err := second.Lock(ctx, id.NewFormID())
	s.Require().NoError(err, "other forms are not blocked")
	other()

	unlock()
	again, err := second.Lock(ctx, formID)
	s.Require().NoError(err)
	again()
}

func (s *RedisLockerSuite) TestSerialisesCriticalSections() {
	ctx := context.Background()
	formID := id.NewFormID()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		overlap bool
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := store.NewRedisLocker(s.redis.Client).Lock(ctx, formID)
			if err != nil {
				s.Fail("lock failed", err.Error())
				return
			}
			mu.Lock()
			inside++
			overlap = overlap || inside > 1
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	s.False(overlap)
}

func (s *RedisLockerSuite) TestLeaseFreesAbandonedLock() {
	ctx := context.Background()
	formID := id.NewFormID()
	crashed := store.NewRedisLocker(s.redis.Client, store.WithLockLease(200*time.Millisecond))

	_, err := crashed.Lock(ctx, formID)
	s.Require().NoError(err)

	unlock, err := store.NewRedisLocker(s.redis.Client, store.WithLockWait(2*time.Second)).Lock(ctx, formID)
	s.Require().NoError(err)
	unlock()
}

func (s *RedisLockerSuite) TestStaleReleaseKeepsNewHolder() {
	ctx := context.Background()
	formID := id.NewFormID()
	lockKey := "signup:lock:" + formID.String()

	staleUnlock, err := store.NewRedisLocker(s.redis.Client, store.WithLockLease(100*time.Millisecond)).Lock(ctx, formID)
	s.Require().NoError(err)
	time.Sleep(200 * time.Millisecond)

	unlock, err := store.NewRedisLocker(s.redis.Client).Lock(ctx, formID)
	s.Require().NoError(err)
	defer unlock()

	staleUnlock()
	exists, err := s.redis.Client.Exists(ctx, lockKey).Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists)
}
