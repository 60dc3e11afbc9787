//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"signup/internal/platform/seal"
	"signup/internal/registration"
	"signup/internal/registration/store"
	id "signup/pkg/domain"
	"signup/pkg/platform/sentinel"
	"signup/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	box, err := seal.New("integration-key")
	s.Require().NoError(err)
	s.store = store.NewRedis(s.redis.Client, box, time.Minute)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func validDraft(s *RedisStoreSuite) registration.Snapshot {
	f := registration.NewForm()
	s.Require().NoError(f.SetField(registration.FieldUsername, "joe"))
	s.Require().NoError(f.SetField(registration.FieldEmail, "joe@x.com"))
	s.Require().NoError(f.SetField(registration.FieldPassword, "Passw0rd"))
	s.Require().NoError(f.MarkTouched(registration.FieldEmail))
	return f.Snapshot()
}

func (s *RedisStoreSuite) TestSaveLoadRoundTrip() {
	ctx := context.Background()
	formID := id.NewFormID()
	draft := validDraft(s)

	s.Require().NoError(s.store.Save(ctx, formID, draft))

	got, err := s.store.Load(ctx, formID)
	s.Require().NoError(err)
	s.Equal(draft, got)
}

func (s *RedisStoreSuite) TestPasswordNotStoredInClear() {
	ctx := context.Background()
	formID := id.NewFormID()
	s.Require().NoError(s.store.Save(ctx, formID, validDraft(s)))

	raw, err := s.redis.Client.Get(ctx, "signup:form:"+formID.String()).Bytes()
	s.Require().NoError(err)
	s.NotContains(string(raw), "Passw0rd")
}

func (s *RedisStoreSuite) TestTTLApplied() {
	ctx := context.Background()
	formID := id.NewFormID()
	s.Require().NoError(s.store.Save(ctx, formID, validDraft(s)))

	ttl, err := s.redis.Client.TTL(ctx, "signup:form:"+formID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 50*time.Second)
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisStoreSuite) TestMissingDraft() {
	_, err := s.store.Load(context.Background(), id.NewFormID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestCorruptDraft() {
	ctx := context.Background()
	formID := id.NewFormID()
	s.Require().NoError(s.redis.Client.Set(ctx, "signup:form:"+formID.String(), "garbage", time.Minute).Err())

	_, err := s.store.Load(ctx, formID)
	s.ErrorIs(err, sentinel.ErrCorrupt)
}
