package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"signup/internal/registration"
	id "signup/pkg/domain"
	"signup/pkg/platform/sentinel"
)

const keyPrefix = "signup:form:"

// Sealer encrypts drafts at rest.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// RedisStore keeps sealed drafts in Redis with a sliding TTL. Several server
// instances can serve the same form when they also share a RedisLocker.
type RedisStore struct {
	client redis.UniversalClient
	sealer Sealer
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, sealer Sealer, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, sealer: sealer, ttl: ttl}
}

func draftKey(formID id.FormID) string {
	return keyPrefix + formID.String()
}

func (s *RedisStore) Save(ctx context.Context, formID id.FormID, snap registration.Snapshot) error {
	plaintext, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	sealed, err := s.sealer.Seal(plaintext)
	if err != nil {
		return fmt.Errorf("seal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(formID), sealed, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: save draft: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, formID id.FormID) (registration.Snapshot, error) {
	raw, err := s.client.Get(ctx, draftKey(formID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return registration.Snapshot{}, sentinel.ErrNotFound
	}
	if err != nil {
		return registration.Snapshot{}, fmt.Errorf("%w: load draft: %v", sentinel.ErrUnavailable, err)
	}

	plaintext, err := s.sealer.Open(raw)
	if err != nil {
		return registration.Snapshot{}, fmt.Errorf("%w: %v", sentinel.ErrCorrupt, err)
	}
	var snap registration.Snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		return registration.Snapshot{}, fmt.Errorf("%w: decode draft: %v", sentinel.ErrCorrupt, err)
	}
	return snap, nil
}
