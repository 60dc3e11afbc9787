// Package store keeps form drafts between requests. A draft is the snapshot
// of one form; it expires after a period of inactivity.
package store

import (
	"context"
	"maps"
	"sync"
	"time"

	"signup/internal/registration"
	id "signup/pkg/domain"
	"signup/pkg/platform/sentinel"
)

type memoryEntry struct {
	snapshot  registration.Snapshot
	expiresAt time.Time
}

// InMemoryStore is a process-local draft store. Expired drafts are dropped
// lazily on access and by Sweep.
type InMemoryStore struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	drafts map[id.FormID]memoryEntry
}

// NewInMemoryStore returns a store whose drafts live for ttl after their last save.
func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		ttl:    ttl,
		now:    time.Now,
		drafts: make(map[id.FormID]memoryEntry),
	}
}

func (s *InMemoryStore) Save(_ context.Context, formID id.FormID, snap registration.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[formID] = memoryEntry{
		snapshot:  cloneSnapshot(snap),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *InMemoryStore) Load(_ context.Context, formID id.FormID) (registration.Snapshot, error) {
	s.mu.RLock()
	entry, ok := s.drafts[formID]
	s.mu.RUnlock()
	if !ok {
		return registration.Snapshot{}, sentinel.ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.drafts, formID)
		s.mu.Unlock()
		return registration.Snapshot{}, sentinel.ErrNotFound
	}
	return cloneSnapshot(entry.snapshot), nil
}

// Sweep removes every expired draft and returns how many were dropped.
func (s *InMemoryStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for formID, entry := range s.drafts {
		if !now.Before(entry.expiresAt) {
			delete(s.drafts, formID)
			removed++
		}
	}
	return removed
}

// Len reports the number of drafts held, expired or not.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

func cloneSnapshot(snap registration.Snapshot) registration.Snapshot {
	out := registration.Snapshot{
		Values:  maps.Clone(snap.Values),
		Touched: maps.Clone(snap.Touched),
		Loading: snap.Loading,
	}
	if snap.LoadingUntil != nil {
		until := *snap.LoadingUntil
		out.LoadingUntil = &until
	}
	if snap.Notification != nil {
		n := *snap.Notification
		out.Notification = &n
	}
	return out
}
