package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup/internal/registration"
	id "signup/pkg/domain"
	"signup/pkg/platform/sentinel"
)

func draftWithUsername(t *testing.T, username string) registration.Snapshot {
	t.Helper()
	f := registration.NewForm()
	require.NoError(t, f.SetField(registration.FieldUsername, username))
	require.NoError(t, f.MarkTouched(registration.FieldUsername))
	_, _, err := f.BeginSubmit()
	require.NoError(t, err)
	return f.Snapshot()
}

func TestInMemoryStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(time.Minute)
	formID := id.NewFormID()
	snap := draftWithUsername(t, "joe")

	require.NoError(t, s.Save(ctx, formID, snap))

	got, err := s.Load(ctx, formID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestInMemoryStore_IsolatesCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(time.Minute)
	formID := id.NewFormID()
	snap := draftWithUsername(t, "joe")
	require.NoError(t, s.Save(ctx, formID, snap))

	snap.Values[registration.FieldUsername] = "mutated after save"
	got, err := s.Load(ctx, formID)
	require.NoError(t, err)
	assert.Equal(t, "joe", got.Values[registration.FieldUsername])

	got.Notification.Text = "mutated after load"
	again, err := s.Load(ctx, formID)
	require.NoError(t, err)
	assert.Equal(t, registration.MsgFormIncomplete, again.Notification.Text)
}

func TestInMemoryStore_NotFound(t *testing.T) {
	s := NewInMemoryStore(time.Minute)

	_, err := s.Load(context.Background(), id.NewFormID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewInMemoryStore(10 * time.Minute)
	s.now = func() time.Time { return now }

	kept, dropped := id.NewFormID(), id.NewFormID()
	require.NoError(t, s.Save(ctx, dropped, draftWithUsername(t, "old")))
	now = now.Add(6 * time.Minute)
	require.NoError(t, s.Save(ctx, kept, draftWithUsername(t, "new")))
	now = now.Add(5 * time.Minute)

	_, err := s.Load(ctx, dropped)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = s.Load(ctx, kept)
	assert.NoError(t, err)

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 1, s.Sweep(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(time.Minute)
	ids := make([]id.FormID, 8)
	for i := range ids {
		ids[i] = id.NewFormID()
	}
	snap := draftWithUsername(t, "joe")

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			formID := ids[i%len(ids)]
			_ = s.Save(ctx, formID, snap)
			_, _ = s.Load(ctx, formID)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(ids), s.Len())
}
