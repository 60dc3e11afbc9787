package submitter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup/internal/registration"
	dErrors "signup/pkg/domain-errors"
)

func TestSimulated_Defaults(t *testing.T) {
	assert.Equal(t, 700*time.Millisecond, NewSimulated().Latency())
}

func TestSimulated_WaitsForTimer(t *testing.T) {
	fire := make(chan time.Time)
	var requested time.Duration
	s := NewSimulated(WithLatency(time.Second), WithTimer(func(d time.Duration) <-chan time.Time {
		requested = d
		return fire
	}))

	done := make(chan registration.Result, 1)
	go func() {
		res, err := s.Submit(context.Background(), registration.Values{Username: "joe"})
		assert.NoError(t, err)
		done <- res
	}()

	select {
	case <-done:
		t.Fatal("submit completed before the timer fired")
	case <-time.After(20 * time.Millisecond):
	}

	fire <- time.Now()
	res := <-done
	assert.Equal(t, "joe", res.Username)
	assert.Equal(t, time.Second, requested)
}

func TestSimulated_RealTimer(t *testing.T) {
	s := NewSimulated(WithLatency(10 * time.Millisecond))

	start := time.Now()
	res, err := s.Submit(context.Background(), registration.Values{Username: "ana"})

	require.NoError(t, err)
	assert.Equal(t, "ana", res.Username)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestSimulated_Cancelled(t *testing.T) {
	s := NewSimulated(WithTimer(func(time.Duration) <-chan time.Time {
		return make(chan time.Time)
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, registration.Values{Username: "joe"})

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulated_ZeroLatency(t *testing.T) {
	s := NewSimulated(WithLatency(0))

	res, err := s.Submit(context.Background(), registration.Values{Username: "joe"})
	require.NoError(t, err)
	assert.Equal(t, "joe", res.Username)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Submit(ctx, registration.Values{Username: "joe"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestSimulated_DrivesForm(t *testing.T) {
	f := registration.NewForm()
	require.NoError(t, f.SetField(registration.FieldUsername, "joe"))
	require.NoError(t, f.SetField(registration.FieldEmail, "joe@x.com"))
	require.NoError(t, f.SetField(registration.FieldPassword, "Passw0rd"))

	outcome, err := f.Submit(context.Background(), NewSimulated(WithLatency(time.Millisecond)))

	require.NoError(t, err)
	assert.Equal(t, registration.OutcomeAccepted, outcome)
	n, ok := f.Notification()
	require.True(t, ok)
	assert.Contains(t, n.Text, "joe")
}
