// Package submitter provides Submitter implementations for the registration form.
package submitter

import (
	"context"
	"time"

	"signup/internal/registration"
	dErrors "signup/pkg/domain-errors"
)

// DefaultLatency is how long Simulated pretends the backend takes.
const DefaultLatency = 700 * time.Millisecond

// Simulated stands in for a real registration backend: it waits a fixed
// latency and always succeeds. Nothing is persisted.
type Simulated struct {
	latency time.Duration
	after   func(time.Duration) <-chan time.Time
}

// Option configures Simulated.
type Option func(*Simulated)

// WithLatency overrides DefaultLatency. Non-positive values complete immediately.
func WithLatency(d time.Duration) Option {
	return func(s *Simulated) {
		s.latency = d
	}
}

// WithTimer replaces time.After, for tests that drive the clock.
func WithTimer(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Simulated) {
		s.after = after
	}
}

func NewSimulated(opts ...Option) *Simulated {
	s := &Simulated{
		latency: DefaultLatency,
		after:   time.After,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Latency reports the configured delay.
func (s *Simulated) Latency() time.Duration {
	return s.latency
}

// Submit waits out the latency and reports success for values.Username.
// If ctx ends first the submit fails with CodeTimeout.
func (s *Simulated) Submit(ctx context.Context, values registration.Values) (registration.Result, error) {
	if s.latency > 0 {
		select {
		case <-s.after(s.latency):
		case <-ctx.Done():
			return registration.Result{}, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "request cancelled")
		}
	} else if err := ctx.Err(); err != nil {
		return registration.Result{}, dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled")
	}
	return registration.Result{Username: values.Username}, nil
}
