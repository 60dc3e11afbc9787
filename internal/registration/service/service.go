// Package service hosts registration forms between requests. Each operation
// loads the form's draft, applies one user event and saves it back under a
// per-form lock.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"signup/internal/platform/metrics"
	"signup/internal/registration"
	id "signup/pkg/domain"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/platform/sentinel"
	"signup/pkg/requestcontext"
)

const tracerName = "signup/registration"

// Defaults for the submit bounds.
const (
	DefaultSubmitTimeout = 30 * time.Second
	// loadingGrace covers the completing save after the submitter returns.
	loadingGrace = 5 * time.Second
)

// Store persists form drafts.
type Store interface {
	Save(ctx context.Context, formID id.FormID, snap registration.Snapshot) error
	Load(ctx context.Context, formID id.FormID) (registration.Snapshot, error)
}

// Locker serialises load-mutate-save cycles per form. The returned func
// releases the lock.
type Locker interface {
	Lock(ctx context.Context, formID id.FormID) (func(), error)
}

// Service applies user events to stored forms.
type Service struct {
	store         Store
	submitter     registration.Submitter
	logger        *slog.Logger
	metrics       *metrics.Metrics
	locks         Locker
	submitTimeout time.Duration
	now           func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLocker replaces the in-process lock, for stores shared between
// processes.
func WithLocker(l Locker) Option {
	return func(s *Service) {
		s.locks = l
	}
}

// WithSubmitTimeout bounds how long the submitter may run. A stored loading
// state older than this plus a grace period is treated as abandoned.
func WithSubmitTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.submitTimeout = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(store Store, submitter registration.Submitter, opts ...Option) *Service {
	s := &Service{
		store:     store,
		submitter: submitter,
		logger:        slog.Default(),
		locks:         newFormLocks(),
		submitTimeout: DefaultSubmitTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new form with every field empty.
func (s *Service) Create(ctx context.Context) (id.FormID, registration.View, error) {
	formID := id.NewFormID()
	form := registration.NewForm()
	if err := s.save(ctx, formID, form); err != nil {
		return id.FormID{}, registration.View{}, err
	}
	s.metrics.IncrementFormsCreated()
	s.logger.InfoContext(ctx, "form created",
		"request_id", requestcontext.RequestID(ctx),
		"form_id", formID.String(),
	)
	return formID, form.View(), nil
}

// View returns the current render model of a form. A form whose submit was
// abandoned is written back once its loading state is cleared.
func (s *Service) View(ctx context.Context, formID id.FormID) (registration.View, error) {
	form, abandoned, err := s.load(ctx, formID)
	if err != nil {
		return registration.View{}, err
	}
	if abandoned {
		return s.mutate(ctx, formID, nil)
	}
	return form.View(), nil
}

// SetField records a change event.
func (s *Service) SetField(ctx context.Context, formID id.FormID, field registration.Field, value string) (registration.View, error) {
	return s.mutate(ctx, formID, func(f *registration.Form) error {
		return f.SetField(field, value)
	})
}

// SetFields records several change events at once, as a full-page post does.
func (s *Service) SetFields(ctx context.Context, formID id.FormID, values map[registration.Field]string) (registration.View, error) {
	return s.mutate(ctx, formID, func(f *registration.Form) error {
		for field, value := range values {
			if err := f.SetField(field, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkTouched records a blur event.
func (s *Service) MarkTouched(ctx context.Context, formID id.FormID, field registration.Field) (registration.View, error) {
	return s.mutate(ctx, formID, func(f *registration.Form) error {
		return f.MarkTouched(field)
	})
}

// Dismiss clears the form's notification. Dismissing nothing is not an error.
func (s *Service) Dismiss(ctx context.Context, formID id.FormID) (registration.View, error) {
	return s.mutate(ctx, formID, func(f *registration.Form) error {
		if f.Dismiss() {
			s.metrics.IncrementNotificationDismissed()
		}
		return nil
	})
}

// Submit validates the form and, when valid, runs the submitter. The loading
// state is saved before the submitter runs, and the form lock is released
// while it waits, so the form can still be read and edited in the meantime.
// A second Submit during that window gets CodeConflict.
func (s *Service) Submit(ctx context.Context, formID id.FormID) (registration.Outcome, registration.View, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "registration.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("form.id", formID.String()))

	values, outcome, view, err := s.beginSubmit(ctx, formID)
	if err != nil {
		if errors.Is(err, registration.ErrSubmitInProgress) {
			s.metrics.IncrementSubmitOutcome("in_progress")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", registration.View{}, err
	}
	if outcome == registration.OutcomeRejected {
		s.recordOutcome(ctx, formID, outcome, view)
		span.SetAttributes(attribute.String("submit.outcome", string(outcome)))
		return outcome, view, nil
	}

	start := time.Now()
	subCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	res, subErr := s.submitter.Submit(subCtx, values)
	cancel()
	s.metrics.ObserveSubmitLatency(time.Since(start))
	if subErr != nil {
		span.RecordError(subErr)
		s.logger.WarnContext(ctx, "registration backend failed",
			"request_id", requestcontext.RequestID(ctx),
			"form_id", formID.String(),
			"error", subErr,
		)
	}

	// The caller may have gone away; the form must still leave the loading state.
	outcome, view, err = s.completeSubmit(context.WithoutCancel(ctx), formID, values, res, subErr)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", registration.View{}, err
	}
	s.recordOutcome(ctx, formID, outcome, view)
	span.SetAttributes(attribute.String("submit.outcome", string(outcome)))
	return outcome, view, nil
}

func (s *Service) beginSubmit(ctx context.Context, formID id.FormID) (registration.Values, registration.Outcome, registration.View, error) {
	unlock, err := s.lock(ctx, formID)
	if err != nil {
		return registration.Values{}, "", registration.View{}, err
	}
	defer unlock()

	form, abandoned, err := s.load(ctx, formID)
	if err != nil {
		return registration.Values{}, "", registration.View{}, err
	}
	if abandoned {
		s.recordAbandoned(ctx, formID)
	}
	values, outcome, err := form.BeginSubmit()
	if err != nil {
		return registration.Values{}, "", registration.View{}, err
	}
	form.SetLoadingDeadline(s.now().Add(s.submitTimeout + loadingGrace))
	if err := s.save(ctx, formID, form); err != nil {
		return registration.Values{}, "", registration.View{}, err
	}
	return values, outcome, form.View(), nil
}

func (s *Service) completeSubmit(ctx context.Context, formID id.FormID, values registration.Values, res registration.Result, subErr error) (registration.Outcome, registration.View, error) {
	unlock, err := s.lock(ctx, formID)
	if err != nil {
		return "", registration.View{}, err
	}
	defer unlock()

	form, _, err := s.load(ctx, formID)
	if err != nil {
		return "", registration.View{}, err
	}
	outcome := form.CompleteSubmit(values, res, subErr)
	if err := s.save(ctx, formID, form); err != nil {
		return "", registration.View{}, err
	}
	return outcome, form.View(), nil
}

func (s *Service) recordOutcome(ctx context.Context, formID id.FormID, outcome registration.Outcome, view registration.View) {
	s.metrics.IncrementSubmitOutcome(string(outcome))
	if view.Notification != nil {
		s.metrics.IncrementNotificationShown(view.Notification.Kind.String())
	}
	s.logger.InfoContext(ctx, "form submitted",
		"request_id", requestcontext.RequestID(ctx),
		"form_id", formID.String(),
		"outcome", string(outcome),
	)
}

func (s *Service) mutate(ctx context.Context, formID id.FormID, fn func(*registration.Form) error) (registration.View, error) {
	unlock, err := s.lock(ctx, formID)
	if err != nil {
		return registration.View{}, err
	}
	defer unlock()

	form, abandoned, err := s.load(ctx, formID)
	if err != nil {
		return registration.View{}, err
	}
	if fn != nil {
		if err := fn(form); err != nil {
			return registration.View{}, err
		}
	}
	if err := s.save(ctx, formID, form); err != nil {
		return registration.View{}, err
	}
	if abandoned {
		s.recordAbandoned(ctx, formID)
	}
	return form.View(), nil
}

// load restores a form and clears a loading state whose deadline has passed.
// The bool reports that clearing; the caller must save the form for it to stick.
func (s *Service) load(ctx context.Context, formID id.FormID) (*registration.Form, bool, error) {
	snap, err := s.store.Load(ctx, formID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, false, dErrors.New(dErrors.CodeNotFound, "form not found")
		}
		s.logger.ErrorContext(ctx, "failed to load form",
			"request_id", requestcontext.RequestID(ctx),
			"form_id", formID.String(),
			"error", err,
		)
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load form")
	}
	form := registration.Restore(snap)
	return form, form.ExpireLoading(s.now()), nil
}

func (s *Service) recordAbandoned(ctx context.Context, formID id.FormID) {
	s.metrics.IncrementSubmitOutcome("abandoned")
	s.logger.WarnContext(ctx, "abandoned submit cleared",
		"request_id", requestcontext.RequestID(ctx),
		"form_id", formID.String(),
	)
}

func (s *Service) lock(ctx context.Context, formID id.FormID) (func(), error) {
	unlock, err := s.locks.Lock(ctx, formID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to lock form",
			"request_id", requestcontext.RequestID(ctx),
			"form_id", formID.String(),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock form")
	}
	return unlock, nil
}

func (s *Service) save(ctx context.Context, formID id.FormID, form *registration.Form) error {
	if err := s.store.Save(ctx, formID, form.Snapshot()); err != nil {
		s.logger.ErrorContext(ctx, "failed to save form",
			"request_id", requestcontext.RequestID(ctx),
			"form_id", formID.String(),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save form")
	}
	return nil
}
