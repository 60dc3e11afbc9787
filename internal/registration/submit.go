package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"signup/internal/notification"
	dErrors "signup/pkg/domain-errors"
)

const (
	LabelSubmit     = "Register"
	LabelSubmitting = "Registering..."

	MsgFormIncomplete = "Complete all fields correctly."
)

// ErrSubmitInProgress is returned when a submit arrives while another one is
// still waiting on its Submitter.
var ErrSubmitInProgress = dErrors.New(dErrors.CodeConflict, "submit already in progress")

// errSubmitAbandoned stands in for a backend failure when nobody completed a
// submit before its loading deadline.
var errSubmitAbandoned = errors.New("submit abandoned")

// Result is what a Submitter reports on success.
type Result struct {
	Username string
}

// Submitter performs the registration once the form is valid. The form treats
// any returned error as a backend failure distinct from local validation.
type Submitter interface {
	Submit(ctx context.Context, values Values) (Result, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, values Values) (Result, error)

func (fn SubmitterFunc) Submit(ctx context.Context, values Values) (Result, error) {
	return fn(ctx, values)
}

// Outcome classifies how a submit ended.
type Outcome string

const (
	// OutcomePending means BeginSubmit entered the loading state and the
	// caller must now run the Submitter and call CompleteSubmit.
	OutcomePending  Outcome = "pending"
	OutcomeRejected Outcome = "rejected"
	OutcomeAccepted Outcome = "accepted"
	OutcomeFailed   Outcome = "failed"
)

// SuccessText is the notification shown after a successful submit.
func SuccessText(username string) string {
	return fmt.Sprintf("Registration successful! Welcome, %s!", username)
}

// FailureText is the notification shown when the Submitter fails.
func FailureText(err error) string {
	reason := "please try again later"
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeInternal {
		reason = de.Message
	}
	return "Registration failed: " + reason + "."
}

// BeginSubmit marks every field touched and checks validity. An invalid form
// gets the error notification and OutcomeRejected. A valid one enters the
// loading state and returns the values to hand to the Submitter along with
// OutcomePending.
func (f *Form) BeginSubmit() (Values, Outcome, error) {
	if f.loading {
		return Values{}, "", ErrSubmitInProgress
	}

	f.touchAll()
	if !f.IsFormValid() {
		f.notice.Show(notification.KindError, MsgFormIncomplete)
		return Values{}, OutcomeRejected, nil
	}

	f.loading = true
	return f.Values(), OutcomePending, nil
}

// CompleteSubmit leaves the loading state. On success it shows the welcome
// notification and clears the form; on failure it keeps what the user typed.
func (f *Form) CompleteSubmit(submitted Values, res Result, err error) Outcome {
	f.loading = false
	f.loadingUntil = time.Time{}

	if err != nil {
		f.notice.Show(notification.KindError, FailureText(err))
		return OutcomeFailed
	}

	username := res.Username
	if username == "" {
		username = submitted.Username
	}
	f.notice.Show(notification.KindSuccess, SuccessText(username))
	f.reset()
	return OutcomeAccepted
}

// SetLoadingDeadline bounds the current loading state. It has no effect on a
// form that is not loading.
func (f *Form) SetLoadingDeadline(deadline time.Time) {
	if f.loading {
		f.loadingUntil = deadline
	}
}

// LoadingDeadline returns the bound set by SetLoadingDeadline, or the zero time.
func (f *Form) LoadingDeadline() time.Time {
	return f.loadingUntil
}

// ExpireLoading ends a loading state whose deadline passed before now, as
// when the process running the Submitter died. The user gets the generic
// failure notification and keeps what they typed. It reports whether the
// form was expired.
func (f *Form) ExpireLoading(now time.Time) bool {
	if !f.loading || f.loadingUntil.IsZero() || !now.After(f.loadingUntil) {
		return false
	}
	f.loading = false
	f.loadingUntil = time.Time{}
	f.notice.Show(notification.KindError, FailureText(errSubmitAbandoned))
	return true
}

// Submit runs BeginSubmit, the Submitter and CompleteSubmit in one call.
func (f *Form) Submit(ctx context.Context, s Submitter) (Outcome, error) {
	values, outcome, err := f.BeginSubmit()
	if err != nil || outcome != OutcomePending {
		return outcome, err
	}
	res, err := s.Submit(ctx, values)
	return f.CompleteSubmit(values, res, err), nil
}
