// Package registration holds the state machine behind the sign-up form: field
// values, which fields the user has left, the in-flight flag and the status
// notification. Validity is never stored; every query recomputes it from the
// current values.
//
// A Form is not safe for concurrent use. The service layer serialises access
// per form.
package registration

import (
	"time"

	"signup/internal/notification"
	dErrors "signup/pkg/domain-errors"
)

// Values is the payload handed to a Submitter.
type Values struct {
	Username string
	Email    string
	Password string
}

// Form is one instance of the registration form.
type Form struct {
	values  map[Field]string
	touched map[Field]bool
	loading bool
	// loadingUntil bounds how long a stored loading flag is trusted. Zero
	// means no bound.
	loadingUntil time.Time
	notice       notification.Slot
}

// NewForm returns a form with every field empty and untouched.
func NewForm() *Form {
	f := &Form{}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.values = make(map[Field]string, len(fields))
	f.touched = make(map[Field]bool, len(fields))
	for _, name := range fields {
		f.values[name] = ""
		f.touched[name] = false
	}
}

// SetField records a change event. It neither validates nor marks the field touched.
func (f *Form) SetField(name Field, value string) error {
	if !name.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown field: "+string(name))
	}
	f.values[name] = value
	return nil
}

// MarkTouched records a blur event. Idempotent.
func (f *Form) MarkTouched(name Field) error {
	if !name.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown field: "+string(name))
	}
	f.touched[name] = true
	return nil
}

func (f *Form) touchAll() {
	for _, name := range fields {
		f.touched[name] = true
	}
}

// Value returns the current value of a field.
func (f *Form) Value(name Field) string {
	return f.values[name]
}

// Values returns the current field values.
func (f *Form) Values() Values {
	return Values{
		Username: f.values[FieldUsername],
		Email:    f.values[FieldEmail],
		Password: f.values[FieldPassword],
	}
}

func (f *Form) Touched(name Field) bool {
	return f.touched[name]
}

func (f *Form) Loading() bool {
	return f.loading
}

func (f *Form) IsUsernameValid() bool { return IsUsernameValid(f.values[FieldUsername]) }
func (f *Form) IsEmailValid() bool    { return IsEmailValid(f.values[FieldEmail]) }
func (f *Form) IsPasswordValid() bool { return IsPasswordValid(f.values[FieldPassword]) }

// IsFieldValid evaluates the predicate for name against its current value.
func (f *Form) IsFieldValid(name Field) bool {
	return IsValid(name, f.values[name])
}

// IsFormValid is the conjunction of every field predicate.
func (f *Form) IsFormValid() bool {
	for _, name := range fields {
		if !f.IsFieldValid(name) {
			return false
		}
	}
	return true
}

// CanSubmit mirrors the enabled state of the submit control.
func (f *Form) CanSubmit() bool {
	return f.IsFormValid() && !f.loading
}

// InlineError returns the message to show under name, or "" when the field is
// untouched or valid.
func (f *Form) InlineError(name Field) string {
	if !f.touched[name] || f.IsFieldValid(name) {
		return ""
	}
	return Message(name)
}

// SubmitLabel is the caption of the submit control.
func (f *Form) SubmitLabel() string {
	if f.loading {
		return LabelSubmitting
	}
	return LabelSubmit
}

// Notification returns the shown notification, if any.
func (f *Form) Notification() (notification.Notification, bool) {
	return f.notice.Current()
}

// Dismiss clears the notification. Safe to call when none is shown.
func (f *Form) Dismiss() bool {
	return f.notice.Dismiss()
}
