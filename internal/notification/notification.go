// Package notification holds the single status message a form shows above its
// fields. There is at most one at a time; a new one replaces the old, and it
// stays until the user dismisses it.
package notification

import (
	dErrors "signup/pkg/domain-errors"
)

// Kind selects the styling of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// ParseKind validates external input.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid notification kind")
	}
	return k, nil
}

func (k Kind) IsValid() bool {
	return k == KindSuccess || k == KindError
}

func (k Kind) String() string {
	return string(k)
}

// Notification is a message of a given kind.
type Notification struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Slot owns zero or one Notification. The zero value is an empty slot.
type Slot struct {
	current *Notification
}

// Show replaces whatever is currently shown.
func (s *Slot) Show(kind Kind, text string) {
	s.current = &Notification{Kind: kind, Text: text}
}

// Dismiss clears the slot and reports whether anything was shown.
// Calling it on an empty slot is a no-op.
func (s *Slot) Dismiss() bool {
	if s.current == nil {
		return false
	}
	s.current = nil
	return true
}

// Current returns a copy of the shown notification.
func (s *Slot) Current() (Notification, bool) {
	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}
