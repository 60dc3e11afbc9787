package domain

import (
	"github.com/google/uuid"

	dErrors "signup/pkg/domain-errors"
)

// FormID identifies one registration form instance owned by a single browser
// session or API client.
//
// Usage: construct via ParseFormID at trust boundaries; NewFormID for fresh forms.
type FormID uuid.UUID

// NewFormID returns a random form identifier.
func NewFormID() FormID {
	return FormID(uuid.New())
}

// ParseFormID parses external input into a FormID.
//
// Errors: returns CodeInvalidInput when the value is empty, malformed or the nil UUID.
func ParseFormID(s string) (FormID, error) {
	if s == "" {
		return FormID{}, dErrors.New(dErrors.CodeInvalidInput, "form id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return FormID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid form id")
	}
	if u == uuid.Nil {
		return FormID{}, dErrors.New(dErrors.CodeInvalidInput, "form id cannot be nil")
	}
	return FormID(u), nil
}

func (id FormID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the id is the zero value.
func (id FormID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
