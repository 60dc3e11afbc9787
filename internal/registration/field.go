package registration

import (
	dErrors "signup/pkg/domain-errors"
)

// Field names one input of the registration form.
// Invariant: the value must be one of the fields returned by Fields.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// fields is the single source of truth for the form's inputs, in display order.
var fields = []Field{FieldUsername, FieldEmail, FieldPassword}

// Fields returns the form's inputs in display order.
func Fields() []Field {
	return append([]Field(nil), fields...)
}

// ParseField constructs a Field from external input (path params, form keys).
//
// Errors: returns CodeInvalidInput for anything that is not a known field.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown field: "+s)
	}
	return f, nil
}

func (f Field) IsValid() bool {
	for _, known := range fields {
		if f == known {
			return true
		}
	}
	return false
}

func (f Field) String() string {
	return string(f)
}
