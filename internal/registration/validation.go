package registration

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// notSpaceOrAt matches what a browser regex treats as [^\s@]: besides ASCII
// whitespace that includes vertical tab, every Unicode space separator and BOM.
const notSpaceOrAt = `[^\s\v\p{Z}\x{FEFF}@]`

var emailPattern = regexp.MustCompile(`^` + notSpaceOrAt + `+@` + notSpaceOrAt + `+\.` + notSpaceOrAt + `+$`)

// Inline messages shown under a touched field that fails its predicate.
const (
	MsgUsernameInvalid = "Must be at least 3 characters."
	MsgEmailInvalid    = "Enter a valid email."
	MsgPasswordInvalid = "Must be 6+ characters, 1 uppercase letter, and 1 number."
)

// IsUsernameValid reports whether the trimmed username has at least three
// characters. Characters are UTF-16 code units, as a browser counts them, so
// an emoji counts twice.
func IsUsernameValid(s string) bool {
	return codeUnits(strings.TrimFunc(s, isTrimmable)) >= minUsernameLength
}

// isTrimmable is the browser's whitespace and line terminator set: Unicode
// White_Space without NEL, plus BOM.
func isTrimmable(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func codeUnits(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

// runeUnits is the UTF-16 length of r. Invalid runes decode as U+FFFD, one unit.
func runeUnits(r rune) int {
	if l := utf16.RuneLen(r); l > 0 {
		return l
	}
	return 1
}

// IsEmailValid reports whether s looks like local@domain.tld with no
// whitespace and a single '@'.
func IsEmailValid(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPasswordValid requires at least six UTF-16 code units, one ASCII uppercase
// letter and one ASCII digit. Line terminators make the value invalid.
func IsPasswordValid(s string) bool {
	var n int
	var upper, digit bool
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
			return false
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
		n += runeUnits(r)
	}
	return upper && digit && n >= minPasswordLength
}

// IsValid dispatches to the predicate for f. Unknown fields are never valid.
func IsValid(f Field, value string) bool {
	switch f {
	case FieldUsername:
		return IsUsernameValid(value)
	case FieldEmail:
		return IsEmailValid(value)
	case FieldPassword:
		return IsPasswordValid(value)
	default:
		return false
	}
}

// Message returns the fixed inline error for f.
func Message(f Field) string {
	switch f {
	case FieldUsername:
		return MsgUsernameInvalid
	case FieldEmail:
		return MsgEmailInvalid
	case FieldPassword:
		return MsgPasswordInvalid
	default:
		return ""
	}
}
