package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: no form draft under the key, or it has expired
//   - ErrUnavailable: the backing store could not be reached
//   - ErrCorrupt: a stored draft could not be opened or decoded
//
// For validation errors (bad input, unknown fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrCorrupt     = errors.New("corrupt")
)
