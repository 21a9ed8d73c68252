package statement

import "errors"

var (
	// ErrUnknownBank is returned when a bank ID has no registered source.
	ErrUnknownBank = errors.New("unknown bank")

	// ErrUnauthorized is returned when an upstream bank rejects the
	// service credential. Callers treat the page as empty, never partial.
	ErrUnauthorized = errors.New("statement source rejected credentials")
)
