package placement

import "errors"

var (
	// ErrMissingTable reports a default placement file absent at load time.
	ErrMissingTable = errors.New("placement: missing default table")
	// ErrMalformedTable reports a placement file that is not valid JSON of the expected shape.
	ErrMalformedTable = errors.New("placement: malformed table")
)
