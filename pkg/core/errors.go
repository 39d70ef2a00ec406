package core

import "errors"

var (
	// ErrUnknownValue is returned when text does not name a member of a closed attribute domain.
	ErrUnknownValue = errors.New("core: unknown value")
	// ErrPrefloatOnNonFloat indicates prefloat attributes on a motion that is not a float.
	ErrPrefloatOnNonFloat = errors.New("core: prefloat attributes set on non-float motion")
	// ErrNegativeBeat indicates a beat number below zero.
	ErrNegativeBeat = errors.New("core: beat number must be >= 0")
)
