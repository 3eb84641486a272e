package rs

import "errors"

var (
	// ErrInvalidInput reports parameters outside the domain of an operation:
	// a message of degree >= k, repeated or too many evaluation points, bad
	// k, e, m or L, or a field too large for the list decoder's root search.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsolvableSystem is returned when the list decoder's interpolation
	// system admits only the zero polynomial.
	ErrUnsolvableSystem = errors.New("interpolation system has only the trivial solution")

	// ErrDecodeFailure is returned when the unique decoder finds no
	// polynomial consistent with the received word.
	ErrDecodeFailure = errors.New("decoding failed")
)
