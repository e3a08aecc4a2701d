package fees

import "errors"

var (
	// ErrInvalidBPS indicates a basis-point parameter above the denominator,
	// or a creator+holder sum above it.
	ErrInvalidBPS = errors.New("fees: invalid basis points")
)
