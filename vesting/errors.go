package vesting

import "errors"

var (
	// ErrZeroWindow indicates a vesting window with no duration.
	ErrZeroWindow = errors.New("vesting: zero-length vesting window")

	// ErrWindowInverted indicates a vesting window ending before it starts.
	ErrWindowInverted = errors.New("vesting: window ends before it starts")

	// ErrReleasedExceedsPurchased indicates a record with more released than
	// purchased, which can only come from corrupted state.
	ErrReleasedExceedsPurchased = errors.New("vesting: released exceeds purchased")
)
