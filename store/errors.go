package store

import "errors"

var (
	// ErrNilParam indicates a required argument was nil.
	ErrNilParam = errors.New("store: nil parameter")

	// ErrNoState indicates the database holds no saved market state.
	ErrNoState = errors.New("store: no saved state")

	// ErrCorruptRecord indicates a stored record that fails to decode.
	ErrCorruptRecord = errors.New("store: corrupt record")
)
