package allocproof

import "errors"

var (
	// ErrNoLeaves indicates an attempt to build a tree with no leaves.
	ErrNoLeaves = errors.New("allocproof: no leaves")

	// ErrIndexOutOfRange indicates a proof request for a leaf index the
	// tree does not contain.
	ErrIndexOutOfRange = errors.New("allocproof: leaf index out of range")
)
