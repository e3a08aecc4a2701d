package rewards

import "errors"

var (
	// ErrCheckpointAhead indicates a holder checkpoint greater than the
	// share accumulator, which can only come from corrupted state.
	ErrCheckpointAhead = errors.New("rewards: checkpoint ahead of accumulator")

	// ErrRewardOverflow indicates a pending reward that does not fit in 64 bits.
	ErrRewardOverflow = errors.New("rewards: pending reward overflows uint64")

	// ErrNilAccumulator indicates a nil accumulator or checkpoint value.
	ErrNilAccumulator = errors.New("rewards: nil accumulator")
)
