// Package rewards implements the lazy reward-per-unit fee distribution.
//
// Every fee event adds holderFee*Scale/circulating to a share's running
// accumulator; a holder's unclaimed reward is the accumulator delta since
// their last settlement, times their balance, unscaled. Distribution cost
// is O(1) regardless of holder count: no operation ever iterates holders.
package rewards

import "math/big"

// Scale is the fixed-point scale of the accumulator. With 1e18 the
// rounding loss per fee event is bounded by circulating-1 indivisible
// units, negligible for realistic supplies.
const Scale = 1_000_000_000_000_000_000

var scaleBig = big.NewInt(Scale)

// Accumulate returns the accumulator after distributing holderFee across
// circulating units. The input is not modified. With zero circulating
// supply there is no one to distribute to and the accumulator is returned
// unchanged (as a copy); the caller must route the fee elsewhere.
//
// The result only grows: for any holderFee and circulating,
// Accumulate(acc, ...) >= acc.
func Accumulate(acc *big.Int, holderFee, circulating uint64) *big.Int {
	out := new(big.Int).Set(acc)
	if circulating == 0 || holderFee == 0 {
		return out
	}
	delta := new(big.Int).SetUint64(holderFee)
	delta.Mul(delta, scaleBig)
	delta.Div(delta, new(big.Int).SetUint64(circulating))
	return out.Add(out, delta)
}

// Pending computes the holder's unclaimed reward given the share
// accumulator, the holder's checkpoint, and the holder's balance:
// (acc - checkpoint) * balance / Scale.
func Pending(acc, checkpoint *big.Int, balance uint64) (uint64, error) {
	if acc == nil || checkpoint == nil {
		return 0, ErrNilAccumulator
	}
	if acc.Cmp(checkpoint) < 0 {
		return 0, ErrCheckpointAhead
	}
	if balance == 0 {
		return 0, nil
	}
	owed := new(big.Int).Sub(acc, checkpoint)
	owed.Mul(owed, new(big.Int).SetUint64(balance))
	owed.Div(owed, scaleBig)
	if !owed.IsUint64() {
		return 0, ErrRewardOverflow
	}
	return owed.Uint64(), nil
}
