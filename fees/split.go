package fees

import "math/bits"

// BPSDenominator is the basis-point denominator: 10_000 bps = 100%.
const BPSDenominator = 10_000

// Split is the three-way allocation of a single fee event.
// Creator + Holder + Platform always equals the original fee exactly.
type Split struct {
	Creator  uint64 // credited to the share's creator pool
	Holder   uint64 // distributed to current holders via the accumulator
	Platform uint64 // remainder, credited to the platform pool
}

// SplitFee allocates fee among creator, holders, and platform.
//
// The creator and holder parts are floor(fee*bps/10_000); the platform
// takes the remainder so the three parts sum exactly to fee, absorbing
// integer-division loss. When circulating is zero there is no holder to
// receive the holder part, so it folds into the platform part and the
// returned Holder is zero.
func SplitFee(fee, creatorBPS, holderBPS, circulating uint64) (Split, error) {
	if creatorBPS > BPSDenominator || holderBPS > BPSDenominator ||
		creatorBPS+holderBPS > BPSDenominator {
		return Split{}, ErrInvalidBPS
	}

	creator := mulBPS(fee, creatorBPS)
	holder := mulBPS(fee, holderBPS)
	platform := fee - creator - holder

	if circulating == 0 {
		platform += holder
		holder = 0
	}

	return Split{Creator: creator, Holder: holder, Platform: platform}, nil
}

// mulBPS computes fee*bps/10_000 without intermediate overflow.
// The quotient always fits in 64 bits because bps <= BPSDenominator.
func mulBPS(fee, bps uint64) uint64 {
	hi, lo := bits.Mul64(fee, bps)
	q, _ := bits.Div64(hi, lo, BPSDenominator)
	return q
}
