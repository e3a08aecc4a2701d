package pricing

import "math/big"

// Linear prices unit i at Base + Slope*i, summed in closed form over the
// traded range. Inventory does not influence the price; only the
// cumulative sold count does.
type Linear struct {
	Base   uint64 // price of unit 0
	Slope  uint64 // price increase per unit sold
	FeeBPS uint64 // trading fee in basis points
}

// Compile-time interface check.
var _ Curve = (*Linear)(nil)

// NewLinear validates parameters and returns a linear curve.
func NewLinear(base, slope, feeBPS uint64) (*Linear, error) {
	if feeBPS > 10_000 {
		return nil, ErrInvalidParams
	}
	return &Linear{Base: base, Slope: slope, FeeBPS: feeBPS}, nil
}

// Quote sums Base + Slope*i for i in [current, current+amount):
//
//	price = amount*Base + Slope*(amount*current + amount*(amount-1)/2)
//
// computed in big.Int and range-checked back into uint64.
func (c *Linear) Quote(current, _ /* inventory */, amount uint64) (uint64, uint64, error) {
	if amount == 0 {
		return 0, 0, ErrZeroAmount
	}

	amt := new(big.Int).SetUint64(amount)

	// Slope term: amount*current + amount*(amount-1)/2
	tri := new(big.Int).SetUint64(amount - 1)
	tri.Mul(tri, amt)
	tri.Rsh(tri, 1)
	ramp := new(big.Int).SetUint64(current)
	ramp.Mul(ramp, amt)
	ramp.Add(ramp, tri)
	ramp.Mul(ramp, new(big.Int).SetUint64(c.Slope))

	price := new(big.Int).SetUint64(c.Base)
	price.Mul(price, amt)
	price.Add(price, ramp)

	if !price.IsUint64() {
		return 0, 0, ErrPriceOverflow
	}
	p := price.Uint64()
	return p, feeFor(p, c.FeeBPS), nil
}
