package pricing

import "math/big"

// Product is a constant-product (virtual reserve) curve for
// variable-supply shares: the price depends on remaining inventory, not
// on the cumulative sold count. The effective base reserve is
// inventory + VirtualBase, the quote reserve is K/x with
// K = VirtualBase*VirtualQuote, so the price rises as inventory drains
// and never reaches infinity while inventory is positive.
type Product struct {
	VirtualBase  uint64 // virtual base-reserve offset, > 0
	VirtualQuote uint64 // quote reserve at the virtual offset, > 0
	FeeBPS       uint64 // trading fee in basis points
}

// Compile-time interface check.
var _ Curve = (*Product)(nil)

// NewProduct validates parameters and returns a constant-product curve.
func NewProduct(virtualBase, virtualQuote, feeBPS uint64) (*Product, error) {
	if virtualBase == 0 || virtualQuote == 0 || feeBPS > 10_000 {
		return nil, ErrInvalidParams
	}
	return &Product{VirtualBase: virtualBase, VirtualQuote: virtualQuote, FeeBPS: feeBPS}, nil
}

// Quote prices amount units out of the effective base reserve:
//
//	x = inventory + VirtualBase
//	price = K*amount / (x*(x-amount)),  K = VirtualBase*VirtualQuote
//
// which is the constant-product payment y*dx/(x-dx) with y = K/x.
func (c *Product) Quote(_ /* current */, inventory, amount uint64) (uint64, uint64, error) {
	if amount == 0 {
		return 0, 0, ErrZeroAmount
	}

	x := new(big.Int).SetUint64(inventory)
	x.Add(x, new(big.Int).SetUint64(c.VirtualBase))

	amt := new(big.Int).SetUint64(amount)
	if x.Cmp(amt) <= 0 {
		return 0, 0, ErrAmountExceedsReserve
	}

	k := new(big.Int).SetUint64(c.VirtualBase)
	k.Mul(k, new(big.Int).SetUint64(c.VirtualQuote))

	num := new(big.Int).Mul(k, amt)
	den := new(big.Int).Sub(x, amt)
	den.Mul(den, x)
	price := num.Div(num, den)

	if !price.IsUint64() {
		return 0, 0, ErrPriceOverflow
	}
	p := price.Uint64()
	return p, feeFor(p, c.FeeBPS), nil
}
