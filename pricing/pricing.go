// Package pricing defines the bonding-curve quote contract and the curve
// implementations shares can bind to.
//
// A Curve is a pure function of its inputs: same (current, inventory,
// amount) always yields the same (price, fee). The engine quotes sells
// through the symmetric framing Quote(current-amount, inventory+amount,
// amount), so buying then immediately selling the same amount is
// price-neutral up to fees regardless of the curve shape.
package pricing

import "math/bits"

// Curve quotes the price and fee for trading amount units when current
// units are already sold and inventory units remain sellable.
//
// Implementations must be deterministic and monotone in amount. The
// engine treats the quote as opaque and never inspects the curve type.
type Curve interface {
	Quote(current, inventory, amount uint64) (price, fee uint64, err error)
}

// feeFor computes price*feeBPS/10_000 without intermediate overflow.
func feeFor(price, feeBPS uint64) uint64 {
	hi, lo := bits.Mul64(price, feeBPS)
	q, _ := bits.Div64(hi, lo, 10_000)
	return q
}
