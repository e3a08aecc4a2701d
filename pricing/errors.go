package pricing

import "errors"

var (
	// ErrZeroAmount indicates a quote request for zero units.
	ErrZeroAmount = errors.New("pricing: zero amount")

	// ErrInvalidParams indicates curve parameters out of range.
	ErrInvalidParams = errors.New("pricing: invalid curve parameters")

	// ErrAmountExceedsReserve indicates a trade larger than the curve's
	// effective base reserve.
	ErrAmountExceedsReserve = errors.New("pricing: amount exceeds curve reserve")

	// ErrPriceOverflow indicates a quoted price that does not fit in 64 bits.
	ErrPriceOverflow = errors.New("pricing: price overflows uint64")
)
