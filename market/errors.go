package market

import "errors"

// Authorization failures.
var (
	// ErrNotAuthorized indicates the caller may not perform this action.
	ErrNotAuthorized = errors.New("market: not authorized")

	// ErrNotPendingOwner indicates an ownership acceptance by an address
	// that is not the nominated new owner.
	ErrNotPendingOwner = errors.New("market: caller is not the pending owner")

	// ErrSelfDealing indicates a creator buying their own share on the curve.
	ErrSelfDealing = errors.New("market: creator may not buy own share")
)

// State preconditions.
var (
	// ErrShareNotFound indicates the share id or name resolves to nothing.
	ErrShareNotFound = errors.New("market: share not found")

	// ErrNameTaken indicates the share name is already registered.
	ErrNameTaken = errors.New("market: share name already taken")

	// ErrWrongPhase indicates the requested operation does not match the
	// share's current sale phase.
	ErrWrongPhase = errors.New("market: wrong phase for operation")

	// ErrCurveNotRegistered indicates an unknown pricing curve name.
	ErrCurveNotRegistered = errors.New("market: pricing curve not registered")

	// ErrCurveNotAllowed indicates a pricing curve that is registered but
	// not currently allow-listed.
	ErrCurveNotAllowed = errors.New("market: pricing curve not allow-listed")

	// ErrAllocationExhausted indicates the sale channel has fewer units
	// left than requested.
	ErrAllocationExhausted = errors.New("market: allocation exhausted")

	// ErrAuctionExpired indicates the dutch-auction price has decayed past
	// zero.
	ErrAuctionExpired = errors.New("market: auction price decayed to zero")
)

// Economic preconditions.
var (
	// ErrPriceTooHigh indicates the quoted cost exceeds the buyer's maximum.
	ErrPriceTooHigh = errors.New("market: quoted cost above caller maximum")

	// ErrPriceTooLow indicates the quoted proceeds fall below the seller's
	// minimum.
	ErrPriceTooLow = errors.New("market: quoted proceeds below caller minimum")

	// ErrAllocationExceeded indicates a purchase beyond the caller's proven
	// or granted allocation.
	ErrAllocationExceeded = errors.New("market: purchase exceeds allocation")

	// ErrInvalidProof indicates a Merkle allocation proof that does not
	// verify against the share's presale root.
	ErrInvalidProof = errors.New("market: invalid allocation proof")

	// ErrGrantMismatch indicates an offchain grant bound to a different
	// claimant or share.
	ErrGrantMismatch = errors.New("market: grant does not match purchase")

	// ErrInsufficientBalance indicates a sell, wrap, or burn larger than
	// the caller's holding.
	ErrInsufficientBalance = errors.New("market: insufficient balance")

	// ErrInsufficientInventory indicates a curve buy larger than the
	// remaining curve inventory.
	ErrInsufficientInventory = errors.New("market: insufficient curve inventory")

	// ErrInsufficientReserve indicates a sell the curve reserve cannot pay.
	ErrInsufficientReserve = errors.New("market: insufficient curve reserve")

	// ErrNothingToClaim indicates a claim with a zero pending balance.
	ErrNothingToClaim = errors.New("market: nothing to claim")
)

// Idempotence guards and parameter validation.
var (
	// ErrNoopToggle indicates a flag toggle to its current value.
	ErrNoopToggle = errors.New("market: toggle is a no-op")

	// ErrInvalidParams indicates malformed share-creation or engine
	// parameters.
	ErrInvalidParams = errors.New("market: invalid parameters")

	// ErrCurveAllocationTooSmall indicates a bonding-curve allocation below
	// the configured floor.
	ErrCurveAllocationTooSmall = errors.New("market: bonding-curve allocation below floor")

	// ErrZeroAmount indicates a zero-unit trade request.
	ErrZeroAmount = errors.New("market: zero amount")

	// ErrArithmeticOverflow indicates a computation that exceeded 64 bits;
	// the whole call aborts rather than wrapping around.
	ErrArithmeticOverflow = errors.New("market: arithmetic overflow")
)
