// Package ledger defines the external token collaborators the market
// engine moves value through: a fungible payment token and the hybrid
// fungible/non-fungible ledger that represents wrapped collectible
// shares. The engine only depends on the interfaces; in-memory
// implementations are provided for tests and embedders.
package ledger

import "encoding/hex"

// Address identifies a principal: a 20-byte public key hash.
type Address [20]byte

// String returns the hex encoding of the address.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// PaymentToken is the fungible settlement asset. Both methods move the
// exact amount or fail; silent truncation is not permitted.
type PaymentToken interface {
	// Transfer moves amount from an account the engine controls.
	Transfer(from, to Address, amount uint64) error

	// TransferFrom moves amount out of owner's account under the
	// allowance owner granted the engine.
	TransferFrom(owner, to Address, amount uint64) error
}

// HybridLedger tracks collectible-wrapped share units, keyed by share id.
type HybridLedger interface {
	Mint(to Address, id uint64, amount uint64) error
	Burn(from Address, id uint64, amount uint64) error
	BalanceOf(addr Address, id uint64) uint64

	// URI returns the metadata URI for a share's collectible class, or ""
	// when no metadata is registered.
	URI(id uint64) string
}
