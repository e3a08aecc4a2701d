package market

import (
	"math/big"

	"github.com/sharesorg/libshares-go/allocproof"
	"github.com/sharesorg/libshares-go/ledger"
	"github.com/sharesorg/libshares-go/pricing"
	"github.com/sharesorg/libshares-go/vesting"
)

// Address identifies a principal; see ledger.Address.
type Address = ledger.Address

// ShareID identifies a listed share. Ids are dense, assigned sequentially
// from 1; 0 means "not found" and is never assigned.
type ShareID uint64

// Phase is a share's sale phase. Transitions are one-directional:
// Presale -> DutchAuction -> BondingCurve, with either pre-curve phase
// skippable when its allocation is not configured.
type Phase uint8

const (
	PhasePresale Phase = iota
	PhaseDutchAuction
	PhaseBondingCurve
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePresale:
		return "presale"
	case PhaseDutchAuction:
		return "dutch-auction"
	case PhaseBondingCurve:
		return "bonding-curve"
	default:
		return "unknown"
	}
}

// Channel selects a vesting channel of a holder position.
type Channel uint8

const (
	ChannelPresale Channel = iota
	ChannelDutch
)

// PresaleTerms are the presale sale-channel parameters of a share.
type PresaleTerms struct {
	UnitPrice uint64          // fixed price per unit
	Root      allocproof.Root // Merkle commitment over (address, allocation)
	Remaining uint64          // unsold presale units
	Window    vesting.Window  // release window for presale purchases
}

// DutchTerms are the dutch-auction sale-channel parameters of a share.
type DutchTerms struct {
	StartPrice  uint64         // per-unit price when the auction opens
	DecayPerSec uint64         // linear per-unit price decrease per second
	Remaining   uint64         // unsold auction units
	Window      vesting.Window // release window for auction purchases
	StartTime   int64          // unix seconds; set when the phase begins
}

// Share is the per-asset market record.
type Share struct {
	ID    ShareID
	Name  string
	Phase Phase

	// Creator paid the creation gate and is immutable; Owner controls
	// phase advancement and creator-pool withdrawal and starts equal to
	// Creator.
	Creator Address
	Owner   Address

	CurveName string        // registry name of the bound pricing curve
	Curve     pricing.Curve // fixed at creation

	TokenCount          uint64 // total minted supply
	TokensInCirculation uint64 // fee-eligible supply (excludes wrapped units)
	CurveInventory      uint64 // units the curve still tracks as sellable
	CurveReserve        uint64 // payment-token value held by the curve

	// AccumulatorScaled is the 1e18-scaled holder-fee-per-unit running
	// total. Non-decreasing for the life of the share.
	AccumulatorScaled *big.Int

	CreatorPool uint64 // unclaimed creator fees

	Presale PresaleTerms
	Dutch   DutchTerms
}

// clone deep-copies the share for snapshots and read views.
func (s *Share) clone() *Share {
	out := *s
	out.AccumulatorScaled = new(big.Int).Set(s.AccumulatorScaled)
	return &out
}

// Position is one holder's record for one share. Positions are created
// lazily on first purchase and never deleted; zero balance is a valid
// terminal state.
type Position struct {
	Balance uint64 // circulating units held

	// Checkpoint is the share accumulator value at the last settlement.
	Checkpoint *big.Int

	// Accrued is reward settled but not yet claimed.
	Accrued uint64

	PresaleVest vesting.Record
	DutchVest   vesting.Record
}

// clone deep-copies the position.
func (p *Position) clone() *Position {
	out := *p
	out.Checkpoint = new(big.Int).Set(p.Checkpoint)
	return &out
}

type positionKey struct {
	id   ShareID
	addr Address
}

// Params are the engine's fee and creation parameters.
type Params struct {
	CreatorCutBPS    uint64
	HolderCutBPS     uint64
	MinCurveAllocBPS uint64
}

// PresaleParams configure a presale channel at share creation.
type PresaleParams struct {
	UnitPrice  uint64
	Allocation uint64
	Root       allocproof.Root
	Window     vesting.Window
}

// DutchParams configure a dutch-auction channel at share creation.
type DutchParams struct {
	StartPrice  uint64
	DecayPerSec uint64
	Allocation  uint64
	Window      vesting.Window
}

// CreateParams describe a new share listing.
type CreateParams struct {
	Name            string
	CurveName       string
	CurveAllocation uint64
	Presale         *PresaleParams
	Dutch           *DutchParams
}

// BuyOrder is one element of a MultiBuy batch.
type BuyOrder struct {
	ShareID ShareID
	Amount  uint64
	MaxCost uint64
}

// SellOrder is one element of a MultiSell batch.
type SellOrder struct {
	ShareID     ShareID
	Amount      uint64
	MinProceeds uint64
}
