// Package market implements the share-market engine: the registry of
// listed shares, the per-share sale phase machine, bonding-curve trading
// with lazily-settled holder rewards, and the wrap/unwrap bridge into the
// collectible ledger.
//
// Every exported method takes the caller address explicitly and executes
// as one atomic, serialized unit of work under the engine mutex: a
// failure anywhere in a call leaves no state change behind.
package market

import (
	"math/big"
	"math/bits"
	"sync"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/config"
	"github.com/sharesorg/libshares-go/fees"
	"github.com/sharesorg/libshares-go/ledger"
	"github.com/sharesorg/libshares-go/pricing"
	"github.com/sharesorg/libshares-go/rewards"
)

// Market is the share-market engine.
type Market struct {
	mu sync.Mutex

	params Params

	// treasury is the engine's own account on the payment token; curve
	// reserves and all fee pools are held there.
	treasury Address

	owner        Address
	pendingOwner *Address
	signer       *ec.PublicKey

	unrestrictedCreation bool
	creatorsAllowed      map[Address]bool

	curves       map[string]pricing.Curve
	curveAllowed map[string]bool

	shares    map[ShareID]*Share
	names     map[string]ShareID
	positions map[positionKey]*Position
	nextID    ShareID

	platformPool uint64

	payment ledger.PaymentToken
	hybrid  ledger.HybridLedger
	clock   clockwork.Clock
	log     *zap.Logger
}

// Options configure a new Market.
type Options struct {
	Params   Params
	Treasury Address // engine account on the payment token
	Owner    Address // platform owner
	Payment  ledger.PaymentToken
	Hybrid   ledger.HybridLedger
	Signer   *ec.PublicKey // offchain grant signer; may be nil until rotated in
	Clock    clockwork.Clock
	Logger   *zap.Logger
}

// ParamsFromConfig extracts the engine parameters from a config file.
func ParamsFromConfig(cfg config.Config) Params {
	return Params{
		CreatorCutBPS:    cfg.CreatorCutBPS,
		HolderCutBPS:     cfg.HolderCutBPS,
		MinCurveAllocBPS: cfg.MinCurveAllocBPS,
	}
}

// New validates the options and returns an empty market.
func New(opts Options) (*Market, error) {
	if opts.Payment == nil || opts.Hybrid == nil {
		return nil, ErrInvalidParams
	}
	if opts.Params.CreatorCutBPS > fees.BPSDenominator ||
		opts.Params.HolderCutBPS > fees.BPSDenominator ||
		opts.Params.CreatorCutBPS+opts.Params.HolderCutBPS > fees.BPSDenominator ||
		opts.Params.MinCurveAllocBPS > fees.BPSDenominator {
		return nil, ErrInvalidParams
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Market{
		params:          opts.Params,
		treasury:        opts.Treasury,
		owner:           opts.Owner,
		signer:          opts.Signer,
		creatorsAllowed: make(map[Address]bool),
		curves:          make(map[string]pricing.Curve),
		curveAllowed:    make(map[string]bool),
		shares:          make(map[ShareID]*Share),
		names:           make(map[string]ShareID),
		positions:       make(map[positionKey]*Position),
		nextID:          1,
		payment:         opts.Payment,
		hybrid:          opts.Hybrid,
		clock:           clock,
		log:             logger.Named("market"),
	}

	m.log.Info("market initialized",
		zap.Uint64("creator_cut_bps", opts.Params.CreatorCutBPS),
		zap.Uint64("holder_cut_bps", opts.Params.HolderCutBPS))

	return m, nil
}

// ---------------------------------------------------------------------------
// Internal helpers. All *Locked methods assume m.mu is held.
// ---------------------------------------------------------------------------

// shareLocked resolves a share id.
func (m *Market) shareLocked(id ShareID) (*Share, error) {
	s, ok := m.shares[id]
	if !ok {
		return nil, ErrShareNotFound
	}
	return s, nil
}

// positionLocked returns the holder's position, creating it lazily with
// its checkpoint at the share's current accumulator.
func (m *Market) positionLocked(s *Share, addr Address) *Position {
	key := positionKey{s.ID, addr}
	pos, ok := m.positions[key]
	if !ok {
		pos = &Position{Checkpoint: new(big.Int).Set(s.AccumulatorScaled)}
		m.positions[key] = pos
	}
	return pos
}

// peekPositionLocked returns the holder's position or nil, without
// creating one.
func (m *Market) peekPositionLocked(id ShareID, addr Address) *Position {
	return m.positions[positionKey{id, addr}]
}

// settleLocked flushes the holder's pending reward into their accrued
// balance and moves the checkpoint to the share's current accumulator.
// Must run before any operation that changes the holder's balance.
func (m *Market) settleLocked(s *Share, pos *Position) error {
	pending, err := rewards.Pending(s.AccumulatorScaled, pos.Checkpoint, pos.Balance)
	if err != nil {
		return err
	}
	accrued, carry := bits.Add64(pos.Accrued, pending, 0)
	if carry != 0 {
		return ErrArithmeticOverflow
	}
	pos.Accrued = accrued
	pos.Checkpoint.Set(s.AccumulatorScaled)
	return nil
}

// mulCheck multiplies with overflow detection.
func mulCheck(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return lo, nil
}

// addCheck adds with overflow detection.
func addCheck(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}
