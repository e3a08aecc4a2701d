package market

import (
	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/offchain"
)

// BuyDutch purchases amount units at the auction's current decayed
// price. The purchase is gated by a platform-signed offchain grant bound
// to the caller and the share; cumulative auction purchases may never
// exceed the granted amount. Auction purchases carry no trading fee and
// vest like presale purchases; proceeds fund the bonding-curve reserve.
func (m *Market) BuyDutch(caller Address, id ShareID, amount, maxCost uint64, grant *offchain.Grant, sigDER []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return err
	}
	if s.Phase != PhaseDutchAuction {
		return ErrWrongPhase
	}
	if amount == 0 {
		return ErrZeroAmount
	}

	if grant == nil || grant.Claimant != [20]byte(caller) || grant.ShareID != uint64(id) {
		return ErrGrantMismatch
	}
	now := m.clock.Now().Unix()
	if err := offchain.VerifyGrant(grant, sigDER, m.signer, now); err != nil {
		return err
	}

	if amount > s.Dutch.Remaining {
		return ErrAllocationExhausted
	}

	var prior uint64
	if pos := m.peekPositionLocked(id, caller); pos != nil {
		prior = pos.DutchVest.Purchased
	}
	purchased, err := addCheck(prior, amount)
	if err != nil {
		return err
	}
	if purchased > grant.Amount {
		return ErrAllocationExceeded
	}

	unit, err := m.auctionPriceLocked(s, now)
	if err != nil {
		return err
	}
	cost, err := mulCheck(amount, unit)
	if err != nil {
		return err
	}
	if cost > maxCost {
		return ErrPriceTooHigh
	}
	reserve, err := addCheck(s.CurveReserve, cost)
	if err != nil {
		return err
	}

	if err := m.payment.TransferFrom(caller, m.treasury, cost); err != nil {
		return err
	}

	pos := m.positionLocked(s, caller)
	pos.DutchVest.Purchased = purchased
	s.Dutch.Remaining -= amount
	s.CurveReserve = reserve

	m.log.Debug("dutch-auction purchase",
		zap.Uint64("id", uint64(id)),
		zap.String("buyer", caller.String()),
		zap.Uint64("amount", amount),
		zap.Uint64("unit_price", unit),
		zap.Uint64("cost", cost))
	return nil
}

// auctionPriceLocked computes the current per-unit auction price:
// StartPrice minus the linear decay since the auction opened. Decay at
// or past the start price aborts instead of underflowing.
func (m *Market) auctionPriceLocked(s *Share, now int64) (uint64, error) {
	elapsed := now - s.Dutch.StartTime
	if elapsed < 0 {
		elapsed = 0
	}
	decay, err := mulCheck(s.Dutch.DecayPerSec, uint64(elapsed))
	if err != nil {
		// Decay beyond any representable price: the auction is over.
		return 0, ErrAuctionExpired
	}
	if decay >= s.Dutch.StartPrice {
		return 0, ErrAuctionExpired
	}
	return s.Dutch.StartPrice - decay, nil
}
