package market

import (
	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/allocproof"
)

// BuyPresale purchases amount presale units at the fixed unit price.
//
// The caller proves their total allocation with a Merkle proof against
// the share's presale root; cumulative purchases may never exceed that
// allocation. Presale purchases carry no trading fee. Purchased units do
// not circulate until released by the vesting ledger; proceeds fund the
// bonding-curve reserve.
func (m *Market) BuyPresale(caller Address, id ShareID, amount, maxCost, allocation uint64, proof *allocproof.Proof) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return err
	}
	if s.Phase != PhasePresale {
		return ErrWrongPhase
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	if !allocproof.Verify(proof, s.Presale.Root, caller, allocation) {
		return ErrInvalidProof
	}
	if amount > s.Presale.Remaining {
		return ErrAllocationExhausted
	}

	var prior uint64
	if pos := m.peekPositionLocked(id, caller); pos != nil {
		prior = pos.PresaleVest.Purchased
	}
	purchased, err := addCheck(prior, amount)
	if err != nil {
		return err
	}
	if purchased > allocation {
		return ErrAllocationExceeded
	}

	cost, err := mulCheck(amount, s.Presale.UnitPrice)
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
	pos.PresaleVest.Purchased = purchased
	s.Presale.Remaining -= amount
	s.CurveReserve = reserve

	m.log.Debug("presale purchase",
		zap.Uint64("id", uint64(id)),
		zap.String("buyer", caller.String()),
		zap.Uint64("amount", amount),
		zap.Uint64("cost", cost))
	return nil
}
