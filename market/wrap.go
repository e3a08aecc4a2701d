package market

import (
	"go.uber.org/zap"
)

// Wrap converts amount of the caller's circulating units into
// collectible units on the hybrid ledger. Wrapped units stop earning
// holder rewards: the caller is settled first, then circulation shrinks
// while total supply stays put.
func (m *Market) Wrap(caller Address, id ShareID, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return err
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	pos := m.peekPositionLocked(id, caller)
	if pos == nil || pos.Balance < amount {
		return ErrInsufficientBalance
	}
	if err := m.settleLocked(s, pos); err != nil {
		return err
	}

	if err := m.hybrid.Mint(caller, uint64(id), amount); err != nil {
		return err
	}
	pos.Balance -= amount
	s.TokensInCirculation -= amount

	m.log.Debug("wrapped",
		zap.Uint64("id", uint64(id)),
		zap.String("holder", caller.String()),
		zap.Uint64("amount", amount))
	return nil
}

// Unwrap converts amount of the caller's collectible units back into
// circulating fungible units. The restored balance earns rewards only
// from fee events after the unwrap.
func (m *Market) Unwrap(caller Address, id ShareID, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return err
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	if m.hybrid.BalanceOf(caller, uint64(id)) < amount {
		return ErrInsufficientBalance
	}

	pos := m.positionLocked(s, caller)
	circ, err := addCheck(s.TokensInCirculation, amount)
	if err != nil {
		return err
	}
	balance, err := addCheck(pos.Balance, amount)
	if err != nil {
		return err
	}
	if err := m.settleLocked(s, pos); err != nil {
		return err
	}

	if err := m.hybrid.Burn(caller, uint64(id), amount); err != nil {
		return err
	}
	pos.Balance = balance
	s.TokensInCirculation = circ

	m.log.Debug("unwrapped",
		zap.Uint64("id", uint64(id)),
		zap.String("holder", caller.String()),
		zap.Uint64("amount", amount))
	return nil
}
