package market

import (
	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/vesting"
)

// Vest releases any vested presale and auction units for the holder:
// released units enter the holder's circulating balance, the total and
// circulating supply, and the curve's reconciled inventory. Callable by
// anyone on behalf of any holder; returns the number of units released.
func (m *Market) Vest(id ShareID, holder Address) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return 0, err
	}
	pos := m.peekPositionLocked(id, holder)
	if pos == nil {
		return 0, nil
	}
	released, err := m.vestLocked(s, pos)
	if err != nil {
		return 0, err
	}
	if released > 0 {
		m.log.Debug("vested",
			zap.Uint64("id", uint64(id)),
			zap.String("holder", holder.String()),
			zap.Uint64("released", released))
	}
	return released, nil
}

// vestLocked releases whatever both vesting channels owe the position
// right now. The holder is settled against the accumulator before the
// balance grows, so previously pending rewards are computed on the
// pre-vest balance.
func (m *Market) vestLocked(s *Share, pos *Position) (uint64, error) {
	now := m.clock.Now().Unix()

	presale, err := vestingDue(&pos.PresaleVest, s.Presale.Window, now)
	if err != nil {
		return 0, err
	}
	dutch, err := vestingDue(&pos.DutchVest, s.Dutch.Window, now)
	if err != nil {
		return 0, err
	}
	total, err := addCheck(presale, dutch)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	count, err := addCheck(s.TokenCount, total)
	if err != nil {
		return 0, err
	}
	circ, err := addCheck(s.TokensInCirculation, total)
	if err != nil {
		return 0, err
	}
	inv, err := addCheck(s.CurveInventory, total)
	if err != nil {
		return 0, err
	}
	balance, err := addCheck(pos.Balance, total)
	if err != nil {
		return 0, err
	}
	if err := m.settleLocked(s, pos); err != nil {
		return 0, err
	}

	pos.PresaleVest.Released += presale
	pos.DutchVest.Released += dutch
	pos.Balance = balance
	s.TokenCount = count
	s.TokensInCirculation = circ
	s.CurveInventory = inv
	return total, nil
}

// vestingDue returns the units a single channel releases right now. A
// channel the holder never bought through releases nothing, so shares
// without that channel configured are never consulted for a window.
// Curve trades use this through their planning stage to fold matured
// vesting in without mutating ahead of payment.
func vestingDue(rec *vesting.Record, win vesting.Window, now int64) (uint64, error) {
	if rec.Purchased == 0 {
		return 0, nil
	}
	return vesting.Releasable(*rec, win, now)
}
