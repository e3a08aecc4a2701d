package market

import (
	"go.uber.org/zap"
)

// snapshot is a deep copy of the engine's mutable trading state, taken
// before a batch so a failure partway through can be rolled back.
type snapshot struct {
	shares       map[ShareID]*Share
	positions    map[positionKey]*Position
	platformPool uint64
}

func (m *Market) snapshotLocked() *snapshot {
	snap := &snapshot{
		shares:       make(map[ShareID]*Share, len(m.shares)),
		positions:    make(map[positionKey]*Position, len(m.positions)),
		platformPool: m.platformPool,
	}
	for id, s := range m.shares {
		snap.shares[id] = s.clone()
	}
	for key, pos := range m.positions {
		snap.positions[key] = pos.clone()
	}
	return snap
}

func (m *Market) restoreLocked(snap *snapshot) {
	m.shares = snap.shares
	m.positions = snap.positions
	m.platformPool = snap.platformPool
}

// MultiBuy executes a sequence of curve purchases as one all-or-nothing
// unit: every order settles against the state left by the previous one,
// and the caller pays the combined cost in a single transfer. Any
// failure, including the payment itself, leaves the market untouched.
func (m *Market) MultiBuy(caller Address, orders []BuyOrder) error {
	if len(orders) == 0 {
		return ErrInvalidParams
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshotLocked()
	var total uint64
	for _, o := range orders {
		p, err := m.planBuyLocked(caller, o.ShareID, o.Amount, o.MaxCost)
		if err != nil {
			m.restoreLocked(snap)
			return err
		}
		m.applyBuyLocked(p)
		total, err = addCheck(total, p.cost)
		if err != nil {
			m.restoreLocked(snap)
			return err
		}
	}

	if total > 0 {
		if err := m.payment.TransferFrom(caller, m.treasury, total); err != nil {
			m.restoreLocked(snap)
			return err
		}
	}

	m.log.Debug("multi-buy",
		zap.String("buyer", caller.String()),
		zap.Int("orders", len(orders)),
		zap.Uint64("total_cost", total))
	return nil
}

// MultiSell executes a sequence of curve sales as one all-or-nothing
// unit, paying the combined proceeds in a single transfer.
func (m *Market) MultiSell(caller Address, orders []SellOrder) error {
	if len(orders) == 0 {
		return ErrInvalidParams
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshotLocked()
	var total uint64
	for _, o := range orders {
		p, err := m.planSellLocked(caller, o.ShareID, o.Amount, o.MinProceeds)
		if err != nil {
			m.restoreLocked(snap)
			return err
		}
		m.applySellLocked(p)
		total, err = addCheck(total, p.proceeds)
		if err != nil {
			m.restoreLocked(snap)
			return err
		}
	}

	if total > 0 {
		if err := m.payment.Transfer(m.treasury, caller, total); err != nil {
			m.restoreLocked(snap)
			return err
		}
	}

	m.log.Debug("multi-sell",
		zap.String("seller", caller.String()),
		zap.Int("orders", len(orders)),
		zap.Uint64("total_proceeds", total))
	return nil
}

// MultiClaim settles and withdraws the caller's holder rewards across
// several shares in a single payout. Fails with ErrNothingToClaim when
// nothing is pending on any of the shares.
func (m *Market) MultiClaim(caller Address, ids []ShareID) (uint64, error) {
	if len(ids) == 0 {
		return 0, ErrInvalidParams
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshotLocked()
	var total uint64
	for _, id := range ids {
		s, err := m.shareLocked(id)
		if err != nil {
			m.restoreLocked(snap)
			return 0, err
		}
		pos := m.peekPositionLocked(id, caller)
		if pos == nil {
			continue
		}
		if err := m.settleLocked(s, pos); err != nil {
			m.restoreLocked(snap)
			return 0, err
		}
		total, err = addCheck(total, pos.Accrued)
		if err != nil {
			m.restoreLocked(snap)
			return 0, err
		}
		pos.Accrued = 0
	}
	if total == 0 {
		m.restoreLocked(snap)
		return 0, ErrNothingToClaim
	}

	if err := m.payment.Transfer(m.treasury, caller, total); err != nil {
		m.restoreLocked(snap)
		return 0, err
	}

	m.log.Debug("multi-claim",
		zap.String("holder", caller.String()),
		zap.Int("shares", len(ids)),
		zap.Uint64("total", total))
	return total, nil
}
