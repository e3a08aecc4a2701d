package market

import (
	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/rewards"
)

// Claim settles and withdraws the caller's holder reward for a share.
// Returns the amount paid out; claiming with nothing pending fails with
// ErrNothingToClaim.
func (m *Market) Claim(caller Address, id ShareID) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return 0, err
	}
	pos := m.peekPositionLocked(id, caller)
	if pos == nil {
		return 0, ErrNothingToClaim
	}
	if err := m.settleLocked(s, pos); err != nil {
		return 0, err
	}
	amount := pos.Accrued
	if amount == 0 {
		return 0, ErrNothingToClaim
	}

	if err := m.payment.Transfer(m.treasury, caller, amount); err != nil {
		return 0, err
	}
	pos.Accrued = 0

	m.log.Debug("holder reward claimed",
		zap.Uint64("id", uint64(id)),
		zap.String("holder", caller.String()),
		zap.Uint64("amount", amount))
	return amount, nil
}

// ClaimCreator withdraws a share's creator fee pool. Only the share
// owner may withdraw, even when owner and creator have diverged.
func (m *Market) ClaimCreator(caller Address, id ShareID) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return 0, err
	}
	if caller != s.Owner {
		return 0, ErrNotAuthorized
	}
	amount := s.CreatorPool
	if amount == 0 {
		return 0, ErrNothingToClaim
	}

	if err := m.payment.Transfer(m.treasury, caller, amount); err != nil {
		return 0, err
	}
	s.CreatorPool = 0

	m.log.Info("creator pool claimed",
		zap.Uint64("id", uint64(id)),
		zap.Uint64("amount", amount))
	return amount, nil
}

// ClaimPlatform withdraws the global platform fee pool to the platform
// owner.
func (m *Market) ClaimPlatform(caller Address) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return 0, ErrNotAuthorized
	}
	amount := m.platformPool
	if amount == 0 {
		return 0, ErrNothingToClaim
	}

	if err := m.payment.Transfer(m.treasury, caller, amount); err != nil {
		return 0, err
	}
	m.platformPool = 0

	m.log.Info("platform pool claimed", zap.Uint64("amount", amount))
	return amount, nil
}

// PendingReward reports the holder's claimable reward without settling:
// already-accrued reward plus whatever the accumulator owes since the
// holder's last checkpoint.
func (m *Market) PendingReward(id ShareID, holder Address) (uint64, error) {
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
	pending, err := rewards.Pending(s.AccumulatorScaled, pos.Checkpoint, pos.Balance)
	if err != nil {
		return 0, err
	}
	return addCheck(pos.Accrued, pending)
}
