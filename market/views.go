package market

// ShareIDByName resolves a share name to its id, or 0 when no share has
// that name.
func (m *Market) ShareIDByName(name string) ShareID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.names[name]
}

// ShareInfo returns a copy of the share record.
func (m *Market) ShareInfo(id ShareID) (*Share, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return nil, err
	}
	return s.clone(), nil
}

// Position returns a copy of the holder's record for a share, or nil
// when the holder never touched it.
func (m *Market) Position(id ShareID, holder Address) (*Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.shareLocked(id); err != nil {
		return nil, err
	}
	pos := m.peekPositionLocked(id, holder)
	if pos == nil {
		return nil, nil
	}
	return pos.clone(), nil
}

// PoolBalances reports a share's unclaimed creator pool alongside the
// global platform pool.
func (m *Market) PoolBalances(id ShareID) (creator, platform uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return 0, 0, err
	}
	return s.CreatorPool, m.platformPool, nil
}

// AuctionPrice returns the current per-unit dutch-auction price for a
// share in the DutchAuction phase.
func (m *Market) AuctionPrice(id ShareID) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return 0, err
	}
	if s.Phase != PhaseDutchAuction {
		return 0, ErrWrongPhase
	}
	return m.auctionPriceLocked(s, m.clock.Now().Unix())
}

// TokenURI returns the collectible metadata URI for a share, or "" when
// none is registered on the hybrid ledger.
func (m *Market) TokenURI(id ShareID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.shareLocked(id); err != nil {
		return "", err
	}
	return m.hybrid.URI(uint64(id)), nil
}
