package market

import "go.uber.org/zap"

// EndPresale advances a share out of the Presale phase: to DutchAuction
// when an auction channel is configured (recording the auction start
// time), else straight to BondingCurve.
//
// The share owner may end the presale at any time; anyone may once the
// presale allocation is exhausted.
func (m *Market) EndPresale(caller Address, id ShareID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return err
	}
	if s.Phase != PhasePresale {
		return ErrWrongPhase
	}
	if caller != s.Owner && s.Presale.Remaining != 0 {
		return ErrNotAuthorized
	}

	if s.Dutch.StartPrice > 0 {
		s.Phase = PhaseDutchAuction
		s.Dutch.StartTime = m.clock.Now().Unix()
	} else {
		s.Phase = PhaseBondingCurve
	}

	m.log.Info("presale ended",
		zap.Uint64("id", uint64(id)),
		zap.String("phase", s.Phase.String()),
		zap.Uint64("unsold", s.Presale.Remaining))
	return nil
}

// EndDutchAuction advances a share from DutchAuction to BondingCurve,
// the terminal phase. The share owner may end the auction at any time;
// anyone may once the auction allocation is exhausted.
func (m *Market) EndDutchAuction(caller Address, id ShareID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return err
	}
	if s.Phase != PhaseDutchAuction {
		return ErrWrongPhase
	}
	if caller != s.Owner && s.Dutch.Remaining != 0 {
		return ErrNotAuthorized
	}

	s.Phase = PhaseBondingCurve

	m.log.Info("dutch auction ended",
		zap.Uint64("id", uint64(id)),
		zap.Uint64("unsold", s.Dutch.Remaining))
	return nil
}
