package market

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/fees"
)

// CreateShare lists a new share and returns its id.
//
// The caller must be permitted by the creation gate (unrestricted
// creation enabled, on the creator allow-list, or the platform owner),
// the name must be free, and the pricing curve must be allow-listed at
// this moment; a later revocation does not invalidate the share.
// The initial phase is Presale when a presale channel is configured,
// else DutchAuction when an auction channel is, else BondingCurve.
func (m *Market) CreateShare(caller Address, p CreateParams) (ShareID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.unrestrictedCreation && !m.creatorsAllowed[caller] && caller != m.owner {
		return 0, ErrNotAuthorized
	}
	if p.Name == "" {
		return 0, ErrInvalidParams
	}
	if _, taken := m.names[p.Name]; taken {
		return 0, ErrNameTaken
	}

	curve, registered := m.curves[p.CurveName]
	if !registered {
		return 0, ErrCurveNotRegistered
	}
	if !m.curveAllowed[p.CurveName] {
		return 0, ErrCurveNotAllowed
	}

	if err := validateChannels(p); err != nil {
		return 0, err
	}
	if err := m.validateCurveFloorLocked(p); err != nil {
		return 0, err
	}

	s := &Share{
		ID:                m.nextID,
		Name:              p.Name,
		Creator:           caller,
		Owner:             caller,
		CurveName:         p.CurveName,
		Curve:             curve,
		CurveInventory:    p.CurveAllocation,
		AccumulatorScaled: new(big.Int),
	}

	if p.Presale != nil {
		s.Presale = PresaleTerms{
			UnitPrice: p.Presale.UnitPrice,
			Root:      p.Presale.Root,
			Remaining: p.Presale.Allocation,
			Window:    p.Presale.Window,
		}
	}
	if p.Dutch != nil {
		s.Dutch = DutchTerms{
			StartPrice:  p.Dutch.StartPrice,
			DecayPerSec: p.Dutch.DecayPerSec,
			Remaining:   p.Dutch.Allocation,
			Window:      p.Dutch.Window,
		}
	}

	switch {
	case p.Presale != nil:
		s.Phase = PhasePresale
	case p.Dutch != nil:
		s.Phase = PhaseDutchAuction
		s.Dutch.StartTime = m.clock.Now().Unix()
	default:
		s.Phase = PhaseBondingCurve
	}

	m.shares[s.ID] = s
	m.names[s.Name] = s.ID
	m.nextID++

	m.log.Info("share created",
		zap.Uint64("id", uint64(s.ID)),
		zap.String("name", s.Name),
		zap.String("creator", caller.String()),
		zap.String("phase", s.Phase.String()))

	return s.ID, nil
}

// validateChannels checks the sale-channel parameters of a new share.
func validateChannels(p CreateParams) error {
	if p.Presale != nil {
		if p.Presale.Allocation == 0 || p.Presale.UnitPrice == 0 || p.Presale.Root.IsZero() {
			return ErrInvalidParams
		}
		if err := p.Presale.Window.Validate(); err != nil {
			return err
		}
	}
	if p.Dutch != nil {
		if p.Dutch.Allocation == 0 || p.Dutch.StartPrice == 0 {
			return ErrInvalidParams
		}
		if err := p.Dutch.Window.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateCurveFloorLocked enforces the floor on the bonding curve's
// share of the total planned allocation.
func (m *Market) validateCurveFloorLocked(p CreateParams) error {
	total := p.CurveAllocation
	var err error
	if p.Presale != nil {
		if total, err = addCheck(total, p.Presale.Allocation); err != nil {
			return err
		}
	}
	if p.Dutch != nil {
		if total, err = addCheck(total, p.Dutch.Allocation); err != nil {
			return err
		}
	}
	if total == 0 {
		return ErrInvalidParams
	}

	// curveAlloc/total >= floor/10_000, compared without division.
	lhs, err := mulCheck(p.CurveAllocation, fees.BPSDenominator)
	if err != nil {
		return err
	}
	rhs, err := mulCheck(total, m.params.MinCurveAllocBPS)
	if err != nil {
		return err
	}
	if lhs < rhs {
		return ErrCurveAllocationTooSmall
	}
	return nil
}
