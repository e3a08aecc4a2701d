package market

import (
	"math/big"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/sharesorg/libshares-go/vesting"
)

// State is the market's full persistable state. Pricing curves are code,
// not data: shares carry only the curve's registry name, and importing a
// state requires the same names to be registered first.
type State struct {
	Owner                Address
	PendingOwner         *Address
	Signer               []byte // compressed public key, empty when unset
	Params               Params
	UnrestrictedCreation bool
	CreatorsAllowed      []Address
	CurveAllowed         map[string]bool
	NextID               ShareID
	PlatformPool         uint64
	Shares               []ShareState
	Positions            []PositionState
}

// ShareState is one share's persistable record.
type ShareState struct {
	ID                  ShareID
	Name                string
	Phase               Phase
	Creator             Address
	Owner               Address
	CurveName           string
	TokenCount          uint64
	TokensInCirculation uint64
	CurveInventory      uint64
	CurveReserve        uint64
	AccumulatorScaled   *big.Int
	CreatorPool         uint64
	Presale             PresaleTerms
	Dutch               DutchTerms
}

// PositionState is one holder position's persistable record.
type PositionState struct {
	ShareID     ShareID
	Holder      Address
	Balance     uint64
	Checkpoint  *big.Int
	Accrued     uint64
	PresaleVest vesting.Record
	DutchVest   vesting.Record
}

// ExportState snapshots the market for persistence.
func (m *Market) ExportState() *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := &State{
		Owner:                m.owner,
		Params:               m.params,
		UnrestrictedCreation: m.unrestrictedCreation,
		CurveAllowed:         make(map[string]bool, len(m.curveAllowed)),
		NextID:               m.nextID,
		PlatformPool:         m.platformPool,
		Shares:               make([]ShareState, 0, len(m.shares)),
		Positions:            make([]PositionState, 0, len(m.positions)),
	}
	if m.pendingOwner != nil {
		pending := *m.pendingOwner
		st.PendingOwner = &pending
	}
	if m.signer != nil {
		st.Signer = m.signer.Compressed()
	}
	for a, allowed := range m.creatorsAllowed {
		if allowed {
			st.CreatorsAllowed = append(st.CreatorsAllowed, a)
		}
	}
	for name, allowed := range m.curveAllowed {
		st.CurveAllowed[name] = allowed
	}
	for _, s := range m.shares {
		st.Shares = append(st.Shares, ShareState{
			ID:                  s.ID,
			Name:                s.Name,
			Phase:               s.Phase,
			Creator:             s.Creator,
			Owner:               s.Owner,
			CurveName:           s.CurveName,
			TokenCount:          s.TokenCount,
			TokensInCirculation: s.TokensInCirculation,
			CurveInventory:      s.CurveInventory,
			CurveReserve:        s.CurveReserve,
			AccumulatorScaled:   new(big.Int).Set(s.AccumulatorScaled),
			CreatorPool:         s.CreatorPool,
			Presale:             s.Presale,
			Dutch:               s.Dutch,
		})
	}
	for key, pos := range m.positions {
		st.Positions = append(st.Positions, PositionState{
			ShareID:     key.id,
			Holder:      key.addr,
			Balance:     pos.Balance,
			Checkpoint:  new(big.Int).Set(pos.Checkpoint),
			Accrued:     pos.Accrued,
			PresaleVest: pos.PresaleVest,
			DutchVest:   pos.DutchVest,
		})
	}
	return st
}

// ImportState replaces the market's state with a previously exported
// snapshot. Every curve name the snapshot references must already be
// registered so shares can be re-bound to live curve implementations;
// registered curves absent from the snapshot keep their current
// allow-list state. The whole snapshot is staged and validated before
// the first field is replaced, so a failed import leaves the market
// unchanged.
func (m *Market) ImportState(st *State) error {
	if st == nil {
		return ErrInvalidParams
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	shares := make(map[ShareID]*Share, len(st.Shares))
	names := make(map[string]ShareID, len(st.Shares))
	for _, ss := range st.Shares {
		curve, ok := m.curves[ss.CurveName]
		if !ok {
			return ErrCurveNotRegistered
		}
		acc := ss.AccumulatorScaled
		if acc == nil {
			acc = new(big.Int)
		}
		shares[ss.ID] = &Share{
			ID:                  ss.ID,
			Name:                ss.Name,
			Phase:               ss.Phase,
			Creator:             ss.Creator,
			Owner:               ss.Owner,
			CurveName:           ss.CurveName,
			Curve:               curve,
			TokenCount:          ss.TokenCount,
			TokensInCirculation: ss.TokensInCirculation,
			CurveInventory:      ss.CurveInventory,
			CurveReserve:        ss.CurveReserve,
			AccumulatorScaled:   new(big.Int).Set(acc),
			CreatorPool:         ss.CreatorPool,
			Presale:             ss.Presale,
			Dutch:               ss.Dutch,
		}
		names[ss.Name] = ss.ID
	}

	positions := make(map[positionKey]*Position, len(st.Positions))
	for _, ps := range st.Positions {
		if _, ok := shares[ps.ShareID]; !ok {
			return ErrShareNotFound
		}
		checkpoint := ps.Checkpoint
		if checkpoint == nil {
			checkpoint = new(big.Int)
		}
		positions[positionKey{ps.ShareID, ps.Holder}] = &Position{
			Balance:     ps.Balance,
			Checkpoint:  new(big.Int).Set(checkpoint),
			Accrued:     ps.Accrued,
			PresaleVest: ps.PresaleVest,
			DutchVest:   ps.DutchVest,
		}
	}

	curveAllowed := make(map[string]bool, len(m.curveAllowed)+len(st.CurveAllowed))
	for name, allowed := range m.curveAllowed {
		curveAllowed[name] = allowed
	}
	for name, allowed := range st.CurveAllowed {
		if _, ok := m.curves[name]; !ok {
			return ErrCurveNotRegistered
		}
		curveAllowed[name] = allowed
	}

	var signer *ec.PublicKey
	if len(st.Signer) > 0 {
		pub, err := ec.PublicKeyFromBytes(st.Signer)
		if err != nil {
			return err
		}
		signer = pub
	}

	m.owner = st.Owner
	m.pendingOwner = nil
	if st.PendingOwner != nil {
		pending := *st.PendingOwner
		m.pendingOwner = &pending
	}
	m.signer = signer
	m.params = st.Params
	m.unrestrictedCreation = st.UnrestrictedCreation
	m.creatorsAllowed = make(map[Address]bool, len(st.CreatorsAllowed))
	for _, a := range st.CreatorsAllowed {
		m.creatorsAllowed[a] = true
	}
	m.curveAllowed = curveAllowed
	m.shares = shares
	m.names = names
	m.positions = positions
	m.nextID = st.NextID
	if m.nextID == 0 {
		m.nextID = 1
	}
	m.platformPool = st.PlatformPool

	m.log.Info("state imported")
	return nil
}
