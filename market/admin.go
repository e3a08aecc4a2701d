package market

import (
	"bytes"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/fees"
	"github.com/sharesorg/libshares-go/pricing"
)

// RegisterCurve registers a pricing curve under name and allow-lists it.
// Owner-gated. Registering an already-registered name fails.
func (m *Market) RegisterCurve(caller Address, name string, curve pricing.Curve) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return ErrNotAuthorized
	}
	if name == "" || curve == nil {
		return ErrInvalidParams
	}
	if _, exists := m.curves[name]; exists {
		return ErrNameTaken
	}

	m.curves[name] = curve
	m.curveAllowed[name] = true
	m.log.Info("pricing curve registered", zap.String("name", name))
	return nil
}

// SetCurveAllowed toggles a registered curve's allow-list state.
// Owner-gated; toggling to the current state fails (idempotence guard).
// Revoking a curve does not affect shares already bound to it.
func (m *Market) SetCurveAllowed(caller Address, name string, allowed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return ErrNotAuthorized
	}
	if _, exists := m.curves[name]; !exists {
		return ErrCurveNotRegistered
	}
	if m.curveAllowed[name] == allowed {
		return ErrNoopToggle
	}

	m.curveAllowed[name] = allowed
	m.log.Info("pricing curve allow-list changed",
		zap.String("name", name), zap.Bool("allowed", allowed))
	return nil
}

// SetCreatorAllowed toggles an address on the share-creator allow-list.
// Owner-gated; no-op toggles fail.
func (m *Market) SetCreatorAllowed(caller, creator Address, allowed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return ErrNotAuthorized
	}
	if m.creatorsAllowed[creator] == allowed {
		return ErrNoopToggle
	}

	m.creatorsAllowed[creator] = allowed
	return nil
}

// SetUnrestrictedCreation toggles the flag that lets anyone create
// shares. Owner-gated; no-op toggles fail.
func (m *Market) SetUnrestrictedCreation(caller Address, unrestricted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return ErrNotAuthorized
	}
	if m.unrestrictedCreation == unrestricted {
		return ErrNoopToggle
	}

	m.unrestrictedCreation = unrestricted
	m.log.Info("unrestricted creation toggled", zap.Bool("unrestricted", unrestricted))
	return nil
}

// SetFeeSplit updates the creator and holder fee cuts. Owner-gated; the
// cuts must each fit in the bps denominator and sum to at most 100%.
func (m *Market) SetFeeSplit(caller Address, creatorBPS, holderBPS uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return ErrNotAuthorized
	}
	if creatorBPS > fees.BPSDenominator || holderBPS > fees.BPSDenominator ||
		creatorBPS+holderBPS > fees.BPSDenominator {
		return ErrInvalidParams
	}

	m.params.CreatorCutBPS = creatorBPS
	m.params.HolderCutBPS = holderBPS
	m.log.Info("fee split updated",
		zap.Uint64("creator_cut_bps", creatorBPS),
		zap.Uint64("holder_cut_bps", holderBPS))
	return nil
}

// RotateOffchainSigner replaces the grant signer key. Owner-gated;
// rotating to the current key fails.
func (m *Market) RotateOffchainSigner(caller Address, signer *ec.PublicKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return ErrNotAuthorized
	}
	if signer == nil {
		return ErrInvalidParams
	}
	if m.signer != nil && bytes.Equal(m.signer.Compressed(), signer.Compressed()) {
		return ErrNoopToggle
	}

	m.signer = signer
	m.log.Info("offchain signer rotated")
	return nil
}

// TransferOwnership nominates a new platform owner. The transfer takes
// effect only when the nominee calls AcceptOwnership.
func (m *Market) TransferOwnership(caller, newOwner Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return ErrNotAuthorized
	}

	m.pendingOwner = &newOwner
	return nil
}

// AcceptOwnership completes a two-step ownership transfer.
func (m *Market) AcceptOwnership(caller Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingOwner == nil || caller != *m.pendingOwner {
		return ErrNotPendingOwner
	}

	m.owner = caller
	m.pendingOwner = nil
	m.log.Info("platform ownership transferred", zap.String("owner", caller.String()))
	return nil
}

// TransferShareOwner reassigns a share's mutable owner. Only the current
// share owner may do this; the immutable creator never changes.
func (m *Market) TransferShareOwner(caller Address, id ShareID, newOwner Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return err
	}
	if caller != s.Owner {
		return ErrNotAuthorized
	}

	s.Owner = newOwner
	return nil
}
