package market

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/sharesorg/libshares-go/fees"
	"github.com/sharesorg/libshares-go/rewards"
)

// tradePlan captures a fully validated curve trade before any state
// moves. Planning touches nothing: matured vesting, the fee split, the
// accumulator advance, and the holder settlement are all computed (and
// overflow-checked) up front, so applying a plan cannot fail. A plan is
// only valid against the state it was computed from.
type tradePlan struct {
	share  *Share
	holder Address

	// Matured vesting the trade folds in before executing.
	vestPresale uint64
	vestDutch   uint64
	vestTotal   uint64

	amount   uint64
	price    uint64
	fee      uint64
	cost     uint64 // buy: price+fee collected from the holder
	proceeds uint64 // sell: price-fee paid to the holder

	split   fees.Split
	acc     *big.Int // share accumulator after this trade's fee event
	accrued uint64   // holder's Accrued after settlement
}

// planBuyLocked validates a curve purchase and quotes it against the
// state the trade would see after the caller's matured vesting folds in.
func (m *Market) planBuyLocked(caller Address, id ShareID, amount, maxCost uint64) (*tradePlan, error) {
	s, err := m.shareLocked(id)
	if err != nil {
		return nil, err
	}
	if s.Phase != PhaseBondingCurve {
		return nil, ErrWrongPhase
	}
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	if caller == s.Creator {
		return nil, ErrSelfDealing
	}

	p, supply, circ, inv, balance, err := m.planVestLocked(s, caller)
	if err != nil {
		return nil, err
	}
	p.amount = amount

	if amount > inv {
		return nil, ErrInsufficientInventory
	}
	price, fee, err := s.Curve.Quote(supply, inv, amount)
	if err != nil {
		return nil, err
	}
	cost, err := addCheck(price, fee)
	if err != nil {
		return nil, err
	}
	if cost > maxCost {
		return nil, ErrPriceTooHigh
	}
	if _, err := addCheck(s.CurveReserve, price); err != nil {
		return nil, err
	}
	if _, err := addCheck(supply, amount); err != nil {
		return nil, err
	}
	if _, err := addCheck(circ, amount); err != nil {
		return nil, err
	}
	if _, err := addCheck(balance, amount); err != nil {
		return nil, err
	}
	p.price, p.fee, p.cost = price, fee, cost

	if err := m.planFeeLocked(p, fee, circ, balance); err != nil {
		return nil, err
	}
	return p, nil
}

// planSellLocked validates a curve sale and quotes it symmetrically:
// selling amount at supply n is priced as the buy that would restore
// supply n from n-amount.
func (m *Market) planSellLocked(caller Address, id ShareID, amount, minProceeds uint64) (*tradePlan, error) {
	s, err := m.shareLocked(id)
	if err != nil {
		return nil, err
	}
	if s.Phase != PhaseBondingCurve {
		return nil, ErrWrongPhase
	}
	if amount == 0 {
		return nil, ErrZeroAmount
	}

	p, supply, circ, inv, balance, err := m.planVestLocked(s, caller)
	if err != nil {
		return nil, err
	}
	p.amount = amount

	if amount > balance {
		return nil, ErrInsufficientBalance
	}
	if amount > supply {
		return nil, ErrInsufficientInventory
	}
	price, fee, err := s.Curve.Quote(supply-amount, inv+amount, amount)
	if err != nil {
		return nil, err
	}
	if fee > price {
		return nil, ErrPriceTooLow
	}
	proceeds := price - fee
	if proceeds < minProceeds {
		return nil, ErrPriceTooLow
	}
	if price > s.CurveReserve {
		return nil, ErrInsufficientReserve
	}
	if _, err := addCheck(inv, amount); err != nil {
		return nil, err
	}
	p.price, p.fee, p.proceeds = price, fee, proceeds

	if err := m.planFeeLocked(p, fee, circ, balance); err != nil {
		return nil, err
	}
	return p, nil
}

// planVestLocked starts a plan for the holder: it computes the matured
// vesting both channels would release right now and the share totals and
// holder balance as they stand after that fold, without mutating either.
func (m *Market) planVestLocked(s *Share, holder Address) (p *tradePlan, supply, circ, inv, balance uint64, err error) {
	now := m.clock.Now().Unix()
	pos := m.peekPositionLocked(s.ID, holder)

	p = &tradePlan{share: s, holder: holder}
	if pos != nil {
		if p.vestPresale, err = vestingDue(&pos.PresaleVest, s.Presale.Window, now); err != nil {
			return nil, 0, 0, 0, 0, err
		}
		if p.vestDutch, err = vestingDue(&pos.DutchVest, s.Dutch.Window, now); err != nil {
			return nil, 0, 0, 0, 0, err
		}
		balance = pos.Balance
	}
	if p.vestTotal, err = addCheck(p.vestPresale, p.vestDutch); err != nil {
		return nil, 0, 0, 0, 0, err
	}

	if supply, err = addCheck(s.TokenCount, p.vestTotal); err != nil {
		return nil, 0, 0, 0, 0, err
	}
	if circ, err = addCheck(s.TokensInCirculation, p.vestTotal); err != nil {
		return nil, 0, 0, 0, 0, err
	}
	if inv, err = addCheck(s.CurveInventory, p.vestTotal); err != nil {
		return nil, 0, 0, 0, 0, err
	}
	if balance, err = addCheck(balance, p.vestTotal); err != nil {
		return nil, 0, 0, 0, 0, err
	}
	return p, supply, circ, inv, balance, nil
}

// planFeeLocked finishes a plan: it splits the trade fee over circ (the
// circulation the fee event sees), advances the accumulator, and settles
// the holder across both the pre-vest pending and this fee event.
func (m *Market) planFeeLocked(p *tradePlan, fee, circ, balance uint64) error {
	s := p.share
	split, err := fees.SplitFee(fee, m.params.CreatorCutBPS, m.params.HolderCutBPS, circ)
	if err != nil {
		return err
	}
	if _, err := addCheck(s.CreatorPool, split.Creator); err != nil {
		return err
	}
	if _, err := addCheck(m.platformPool, split.Platform); err != nil {
		return err
	}
	acc := rewards.Accumulate(s.AccumulatorScaled, split.Holder, circ)

	checkpoint := s.AccumulatorScaled
	var accrued, preVestBalance uint64
	if pos := m.peekPositionLocked(s.ID, p.holder); pos != nil {
		checkpoint = pos.Checkpoint
		accrued = pos.Accrued
		preVestBalance = pos.Balance
	}
	// Pending up to the current accumulator is owed on the pre-vest
	// balance; this trade's own fee event pays the post-vest balance.
	pending, err := rewards.Pending(s.AccumulatorScaled, checkpoint, preVestBalance)
	if err != nil {
		return err
	}
	if accrued, err = addCheck(accrued, pending); err != nil {
		return err
	}
	if pending, err = rewards.Pending(acc, s.AccumulatorScaled, balance); err != nil {
		return err
	}
	if accrued, err = addCheck(accrued, pending); err != nil {
		return err
	}

	p.split = split
	p.acc = acc
	p.accrued = accrued
	return nil
}

// applyTradeLocked commits a plan's vest fold, fee distribution, and
// holder settlement. Every addition was overflow-checked during
// planning, so this cannot fail.
func (m *Market) applyTradeLocked(p *tradePlan) *Position {
	s := p.share
	pos := m.positionLocked(s, p.holder)

	pos.PresaleVest.Released += p.vestPresale
	pos.DutchVest.Released += p.vestDutch
	pos.Balance += p.vestTotal
	s.TokenCount += p.vestTotal
	s.TokensInCirculation += p.vestTotal
	s.CurveInventory += p.vestTotal

	s.CreatorPool += p.split.Creator
	m.platformPool += p.split.Platform
	s.AccumulatorScaled = p.acc
	pos.Accrued = p.accrued
	pos.Checkpoint.Set(p.acc)
	return pos
}

// applyBuyLocked commits a buy plan. The purchase cost must already be
// paid.
func (m *Market) applyBuyLocked(p *tradePlan) {
	pos := m.applyTradeLocked(p)
	s := p.share
	s.CurveReserve += p.price
	s.CurveInventory -= p.amount
	s.TokenCount += p.amount
	s.TokensInCirculation += p.amount
	pos.Balance += p.amount

	m.log.Debug("curve buy",
		zap.Uint64("id", uint64(s.ID)),
		zap.String("buyer", p.holder.String()),
		zap.Uint64("amount", p.amount),
		zap.Uint64("price", p.price),
		zap.Uint64("fee", p.fee))
}

// applySellLocked commits a sell plan. Paying out plan.proceeds from the
// treasury is the caller's responsibility.
func (m *Market) applySellLocked(p *tradePlan) {
	pos := m.applyTradeLocked(p)
	s := p.share
	s.CurveReserve -= p.price
	s.CurveInventory += p.amount
	s.TokenCount -= p.amount
	s.TokensInCirculation -= p.amount
	pos.Balance -= p.amount

	m.log.Debug("curve sell",
		zap.Uint64("id", uint64(s.ID)),
		zap.String("seller", p.holder.String()),
		zap.Uint64("amount", p.amount),
		zap.Uint64("price", p.price),
		zap.Uint64("fee", p.fee))
}

// Buy purchases amount units from the bonding curve, paying at most
// maxCost (price plus fee) in payment tokens. The trading fee is split
// among the holder accumulator, the creator pool, and the platform pool
// before the buyer's balance changes, so the buyer's pre-trade balance
// earns from its own fee. Nothing changes until the payment clears.
func (m *Market) Buy(caller Address, id ShareID, amount, maxCost uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.planBuyLocked(caller, id, amount, maxCost)
	if err != nil {
		return err
	}
	if p.cost > 0 {
		if err := m.payment.TransferFrom(caller, m.treasury, p.cost); err != nil {
			return err
		}
	}
	m.applyBuyLocked(p)
	return nil
}

// Sell returns amount units to the bonding curve for at least
// minProceeds payment tokens (price minus fee). The seller still earns
// holder rewards from its own fee event, since the fee is distributed
// over the pre-trade circulation. Nothing changes until the payout
// clears.
func (m *Market) Sell(caller Address, id ShareID, amount, minProceeds uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.planSellLocked(caller, id, amount, minProceeds)
	if err != nil {
		return err
	}
	if p.proceeds > 0 {
		if err := m.payment.Transfer(m.treasury, caller, p.proceeds); err != nil {
			return err
		}
	}
	m.applySellLocked(p)
	return nil
}

// QuoteBuy returns the price and fee for buying amount units from the
// curve at the current supply, without executing.
func (m *Market) QuoteBuy(id ShareID, amount uint64) (price, fee uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return 0, 0, err
	}
	if amount == 0 {
		return 0, 0, ErrZeroAmount
	}
	if amount > s.CurveInventory {
		return 0, 0, ErrInsufficientInventory
	}
	return s.Curve.Quote(s.TokenCount, s.CurveInventory, amount)
}

// QuoteSell returns the price and fee for selling amount units back to
// the curve at the current supply, without executing.
func (m *Market) QuoteSell(id ShareID, amount uint64) (price, fee uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.shareLocked(id)
	if err != nil {
		return 0, 0, err
	}
	if amount == 0 {
		return 0, 0, ErrZeroAmount
	}
	if amount > s.TokenCount {
		return 0, 0, ErrInsufficientInventory
	}
	return s.Curve.Quote(s.TokenCount-amount, s.CurveInventory+amount, amount)
}
