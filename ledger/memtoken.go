package ledger

import "sync"

// MemToken is an in-memory PaymentToken with a single implicit operator:
// allowances are granted to "the engine" rather than per-spender, which
// matches how the market uses the interface.
type MemToken struct {
	mu         sync.Mutex
	balances   map[Address]uint64
	allowances map[Address]uint64
}

// Compile-time interface check.
var _ PaymentToken = (*MemToken)(nil)

// NewMemToken returns an empty in-memory payment token.
func NewMemToken() *MemToken {
	return &MemToken{
		balances:   make(map[Address]uint64),
		allowances: make(map[Address]uint64),
	}
}

// Mint credits amount to addr out of thin air.
func (t *MemToken) Mint(addr Address, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[addr] += amount
}

// Approve sets the engine's allowance over owner's funds.
func (t *MemToken) Approve(owner Address, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.allowances[owner] = amount
}

// BalanceOf returns addr's balance.
func (t *MemToken) BalanceOf(addr Address) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[addr]
}

// Allowance returns the engine's remaining allowance over owner's funds.
func (t *MemToken) Allowance(owner Address) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allowances[owner]
}

// Transfer moves amount from an engine-controlled account.
func (t *MemToken) Transfer(from, to Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.balances[from] < amount {
		return ErrInsufficientBalance
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

// TransferFrom moves amount out of owner's account, consuming allowance.
func (t *MemToken) TransferFrom(owner, to Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.allowances[owner] < amount {
		return ErrInsufficientAllowance
	}
	if t.balances[owner] < amount {
		return ErrInsufficientBalance
	}
	t.allowances[owner] -= amount
	t.balances[owner] -= amount
	t.balances[to] += amount
	return nil
}
