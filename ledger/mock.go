package ledger

// MockPaymentToken is a test double for PaymentToken.
// All function fields must be set before the corresponding method is called.
type MockPaymentToken struct {
	TransferFn     func(from, to Address, amount uint64) error
	TransferFromFn func(owner, to Address, amount uint64) error
}

func (m *MockPaymentToken) Transfer(from, to Address, amount uint64) error {
	return m.TransferFn(from, to, amount)
}
func (m *MockPaymentToken) TransferFrom(owner, to Address, amount uint64) error {
	return m.TransferFromFn(owner, to, amount)
}

// MockHybridLedger is a test double for HybridLedger.
type MockHybridLedger struct {
	MintFn      func(to Address, id uint64, amount uint64) error
	BurnFn      func(from Address, id uint64, amount uint64) error
	BalanceOfFn func(addr Address, id uint64) uint64
	URIFn       func(id uint64) string
}

func (m *MockHybridLedger) Mint(to Address, id uint64, amount uint64) error {
	return m.MintFn(to, id, amount)
}
func (m *MockHybridLedger) Burn(from Address, id uint64, amount uint64) error {
	return m.BurnFn(from, id, amount)
}
func (m *MockHybridLedger) BalanceOf(addr Address, id uint64) uint64 {
	return m.BalanceOfFn(addr, id)
}
func (m *MockHybridLedger) URI(id uint64) string {
	return m.URIFn(id)
}
