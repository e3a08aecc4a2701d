package ledger

import (
	"encoding/hex"
	"strconv"
	"sync"

	"golang.org/x/crypto/sha3"
)

type hybridKey struct {
	addr Address
	id   uint64
}

// MemHybrid is an in-memory HybridLedger. Metadata URIs are content
// addresses: shares://<id>/<hex(sha3-256(blob))>.
type MemHybrid struct {
	mu       sync.Mutex
	balances map[hybridKey]uint64
	uris     map[uint64]string
}

// Compile-time interface check.
var _ HybridLedger = (*MemHybrid)(nil)

// NewMemHybrid returns an empty in-memory hybrid ledger.
func NewMemHybrid() *MemHybrid {
	return &MemHybrid{
		balances: make(map[hybridKey]uint64),
		uris:     make(map[uint64]string),
	}
}

// SetMetadata registers the metadata blob for a share's collectible class
// and derives its content-addressed URI.
func (h *MemHybrid) SetMetadata(id uint64, blob []byte) string {
	digest := sha3.Sum256(blob)
	uri := "shares://" + strconv.FormatUint(id, 10) + "/" + hex.EncodeToString(digest[:])
	h.mu.Lock()
	h.uris[id] = uri
	h.mu.Unlock()
	return uri
}

// Mint credits amount collectible units of share id to addr.
func (h *MemHybrid) Mint(to Address, id uint64, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.balances[hybridKey{to, id}] += amount
	return nil
}

// Burn removes amount collectible units of share id from addr.
func (h *MemHybrid) Burn(from Address, id uint64, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	k := hybridKey{from, id}
	if h.balances[k] < amount {
		return ErrInsufficientBalance
	}
	h.balances[k] -= amount
	return nil
}

// BalanceOf returns addr's collectible balance for share id.
func (h *MemHybrid) BalanceOf(addr Address, id uint64) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.balances[hybridKey{addr, id}]
}

// URI returns the registered metadata URI for share id, or "".
func (h *MemHybrid) URI(id uint64) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uris[id]
}
