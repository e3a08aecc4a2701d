// Package offchain implements platform-signed purchase grants: a
// structured message binding a claimant address to a share allocation,
// signed off-chain by the platform's signer key and verified by the
// market before a dutch-auction purchase.
package offchain

import (
	"encoding/binary"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"

	"github.com/sharesorg/libshares-go/allocproof"
)

const grantSize = 44 // claimant(20) + share_id(8) + amount(8) + expiry(8)

// Grant authorizes Claimant to purchase up to Amount units of share
// ShareID before Expiry (unix seconds).
type Grant struct {
	Claimant [20]byte
	ShareID  uint64
	Amount   uint64
	Expiry   int64
}

// Encode serializes the grant to its canonical binary form.
func Encode(g *Grant) []byte {
	buf := make([]byte, grantSize)
	copy(buf[0:20], g.Claimant[:])
	binary.BigEndian.PutUint64(buf[20:28], g.ShareID)
	binary.BigEndian.PutUint64(buf[28:36], g.Amount)
	binary.BigEndian.PutUint64(buf[36:44], uint64(g.Expiry))
	return buf
}

// Digest returns the signing digest: DoubleHash of the canonical encoding.
func Digest(g *Grant) []byte {
	return allocproof.DoubleHash(Encode(g))
}

// SignGrant signs the grant digest and returns the DER signature.
func SignGrant(priv *ec.PrivateKey, g *Grant) ([]byte, error) {
	if priv == nil || g == nil {
		return nil, ErrNilParam
	}
	sig, err := priv.Sign(Digest(g))
	if err != nil {
		return nil, fmt.Errorf("offchain: sign grant: %w", err)
	}
	return sig.Serialize(), nil
}

// VerifyGrant checks the grant's expiry against now and its DER signature
// against the configured signer key.
func VerifyGrant(g *Grant, sigDER []byte, signer *ec.PublicKey, now int64) error {
	if g == nil || signer == nil {
		return ErrNilParam
	}
	if len(sigDER) == 0 {
		return fmt.Errorf("%w: empty signature", ErrMalformedSignature)
	}
	if now > g.Expiry {
		return ErrGrantExpired
	}

	sig, err := ec.ParseDERSignature(sigDER)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	if !sig.Verify(Digest(g), signer) {
		return ErrBadSignature
	}
	return nil
}

// SignerAddress computes the 20-byte address of a signer public key:
// HASH160(compressed pubkey), as used for P2PKH addresses.
func SignerAddress(pub *ec.PublicKey) [20]byte {
	var addr [20]byte
	copy(addr[:], bsvhash.Hash160(pub.Compressed()))
	return addr
}
