// Package allocproof implements the Merkle commitment scheme for presale
// allocations: the share creator commits to an (address, allocation) set
// as a Merkle root, and a buyer proves membership with the leaf's branch.
package allocproof

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
)

// Root is a 32-byte Merkle root committing to an allocation set.
type Root [32]byte

// IsZero reports whether no commitment is set.
func (r Root) IsZero() bool { return r == Root{} }

// Proof is a Merkle inclusion proof for one allocation leaf.
type Proof struct {
	Index uint32   // position of the leaf in the committed set
	Nodes [][]byte // branch hashes, bottom-up
}

// DoubleHash computes SHA256(SHA256(data)).
func DoubleHash(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// LeafHash computes the leaf commitment for one allocation entry:
// DoubleHash(address(20) || amount(8, big-endian)).
func LeafHash(addr [20]byte, amount uint64) []byte {
	buf := make([]byte, 28)
	copy(buf[0:20], addr[:])
	binary.BigEndian.PutUint64(buf[20:28], amount)
	return DoubleHash(buf)
}

// ComputeRoot folds a leaf hash up to the root using the branch nodes
// (bottom-up).
//
// Algorithm:
//
//	hash = leaf
//	for i, node in nodes:
//	    if bit i of index is 0:  hash = DoubleHash(hash || node)
//	    else:                     hash = DoubleHash(node || hash)
func ComputeRoot(leaf []byte, index uint32, nodes [][]byte) []byte {
	if len(leaf) != 32 {
		return nil
	}

	hash := make([]byte, 32)
	copy(hash, leaf)

	for i, node := range nodes {
		if len(node) != 32 {
			return nil
		}
		combined := make([]byte, 64)
		if (index>>uint(i))&1 == 0 {
			// Current hash is on the left
			copy(combined[:32], hash)
			copy(combined[32:], node)
		} else {
			// Current hash is on the right
			copy(combined[:32], node)
			copy(combined[32:], hash)
		}
		hash = DoubleHash(combined)
	}

	return hash
}

// Verify checks that (addr, amount) is committed under root at the
// proof's position.
func Verify(proof *Proof, root Root, addr [20]byte, amount uint64) bool {
	if proof == nil || root.IsZero() {
		return false
	}
	computed := ComputeRoot(LeafHash(addr, amount), proof.Index, proof.Nodes)
	return computed != nil && bytes.Equal(computed, root[:])
}

// Tree is a full Merkle tree over allocation leaves, used by creators to
// derive the root and hand out proofs.
type Tree struct {
	levels [][][]byte // levels[0] = leaves, last level = [root]
}

// NewTree builds the tree over the given leaf hashes. Odd nodes are
// paired with themselves, matching the root-folding algorithm above.
func NewTree(leaves [][]byte) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	level := make([][]byte, len(leaves))
	copy(level, leaves)
	levels := [][][]byte{level}

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			combined := make([]byte, 64)
			copy(combined[:32], left)
			copy(combined[32:], right)
			next = append(next, DoubleHash(combined))
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{levels: levels}, nil
}

// Root returns the tree's root.
func (t *Tree) Root() Root {
	var r Root
	top := t.levels[len(t.levels)-1]
	copy(r[:], top[0])
	return r
}

// Proof returns the inclusion proof for leaf index.
func (t *Tree) Proof(index uint32) (*Proof, error) {
	if int(index) >= len(t.levels[0]) {
		return nil, ErrIndexOutOfRange
	}

	nodes := make([][]byte, 0, len(t.levels)-1)
	idx := index
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := idx ^ 1
		if int(sibling) >= len(level) {
			sibling = idx // odd node pairs with itself
		}
		nodes = append(nodes, level[sibling])
		idx >>= 1
	}

	return &Proof{Index: index, Nodes: nodes}, nil
}
