package allocproof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAddr(seed byte) [20]byte {
	var addr [20]byte
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

type allocation struct {
	addr   [20]byte
	amount uint64
}

func buildTree(t *testing.T, allocs []allocation) *Tree {
	t.Helper()
	leaves := make([][]byte, len(allocs))
	for i, a := range allocs {
		leaves[i] = LeafHash(a.addr, a.amount)
	}
	tree, err := NewTree(leaves)
	require.NoError(t, err)
	return tree
}

func TestLeafHash_Deterministic(t *testing.T) {
	a := LeafHash(makeAddr(0xAA), 50)
	b := LeafHash(makeAddr(0xAA), 50)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	// Amount is part of the commitment.
	c := LeafHash(makeAddr(0xAA), 51)
	assert.NotEqual(t, a, c)
}

func TestVerify_AllLeaves(t *testing.T) {
	tests := []struct {
		name   string
		allocs []allocation
	}{
		{"single", []allocation{{makeAddr(0x01), 100}}},
		{"pair", []allocation{{makeAddr(0x01), 100}, {makeAddr(0x02), 200}}},
		{"odd count", []allocation{
			{makeAddr(0x01), 100}, {makeAddr(0x02), 200}, {makeAddr(0x03), 300},
		}},
		{"larger set", []allocation{
			{makeAddr(0x01), 1}, {makeAddr(0x02), 2}, {makeAddr(0x03), 3},
			{makeAddr(0x04), 4}, {makeAddr(0x05), 5}, {makeAddr(0x06), 6},
			{makeAddr(0x07), 7},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(t, tt.allocs)
			root := tree.Root()
			for i, a := range tt.allocs {
				proof, err := tree.Proof(uint32(i))
				require.NoError(t, err)
				assert.True(t, Verify(proof, root, a.addr, a.amount),
					"leaf %d must verify", i)
			}
		})
	}
}

func TestVerify_WrongClaims(t *testing.T) {
	allocs := []allocation{
		{makeAddr(0x01), 100}, {makeAddr(0x02), 200}, {makeAddr(0x03), 300},
	}
	tree := buildTree(t, allocs)
	root := tree.Root()
	proof, err := tree.Proof(0)
	require.NoError(t, err)

	assert.False(t, Verify(proof, root, makeAddr(0x01), 999), "wrong amount")
	assert.False(t, Verify(proof, root, makeAddr(0x09), 100), "wrong address")
	assert.False(t, Verify(nil, root, makeAddr(0x01), 100), "nil proof")
	assert.False(t, Verify(proof, Root{}, makeAddr(0x01), 100), "zero root")

	// Proof for one leaf must not verify another.
	assert.False(t, Verify(proof, root, makeAddr(0x02), 200))
}

func TestNewTree_NoLeaves(t *testing.T) {
	_, err := NewTree(nil)
	assert.ErrorIs(t, err, ErrNoLeaves)
}

func TestProof_IndexOutOfRange(t *testing.T) {
	tree := buildTree(t, []allocation{{makeAddr(0x01), 1}})
	_, err := tree.Proof(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestComputeRoot_MalformedInput(t *testing.T) {
	assert.Nil(t, ComputeRoot([]byte{0x01}, 0, nil), "short leaf")
	leaf := LeafHash(makeAddr(0x01), 1)
	assert.Nil(t, ComputeRoot(leaf, 0, [][]byte{{0x01}}), "short node")
}
