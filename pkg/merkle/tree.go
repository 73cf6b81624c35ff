// Package merkle computes the Executive's state_root and extrinsics_root
// (spec §4.8, §9 "Content addressing vs state trees"): a binary Merkle tree
// over the store's live output keys, or over a block's stripped-transaction
// hashes.
package merkle

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/utxokernel/kernel/pkg/kernelcrypto"
)

// ErrEmptyTree is returned by BuildTree when given no leaves.
var ErrEmptyTree = fmt.Errorf("cannot build tree from empty leaves")

// ErrInvalidLeafHash is returned by BuildTree when a leaf is not 32 bytes.
var ErrInvalidLeafHash = fmt.Errorf("leaf hash must be 32 bytes")

// Tree is a binary Merkle tree over 32-byte leaves.
type Tree struct {
	mu     sync.RWMutex
	leaves [][]byte
	root   []byte
	built  bool
}

// BuildTree constructs a Merkle tree from the given leaf hashes. Each leaf
// must be exactly 32 bytes.
func BuildTree(leaves [][]byte) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}
	for i, leaf := range leaves {
		if len(leaf) != 32 {
			return nil, fmt.Errorf("%w: leaf %d has %d bytes", ErrInvalidLeafHash, i, len(leaf))
		}
	}

	tree := &Tree{leaves: make([][]byte, len(leaves))}
	for i, leaf := range leaves {
		tree.leaves[i] = make([]byte, 32)
		copy(tree.leaves[i], leaf)
	}

	tree.build()
	return tree, nil
}

// build computes the root level by level, duplicating the last node of an
// odd-length level (standard Merkle tree behavior).
func (t *Tree) build() {
	t.mu.Lock()
	defer t.mu.Unlock()

	currentLevel := make([][]byte, len(t.leaves))
	for i, leaf := range t.leaves {
		currentLevel[i] = make([]byte, 32)
		copy(currentLevel[i], leaf)
	}

	for len(currentLevel) > 1 {
		nextLevel := make([][]byte, 0, (len(currentLevel)+1)/2)
		for i := 0; i < len(currentLevel); i += 2 {
			if i+1 < len(currentLevel) {
				nextLevel = append(nextLevel, hashPair(currentLevel[i], currentLevel[i+1]))
			} else {
				nextLevel = append(nextLevel, hashPair(currentLevel[i], currentLevel[i]))
			}
		}
		currentLevel = nextLevel
	}

	t.root = currentLevel[0]
	t.built = true
}

// hashPair combines two 32-byte hashes into one: BLAKE2-256(left || right),
// the same hash function the kernel uses for content addressing, so wallets
// and nodes agree on the state root without needing a second hash function
// (spec §9).
func hashPair(left, right []byte) []byte {
	combined := make([]byte, 64)
	copy(combined[:32], left)
	copy(combined[32:], right)
	hash := kernelcrypto.Hash(combined)
	return hash[:]
}

// Root returns the Merkle root as a 32-byte slice.
func (t *Tree) Root() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.built || t.root == nil {
		return nil
	}
	root := make([]byte, 32)
	copy(root, t.root)
	return root
}

// RootHex returns the Merkle root as a hex string.
func (t *Tree) RootHex() string {
	root := t.Root()
	if root == nil {
		return ""
	}
	return hex.EncodeToString(root)
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree) LeafCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.leaves)
}

// HashData creates a BLAKE2-256 hash of arbitrary data - a helper for
// creating leaf hashes from OutputRef keys or stripped transaction bytes.
func HashData(data []byte) []byte {
	hash := kernelcrypto.Hash(data)
	return hash[:]
}

// HashDataHex creates a BLAKE2-256 hash and returns it as hex.
func HashDataHex(data []byte) string {
	return hex.EncodeToString(HashData(data))
}
