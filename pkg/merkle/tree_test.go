package merkle

import (
	"bytes"
	"testing"
)

func TestBuildTreeSingleLeaf(t *testing.T) {
	leaf := HashData([]byte("test data"))
	tree, err := BuildTree([][]byte{leaf})
	if err != nil {
		t.Fatalf("failed to build tree: %v", err)
	}

	if !bytes.Equal(tree.Root(), leaf) {
		t.Errorf("single leaf root mismatch: got %x, want %x", tree.Root(), leaf)
	}
	if tree.LeafCount() != 1 {
		t.Errorf("leaf count mismatch: got %d, want 1", tree.LeafCount())
	}
}

func TestBuildTreeTwoLeaves(t *testing.T) {
	leaf1 := HashData([]byte("leaf 1"))
	leaf2 := HashData([]byte("leaf 2"))

	tree, err := BuildTree([][]byte{leaf1, leaf2})
	if err != nil {
		t.Fatalf("failed to build tree: %v", err)
	}

	expectedRoot := hashPair(leaf1, leaf2)
	if !bytes.Equal(tree.Root(), expectedRoot) {
		t.Errorf("two leaf root mismatch: got %x, want %x", tree.Root(), expectedRoot)
	}
}

func TestBuildTreeFourLeaves(t *testing.T) {
	leaves := make([][]byte, 4)
	for i := 0; i < 4; i++ {
		leaves[i] = HashData([]byte{byte(i)})
	}

	tree, err := BuildTree(leaves)
	if err != nil {
		t.Fatalf("failed to build tree: %v", err)
	}
	if tree.LeafCount() != 4 {
		t.Errorf("leaf count mismatch: got %d, want 4", tree.LeafCount())
	}
	if len(tree.Root()) != 32 {
		t.Errorf("root length mismatch: got %d, want 32", len(tree.Root()))
	}
}

func TestBuildTreeOddLeaves(t *testing.T) {
	leaves := make([][]byte, 3)
	for i := 0; i < 3; i++ {
		leaves[i] = HashData([]byte{byte(i)})
	}

	tree, err := BuildTree(leaves)
	if err != nil {
		t.Fatalf("failed to build tree with odd leaves: %v", err)
	}
	if tree.LeafCount() != 3 {
		t.Errorf("leaf count mismatch: got %d, want 3", tree.LeafCount())
	}
	if tree.Root() == nil {
		t.Error("root is nil for odd-leaf tree")
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	_, err := BuildTree([][]byte{})
	if err != ErrEmptyTree {
		t.Errorf("expected ErrEmptyTree, got %v", err)
	}
}

func TestBuildTreeInvalidLeafHash(t *testing.T) {
	invalidLeaf := []byte("not 32 bytes")
	_, err := BuildTree([][]byte{invalidLeaf})
	if err == nil {
		t.Error("expected error for invalid leaf hash")
	}
}

func TestHashData(t *testing.T) {
	data := []byte("test data")
	hash := HashData(data)
	if len(hash) != 32 {
		t.Errorf("hash length mismatch: got %d, want 32", len(hash))
	}

	hash2 := HashData(data)
	if !bytes.Equal(hash, hash2) {
		t.Error("hash is not deterministic")
	}
}
