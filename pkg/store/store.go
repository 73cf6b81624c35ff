// Package store implements the kernel's output store: the key/value map
// from OutputRef to Output, with atomic multi-write apply and read-only
// peek (spec §4.6).
package store

import (
	"bytes"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by Get/RemoveExisting when a key is absent.
var ErrNotFound = errors.New("store: output not found")

// ErrAlreadyExists is returned by InsertNew when a key is already present —
// at the protocol layer this signals a transaction-hash collision (spec §3
// invariant 5).
var ErrAlreadyExists = errors.New("store: output already exists")

// KV is the narrow storage interface the Store is built on, in the same
// shape as the teacher's ledger.KV / kvdb.KVAdapter: a byte-string map with
// no notion of the kernel's own types.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	// Iterate calls fn for every key with the given prefix, in ascending
	// key order, stopping early if fn returns false.
	Iterate(prefix []byte, fn func(key, value []byte) bool) error
}

// Store is a key/value map of OutputRef (canonically encoded) to Output
// (canonically encoded), implementing the §4.6 operations on top of a raw
// KV.
//
// CONCURRENCY: Store assumes a single writer (the Executive, applying one
// block at a time) and supports concurrent readers for Get/Peek — the same
// contract the teacher's LedgerStore documents for its own commit-thread
// usage. Callers needing multi-writer access must serialize at a higher
// layer (spec §5).
type Store struct {
	mu sync.RWMutex
	kv KV
}

// New wraps kv as a Store.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Get returns the raw encoded Output at key, or ErrNotFound.
func (s *Store) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.kv.Get(key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	return v, nil
}

// Peek is a read-only alias for Get: it never alters the store (spec §3
// "A peek does not alter the store").
func (s *Store) Peek(key []byte) ([]byte, error) { return s.Get(key) }

// Has reports whether key is present, without surfacing ErrNotFound as an
// error.
func (s *Store) Has(key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.kv.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// InsertNew stores value at key, failing if key is already present (spec
// §4.6).
func (s *Store) InsertNew(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyExists
	}
	return s.kv.Set(key, value)
}

// RemoveExisting deletes key, failing if it is absent (spec §4.6).
func (s *Store) RemoveExisting(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.kv.Delete(key)
}

// Delta is an all-or-nothing set of store mutations produced by validating
// one transaction (spec §4.7 "pending delta"): keys to remove (consumed
// inputs and evictions) and key/value pairs to insert (new outputs).
type Delta struct {
	Removes [][]byte
	Inserts []KeyValue
}

// KeyValue is one insertion in a Delta.
type KeyValue struct {
	Key, Value []byte
}

// ApplyDelta commits d atomically: every Removes key must currently exist
// and every Inserts key must currently be absent, or the whole delta is
// rejected with no partial effect (spec §3 invariant 5, §4.7/§4.8 "commit
// its delta").
func (s *Store) ApplyDelta(d Delta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range d.Removes {
		v, err := s.kv.Get(k)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrNotFound
		}
	}
	for _, kv := range d.Inserts {
		v, err := s.kv.Get(kv.Key)
		if err != nil {
			return err
		}
		if v != nil {
			return ErrAlreadyExists
		}
	}

	for _, k := range d.Removes {
		if err := s.kv.Delete(k); err != nil {
			return err
		}
	}
	for _, kv := range d.Inserts {
		if err := s.kv.Set(kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// StateRootLeaves returns the canonical keys of every output currently live
// in the store, sorted ascending, for use as the leaf set of the state-root
// Merkle tree (pkg/merkle, spec §4.8 "Merkleized representation").
func (s *Store) StateRootLeaves(prefix []byte) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys [][]byte
	err := s.kv.Iterate(prefix, func(key, _ []byte) bool {
		keys = append(keys, append([]byte(nil), key...))
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })
	return keys, nil
}
