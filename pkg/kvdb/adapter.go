// Package kvdb adapts CometBFT's embedded dbm.DB (goleveldb-backed,
// on-disk) to pkg/store.KV, giving the kernel's store and wallet database
// a persistent backend alongside pkg/store.MemKV's in-memory one.
package kvdb

import (
	dbm "github.com/cometbft/cometbft-db"
)

// Adapter wraps a CometBFT dbm.DB and exposes pkg/store.KV.
type Adapter struct {
	db dbm.DB
}

// Open creates (or reopens) a goleveldb-backed KV store named name under
// dir.
func Open(name, dir string) (*Adapter, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, err
	}
	return &Adapter{db: db}, nil
}

// NewAdapter wraps an already-open dbm.DB, letting callers choose a
// different CometBFT backend (memdb for tests, rocksdb, ...).
func NewAdapter(db dbm.DB) *Adapter {
	return &Adapter{db: db}
}

// Get implements store.KV.
func (a *Adapter) Get(key []byte) ([]byte, error) {
	return a.db.Get(key)
}

// Set implements store.KV. Writes are synchronous: the kernel's content
// addressing means a lost write is indistinguishable from one that never
// happened, so there's no point risking the OS write-behind cache.
func (a *Adapter) Set(key, value []byte) error {
	return a.db.SetSync(key, value)
}

// Delete implements store.KV.
func (a *Adapter) Delete(key []byte) error {
	return a.db.DeleteSync(key)
}

// Iterate implements store.KV by scanning [prefix, prefixUpperBound) in
// ascending key order.
func (a *Adapter) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	it, err := a.db.Iterator(prefix, prefixUpperBound(prefix))
	if err != nil {
		return err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

// Close releases the underlying database.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// prefixUpperBound returns the smallest key greater than every key with
// the given prefix, or nil (meaning "no upper bound") if prefix is empty
// or all 0xff.
func prefixUpperBound(prefix []byte) []byte {
	bound := append([]byte{}, prefix...)
	for i := len(bound) - 1; i >= 0; i-- {
		if bound[i] < 0xff {
			bound[i]++
			return bound[:i+1]
		}
	}
	return nil
}
