package store

import (
	dbm "github.com/cometbft/cometbft-db"
)

// CometKV wraps a github.com/cometbft/cometbft-db database as a KV,
// adapted from the teacher's pkg/kvdb.KVAdapter (which covered only
// Get/Set) to also cover Delete and prefix iteration, both of which the
// kernel's Store and the wallet's local tables need.
type CometKV struct {
	db dbm.DB
}

// NewCometKV wraps db. Callers typically obtain db via
// dbm.NewDB(name, dbm.GoLevelDBBackend, dir).
func NewCometKV(db dbm.DB) *CometKV {
	return &CometKV{db: db}
}

func (a *CometKV) Get(key []byte) ([]byte, error) {
	v, err := a.db.Get(key)
	if err != nil {
		return nil, err
	}
	// v may be nil if key not found - that's fine, Store treats nil as "not present".
	return v, nil
}

// Set writes durably (SetSync) since the Executive only calls this at
// block-apply commit time, matching the teacher's adapter.
func (a *CometKV) Set(key, value []byte) error {
	return a.db.SetSync(key, value)
}

func (a *CometKV) Delete(key []byte) error {
	return a.db.DeleteSync(key)
}

func (a *CometKV) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	end := prefixUpperBound(prefix)
	it, err := a.db.Iterator(prefix, end)
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

// prefixUpperBound returns the smallest key greater than every key sharing
// prefix, or nil (meaning "to the end") if prefix is all 0xFF bytes.
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// Close closes the underlying database.
func (a *CometKV) Close() error { return a.db.Close() }
