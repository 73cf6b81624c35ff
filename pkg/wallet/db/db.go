// Package db implements the wallet's local mirror of chain state (spec
// §4.16): the logical tables block_hashes/blocks/unspent/fresh_kitty/
// used_kitty/fresh_tradable_kitty/used_tradable_kitty, laid out as prefixed
// keyspaces over one store.KV, in the same key-prefixing idiom
// pkg/ledger/store.go uses for its own keyspaces.
package db

import (
	"encoding/binary"

	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/store"
	"github.com/utxokernel/kernel/pkg/types"
)

var (
	prefixBlockHash          = []byte("wallet:block_hash:")
	prefixBlock              = []byte("wallet:block:")
	prefixUnspent            = []byte("wallet:unspent:")
	prefixSpentCoin          = []byte("wallet:spent_coin:")
	prefixFreshKitty         = []byte("wallet:fresh_kitty:")
	prefixUsedKitty          = []byte("wallet:used_kitty:")
	prefixFreshTradableKitty = []byte("wallet:fresh_tkitty:")
	prefixUsedTradableKitty  = []byte("wallet:used_tkitty:")
	keyGenesisHash           = []byte("wallet:genesis_hash")
	keyTip                   = []byte("wallet:tip_height")
)

// DB is the wallet's local database: a typed view over a raw store.KV.
type DB struct {
	kv store.KV
}

// New wraps kv as a wallet DB.
func New(kv store.KV) *DB { return &DB{kv: kv} }

func heightKey(prefix []byte, height uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], height)
	return append(append([]byte(nil), prefix...), b[:]...)
}

func refKey(prefix []byte, ref types.OutputRef) []byte {
	return append(append([]byte(nil), prefix...), ref.EncodeBytes()...)
}

// Open verifies the on-disk genesis hash (if any) matches genesisHash,
// stamping it on a freshly created database (spec §4.16 "Opening the
// database verifies the on-disk genesis hash matches the node's reported
// genesis hash").
func Open(kv store.KV, genesisHash kernelcrypto.Hash256) (*DB, error) {
	d := New(kv)
	existing, err := kv.Get(keyGenesisHash)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := kv.Set(keyGenesisHash, genesisHash[:]); err != nil {
			return nil, err
		}
		if err := d.PutBlockHash(0, genesisHash); err != nil {
			return nil, err
		}
		if err := d.SetHeight(0); err != nil {
			return nil, err
		}
		return d, nil
	}
	var have kernelcrypto.Hash256
	copy(have[:], existing)
	if have != genesisHash {
		return nil, ErrGenesisMismatch
	}
	return d, nil
}

// Height returns the wallet's current sync height.
func (d *DB) Height() (uint64, error) {
	b, err := d.kv.Get(keyTip)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(b), nil
}

// SetHeight records the wallet's current sync height.
func (d *DB) SetHeight(height uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], height)
	return d.kv.Set(keyTip, b[:])
}

// BlockHash returns the hash recorded at height, or (zero, false, nil) if
// none is recorded.
func (d *DB) BlockHash(height uint64) (kernelcrypto.Hash256, bool, error) {
	b, err := d.kv.Get(heightKey(prefixBlockHash, height))
	if err != nil {
		return kernelcrypto.Hash256{}, false, err
	}
	if b == nil {
		return kernelcrypto.Hash256{}, false, nil
	}
	var h kernelcrypto.Hash256
	copy(h[:], b)
	return h, true, nil
}

// PutBlockHash records hash at height.
func (d *DB) PutBlockHash(height uint64, hash kernelcrypto.Hash256) error {
	return d.kv.Set(heightKey(prefixBlockHash, height), hash[:])
}

// DeleteBlockHash removes the height->hash entry (reorg unwind).
func (d *DB) DeleteBlockHash(height uint64) error {
	return d.kv.Delete(heightKey(prefixBlockHash, height))
}

// Block returns the block recorded under hash.
func (d *DB) Block(hash kernelcrypto.Hash256) (types.Block, bool, error) {
	raw, err := d.kv.Get(append(append([]byte(nil), prefixBlock...), hash[:]...))
	if err != nil {
		return types.Block{}, false, err
	}
	if raw == nil {
		return types.Block{}, false, nil
	}
	block, err := types.DecodeBlock(codec.NewDecoder(raw))
	if err != nil {
		return types.Block{}, false, err
	}
	return block, true, nil
}

// PutBlock records block under hash.
func (d *DB) PutBlock(hash kernelcrypto.Hash256, block types.Block) error {
	e := codec.NewEncoder()
	block.Encode(e)
	return d.kv.Set(append(append([]byte(nil), prefixBlock...), hash[:]...), e.Bytes())
}

// GetUnspent returns the coin recorded at ref.
func (d *DB) GetUnspent(ref types.OutputRef) (CoinRecord, bool, error) {
	raw, err := d.kv.Get(refKey(prefixUnspent, ref))
	if err != nil {
		return CoinRecord{}, false, err
	}
	if raw == nil {
		return CoinRecord{}, false, nil
	}
	r, err := DecodeCoinRecord(codec.NewDecoder(raw))
	return r, true, err
}

// PutUnspent records a coin as spendable at ref.
func (d *DB) PutUnspent(ref types.OutputRef, r CoinRecord) error {
	e := codec.NewEncoder()
	r.Encode(e)
	return d.kv.Set(refKey(prefixUnspent, ref), e.Bytes())
}

// DeleteUnspent removes ref from the unspent table.
func (d *DB) DeleteUnspent(ref types.OutputRef) error {
	return d.kv.Delete(refKey(prefixUnspent, ref))
}

// SpendCoin moves ref's record from unspent to the spent-coin archive,
// preserving the record so a later reorg unwind can restore it exactly
// (spec §4.16 step 2 "re-insert inputs as unspent"; no logical table of its
// own, supplemented from original_source/wallet/src/sync.rs's
// spent_outputs tree, since the unwind step needs the consumed record back
// and spec's four named tables alone don't retain it).
func (d *DB) SpendCoin(ref types.OutputRef) error {
	key := refKey(prefixUnspent, ref)
	raw, err := d.kv.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return ErrNotFound
	}
	if err := d.kv.Delete(key); err != nil {
		return err
	}
	return d.kv.Set(refKey(prefixSpentCoin, ref), raw)
}

// UnspendCoin is the inverse of SpendCoin.
func (d *DB) UnspendCoin(ref types.OutputRef) error {
	key := refKey(prefixSpentCoin, ref)
	raw, err := d.kv.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return ErrNotFound
	}
	if err := d.kv.Delete(key); err != nil {
		return err
	}
	return d.kv.Set(refKey(prefixUnspent, ref), raw)
}

// ListUnspent returns every recorded (ref, record) pair in the unspent
// table, for coin-selection and balance queries.
func (d *DB) ListUnspent() ([]UnspentEntry, error) {
	var out []UnspentEntry
	err := d.kv.Iterate(prefixUnspent, func(key, value []byte) bool {
		ref, err := decodeRefKey(prefixUnspent, key)
		if err != nil {
			return true
		}
		r, err := DecodeCoinRecord(codec.NewDecoder(value))
		if err != nil {
			return true
		}
		out = append(out, UnspentEntry{Ref: ref, Record: r})
		return true
	})
	return out, err
}

// UnspentEntry is one row of ListUnspent's result.
type UnspentEntry struct {
	Ref    types.OutputRef
	Record CoinRecord
}

func decodeRefKey(prefix, key []byte) (types.OutputRef, error) {
	return types.DecodeOutputRef(codec.NewDecoder(key[len(prefix):]))
}

// kittyTable bundles the fresh/used pair of key prefixes one kitty flavor
// (plain or tradable) shares, so sync.go's fresh<->used moves are written
// once and reused for both flavors.
type kittyTable struct {
	fresh, used []byte
}

var (
	kittyTablePlain     = kittyTable{fresh: prefixFreshKitty, used: prefixUsedKitty}
	kittyTableTradable  = kittyTable{fresh: prefixFreshTradableKitty, used: prefixUsedTradableKitty}
)

// GetFreshKitty returns the plain-kitty record at ref, if fresh.
func (d *DB) GetFreshKitty(ref types.OutputRef) (KittyRecord, bool, error) {
	return d.getKitty(kittyTablePlain.fresh, ref)
}

// PutFreshKitty inserts a plain kitty as fresh at ref.
func (d *DB) PutFreshKitty(ref types.OutputRef, r KittyRecord) error {
	return d.putKitty(kittyTablePlain.fresh, ref, r)
}

// MoveKittyFreshToUsed moves ref from fresh_kitty to used_kitty, preserving
// its record (spec §4.16 step 3 "move kitty ... entries from fresh to
// used").
func (d *DB) MoveKittyFreshToUsed(ref types.OutputRef) error {
	return d.moveKitty(kittyTablePlain, ref)
}

// MoveKittyUsedToFresh is the reorg-unwind inverse of
// MoveKittyFreshToUsed (spec §4.16 step 2 "move used-kitty records back to
// fresh").
func (d *DB) MoveKittyUsedToFresh(ref types.OutputRef) error {
	return d.moveKittyBack(kittyTablePlain, ref)
}

// GetFreshTradableKitty returns the tradable-kitty record at ref, if fresh.
func (d *DB) GetFreshTradableKitty(ref types.OutputRef) (TradableKittyRecord, bool, error) {
	raw, err := d.kv.Get(refKey(prefixFreshTradableKitty, ref))
	if err != nil || raw == nil {
		return TradableKittyRecord{}, raw != nil, err
	}
	r, err := DecodeTradableKittyRecord(codec.NewDecoder(raw))
	return r, true, err
}

// PutFreshTradableKitty inserts a tradable kitty as fresh at ref.
func (d *DB) PutFreshTradableKitty(ref types.OutputRef, r TradableKittyRecord) error {
	e := codec.NewEncoder()
	r.Encode(e)
	return d.kv.Set(refKey(prefixFreshTradableKitty, ref), e.Bytes())
}

// MoveTradableKittyFreshToUsed moves ref from fresh_tradable_kitty to
// used_tradable_kitty.
func (d *DB) MoveTradableKittyFreshToUsed(ref types.OutputRef) error {
	return d.moveKitty(kittyTableTradable, ref)
}

// MoveTradableKittyUsedToFresh is the reorg-unwind inverse.
func (d *DB) MoveTradableKittyUsedToFresh(ref types.OutputRef) error {
	return d.moveKittyBack(kittyTableTradable, ref)
}

func (d *DB) getKitty(prefix []byte, ref types.OutputRef) (KittyRecord, bool, error) {
	raw, err := d.kv.Get(refKey(prefix, ref))
	if err != nil || raw == nil {
		return KittyRecord{}, raw != nil, err
	}
	r, err := DecodeKittyRecord(codec.NewDecoder(raw))
	return r, true, err
}

func (d *DB) putKitty(prefix []byte, ref types.OutputRef, r KittyRecord) error {
	e := codec.NewEncoder()
	r.Encode(e)
	return d.kv.Set(refKey(prefix, ref), e.Bytes())
}

// moveKitty relocates ref's raw bytes from t.fresh to t.used unmodified,
// for both the plain and tradable kitty key shapes.
func (d *DB) moveKitty(t kittyTable, ref types.OutputRef) error {
	key := refKey(t.fresh, ref)
	raw, err := d.kv.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return ErrNotFound
	}
	if err := d.kv.Delete(key); err != nil {
		return err
	}
	return d.kv.Set(refKey(t.used, ref), raw)
}

// moveKittyBack is the inverse of moveKitty, used_kitty -> fresh_kitty.
func (d *DB) moveKittyBack(t kittyTable, ref types.OutputRef) error {
	key := refKey(t.used, ref)
	raw, err := d.kv.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return ErrNotFound
	}
	if err := d.kv.Delete(key); err != nil {
		return err
	}
	return d.kv.Set(refKey(t.fresh, ref), raw)
}

// DeleteFreshKitty removes a fresh plain-kitty entry outright (reorg
// unwind of a Creation/Mitosis output insertion).
func (d *DB) DeleteFreshKitty(ref types.OutputRef) error {
	return d.kv.Delete(refKey(prefixFreshKitty, ref))
}

// DeleteFreshTradableKitty removes a fresh tradable-kitty entry outright.
func (d *DB) DeleteFreshTradableKitty(ref types.OutputRef) error {
	return d.kv.Delete(refKey(prefixFreshTradableKitty, ref))
}

// ListFreshKitty returns every fresh plain-kitty (ref, record) pair.
func (d *DB) ListFreshKitty() ([]KittyEntry, error) {
	var out []KittyEntry
	err := d.kv.Iterate(prefixFreshKitty, func(key, value []byte) bool {
		ref, err := decodeRefKey(prefixFreshKitty, key)
		if err != nil {
			return true
		}
		r, err := DecodeKittyRecord(codec.NewDecoder(value))
		if err != nil {
			return true
		}
		out = append(out, KittyEntry{Ref: ref, Record: r})
		return true
	})
	return out, err
}

// KittyEntry is one row of ListFreshKitty's result.
type KittyEntry struct {
	Ref    types.OutputRef
	Record KittyRecord
}

// ListFreshTradableKitty returns every fresh tradable-kitty (ref, record)
// pair, for listing queries and atomic-buy input selection.
func (d *DB) ListFreshTradableKitty() ([]TradableKittyEntry, error) {
	var out []TradableKittyEntry
	err := d.kv.Iterate(prefixFreshTradableKitty, func(key, value []byte) bool {
		ref, err := decodeRefKey(prefixFreshTradableKitty, key)
		if err != nil {
			return true
		}
		r, err := DecodeTradableKittyRecord(codec.NewDecoder(value))
		if err != nil {
			return true
		}
		out = append(out, TradableKittyEntry{Ref: ref, Record: r})
		return true
	})
	return out, err
}

// TradableKittyEntry is one row of ListFreshTradableKitty's result.
type TradableKittyEntry struct {
	Ref    types.OutputRef
	Record TradableKittyRecord
}
