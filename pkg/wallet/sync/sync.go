// Package sync implements the wallet's reorg-aware synchronization loop
// (spec §4.16), generalizing pkg/execution/external_chain_observer.go's
// polling-and-reconcile loop from a remote-chain observer to the wallet's
// own local mirror of chain state.
package sync

import (
	"context"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/pieces/kitties"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/rpc"
	"github.com/utxokernel/kernel/pkg/types"
	"github.com/utxokernel/kernel/pkg/wallet/db"
)

// Transaction is the deployment's concrete transaction type, matching
// pkg/executive.Transaction.
type Transaction = types.Transaction[aggregate.Verifier, aggregate.Checker]

// Loop drives one wallet database's synchronization against a node
// reached through an rpc.Client. It is single-threaded cooperative (spec
// §5): one call to Sync owns the database exclusively until it returns.
type Loop struct {
	client  rpc.Client
	db      *db.DB
	keys    Keystore
	metrics *Metrics
}

// New builds a Loop over wdb, polling client and recording ownership
// against keys.
func New(client rpc.Client, wdb *db.DB, keys Keystore, metrics *Metrics) *Loop {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Loop{client: client, db: wdb, keys: keys, metrics: metrics}
}

// Sync runs the spec §4.16 algorithm to completion: unwind any reorg back
// to the fork point, then catch up forward to the node's current tip.
func (l *Loop) Sync(ctx context.Context) error {
	h, err := l.db.Height()
	if err != nil {
		return err
	}

	walletHash, walletOK, err := l.db.BlockHash(h)
	if err != nil {
		return err
	}
	nodeHash, nodeOK, err := l.client.GetBlockHash(ctx, h)
	if err != nil {
		return err
	}

	reorged := false
	for !sameHash(walletHash, walletOK, nodeHash, nodeOK) {
		reorged = true
		if err := l.unwindOne(h, walletHash, walletOK); err != nil {
			return err
		}
		if h == 0 {
			// Genesis is a fixed point (spec §4.16 step 2); if we ever
			// unwound down to it and still disagree, the node is on an
			// incompatible chain.
			return ErrInconsistentDB
		}
		h--
		walletHash, walletOK, err = l.db.BlockHash(h)
		if err != nil {
			return err
		}
		nodeHash, nodeOK, err = l.client.GetBlockHash(ctx, h)
		if err != nil {
			return err
		}
	}
	if reorged {
		l.metrics.ReorgsHandled.Inc()
	}

	for {
		next := h + 1
		hash, ok, err := l.client.GetBlockHash(ctx, next)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		block, ok, err := l.client.GetBlock(ctx, hash)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInconsistentDB
		}
		if err := l.applyBlock(block); err != nil {
			return err
		}
		if err := l.db.PutBlockHash(next, hash); err != nil {
			return err
		}
		if err := l.db.PutBlock(hash, block); err != nil {
			return err
		}
		if err := l.db.SetHeight(next); err != nil {
			return err
		}
		l.metrics.BlocksSynced.Inc()
		h = next
	}
	return nil
}

func sameHash(a kernelcrypto.Hash256, aOK bool, b kernelcrypto.Hash256, bOK bool) bool {
	if aOK != bOK {
		return false
	}
	return !aOK || a == b
}

// applyBlock applies every transaction of block to the wallet's tables in
// order (spec §4.16 step 3).
func (l *Loop) applyBlock(block types.Block) error {
	for _, raw := range block.Extrinsics {
		tx, err := types.DecodeTransaction[aggregate.Verifier, aggregate.Checker](raw, aggregate.DecodeVerifier, aggregate.DecodeChecker)
		if err != nil {
			return err
		}
		if err := l.applyTransaction(tx); err != nil {
			return err
		}
	}
	return nil
}

// applyTransaction inserts tx's filtered outputs as fresh entries and
// consumes its inputs/evictions, in the order spec §4.16 step 3 describes.
func (l *Loop) applyTransaction(tx Transaction) error {
	txHash := tx.Hash()
	for i, out := range tx.Outputs {
		owner, ok := filterOwner(out.Verifier, l.keys)
		if !ok {
			continue
		}
		ref := types.OutputRef{TxHash: txHash, Index: uint32(i)}
		if err := l.insertFresh(ref, owner, out.Payload); err != nil {
			return err
		}
	}
	for _, in := range tx.Inputs {
		if err := l.consumeRef(in.OutputRef); err != nil {
			return err
		}
	}
	// Evictions are treated identically to inputs for cleanup purposes
	// (spec §4.16 step 3).
	for _, ref := range tx.Evictions {
		if err := l.consumeRef(ref); err != nil {
			return err
		}
	}
	return nil
}

// insertFresh records a newly created, wallet-owned output under the table
// matching its payload type. Payload types the wallet doesn't index (PoE
// claims, timestamps, ...) are silently skipped.
func (l *Loop) insertFresh(ref types.OutputRef, owner kernelcrypto.PublicKey, payload types.AnyPayload) error {
	switch payload.TypeID {
	case money.CoinTypeID:
		coin, err := money.AsCoin(payload)
		if err != nil {
			return nil // badly-typed coin payload; nothing to track
		}
		return l.db.PutUnspent(ref, db.CoinRecord{Owner: owner, Amount: coin.Value})
	case kitties.KittyTypeID:
		k, err := kitties.AsKittyData(payload)
		if err != nil {
			return nil
		}
		return l.db.PutFreshKitty(ref, db.KittyRecord{Owner: owner, Data: k})
	case kitties.TradableKittyTypeID:
		k, err := kitties.AsTradableKittyData(payload)
		if err != nil {
			return nil
		}
		return l.db.PutFreshTradableKitty(ref, db.TradableKittyRecord{Owner: owner, Data: k})
	default:
		return nil
	}
}

// consumeRef implements spec §4.16 step 3's "for each input, first attempt
// to spend from unspent, then move kitty/tradable-kitty entries from fresh
// to used". A ref the wallet never recorded (not ours, or not an indexed
// payload type) is a silent no-op.
func (l *Loop) consumeRef(ref types.OutputRef) error {
	if err := l.db.SpendCoin(ref); err == nil {
		return nil
	} else if err != db.ErrNotFound {
		return err
	}
	if err := l.db.MoveKittyFreshToUsed(ref); err == nil {
		return nil
	} else if err != db.ErrNotFound {
		return err
	}
	if err := l.db.MoveTradableKittyFreshToUsed(ref); err == nil {
		return nil
	} else if err != db.ErrNotFound {
		return err
	}
	return nil
}

// unwindOne reverses height's block (spec §4.16 step 2): its transactions
// replayed in reverse order, each undone field-by-field, then the
// height->hash entry is dropped. ok being false (no recorded hash at this
// height) means there is nothing local to undo.
func (l *Loop) unwindOne(height uint64, hash kernelcrypto.Hash256, ok bool) error {
	if ok {
		block, found, err := l.db.Block(hash)
		if err != nil {
			return err
		}
		if !found {
			return ErrInconsistentDB
		}
		for i := len(block.Extrinsics) - 1; i >= 0; i-- {
			tx, err := types.DecodeTransaction[aggregate.Verifier, aggregate.Checker](block.Extrinsics[i], aggregate.DecodeVerifier, aggregate.DecodeChecker)
			if err != nil {
				return err
			}
			if err := l.unapplyTransaction(tx); err != nil {
				return err
			}
		}
		l.metrics.UnwoundBlocks.Inc()
	}
	return l.db.DeleteBlockHash(height)
}

// unapplyTransaction is the exact inverse of applyTransaction: evictions
// and inputs are restored first (mirroring the forward order in reverse),
// then the transaction's own outputs are dropped.
func (l *Loop) unapplyTransaction(tx Transaction) error {
	for i := len(tx.Evictions) - 1; i >= 0; i-- {
		if err := l.unconsumeRef(tx.Evictions[i]); err != nil {
			return err
		}
	}
	for i := len(tx.Inputs) - 1; i >= 0; i-- {
		if err := l.unconsumeRef(tx.Inputs[i].OutputRef); err != nil {
			return err
		}
	}
	txHash := tx.Hash()
	for i := range tx.Outputs {
		ref := types.OutputRef{TxHash: txHash, Index: uint32(i)}
		if err := l.removeFresh(ref); err != nil {
			return err
		}
	}
	return nil
}

// unconsumeRef is the inverse of consumeRef.
func (l *Loop) unconsumeRef(ref types.OutputRef) error {
	if err := l.db.UnspendCoin(ref); err == nil {
		return nil
	} else if err != db.ErrNotFound {
		return err
	}
	if err := l.db.MoveKittyUsedToFresh(ref); err == nil {
		return nil
	} else if err != db.ErrNotFound {
		return err
	}
	if err := l.db.MoveTradableKittyUsedToFresh(ref); err == nil {
		return nil
	} else if err != db.ErrNotFound {
		return err
	}
	return nil
}

// removeFresh drops ref from whichever fresh table might hold it; a ref
// the wallet never recorded is a silent no-op.
func (l *Loop) removeFresh(ref types.OutputRef) error {
	if err := l.db.DeleteUnspent(ref); err != nil {
		return err
	}
	if err := l.db.DeleteFreshKitty(ref); err != nil {
		return err
	}
	return l.db.DeleteFreshTradableKitty(ref)
}
