// Package executive implements the Executive: transaction validation
// (spec §4.7) and block lifecycle (spec §4.8) on top of pkg/store,
// pkg/aggregate, and pkg/merkle.
package executive

import (
	"fmt"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/checker"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/merkle"
	"github.com/utxokernel/kernel/pkg/store"
	"github.com/utxokernel/kernel/pkg/types"
)

// Transaction is the deployment's concrete transaction type: the aggregate
// verifier and checker sum types from pkg/aggregate.
type Transaction = types.Transaction[aggregate.Verifier, aggregate.Checker]

// Executive orchestrates the store against the aggregate verifier/checker
// algebra. It is not safe for concurrent ApplyExtrinsic/OpenBlock calls —
// one block is built or imported at a time, matching pkg/store's
// single-writer contract.
type Executive struct {
	store   *store.Store
	metrics *Metrics

	parentHash      kernelcrypto.Hash256
	blockNumber     uint64
	extrinsics      [][]byte
	extrinsicHashes []kernelcrypto.Hash256
}

// New builds an Executive over st, counting into metrics (nil for a fresh
// set registered on a private registry).
func New(st *store.Store, metrics *Metrics) *Executive {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Executive{store: st, metrics: metrics}
}

// decodeStoredOutput reads the Output a store key holds.
func decodeStoredOutput(raw []byte) (types.Output[aggregate.Verifier], error) {
	d := codec.NewDecoder(raw)
	return types.DecodeOutput(d, aggregate.DecodeVerifier)
}

// Validate runs the spec §4.7 pipeline against tx as if it were being
// applied at the given height, without mutating the store. On success it
// returns the pending delta (only committed by Apply/ApplyExtrinsic) and
// the checker's reported priority.
func (ex *Executive) Validate(height uint64, tx Transaction) (store.Delta, uint64, error) {
	if err := structuralChecks(tx); err != nil {
		ex.metrics.TxValidateErrors.Inc()
		return store.Delta{}, 0, err
	}

	simplifiedTx := stripped(tx)
	txHash := kernelcrypto.Hash(simplifiedTx)

	inputPayloads := make([]types.AnyPayload, len(tx.Inputs))
	var removes [][]byte
	for i, in := range tx.Inputs {
		key := in.OutputRef.EncodeBytes()
		raw, err := ex.store.Get(key)
		if err != nil {
			ex.metrics.TxValidateErrors.Inc()
			return store.Delta{}, 0, fmt.Errorf("%w: %v", checker.ErrMissingInput, err)
		}
		out, err := decodeStoredOutput(raw)
		if err != nil {
			ex.metrics.TxValidateErrors.Inc()
			return store.Delta{}, 0, err
		}
		if !out.Verifier.Verify(simplifiedTx, in.Redeemer) {
			ex.metrics.TxValidateErrors.Inc()
			return store.Delta{}, 0, ErrVerifierFailed
		}
		inputPayloads[i] = out.Payload
		removes = append(removes, key)
	}

	evictionPayloads := make([]types.AnyPayload, len(tx.Evictions))
	for i, ref := range tx.Evictions {
		key := ref.EncodeBytes()
		raw, err := ex.store.Get(key)
		if err != nil {
			ex.metrics.TxValidateErrors.Inc()
			return store.Delta{}, 0, fmt.Errorf("%w: %v", checker.ErrMissingInput, err)
		}
		out, err := decodeStoredOutput(raw)
		if err != nil {
			ex.metrics.TxValidateErrors.Inc()
			return store.Delta{}, 0, err
		}
		evictionPayloads[i] = out.Payload
		removes = append(removes, key)
	}

	peekPayloads := make([]types.AnyPayload, len(tx.Peeks))
	for i, ref := range tx.Peeks {
		raw, err := ex.store.Peek(ref.EncodeBytes())
		if err != nil {
			ex.metrics.TxValidateErrors.Inc()
			return store.Delta{}, 0, fmt.Errorf("%w: %v", checker.ErrMissingInput, err)
		}
		out, err := decodeStoredOutput(raw)
		if err != nil {
			ex.metrics.TxValidateErrors.Inc()
			return store.Delta{}, 0, err
		}
		peekPayloads[i] = out.Payload
	}

	outputPayloads := make([]types.AnyPayload, len(tx.Outputs))
	for i, o := range tx.Outputs {
		outputPayloads[i] = o.Payload
	}

	priority, err := tx.Checker.Check(height, inputPayloads, evictionPayloads, peekPayloads, outputPayloads)
	if err != nil {
		ex.metrics.TxValidateErrors.Inc()
		return store.Delta{}, 0, err
	}

	inserts := make([]store.KeyValue, len(tx.Outputs))
	for i, o := range tx.Outputs {
		ref := types.OutputRef{TxHash: txHash, Index: uint32(i)}
		key := ref.EncodeBytes()
		if has, err := ex.store.Has(key); err != nil {
			return store.Delta{}, 0, err
		} else if has {
			ex.metrics.TxValidateErrors.Inc()
			return store.Delta{}, 0, checker.ErrPreExistingOutput
		}
		e := codec.NewEncoder()
		o.Encode(e)
		inserts[i] = store.KeyValue{Key: key, Value: e.Bytes()}
	}

	return store.Delta{Removes: removes, Inserts: inserts}, priority, nil
}

// Apply validates tx at height and, on success, commits its delta.
func (ex *Executive) Apply(height uint64, tx Transaction) (uint64, error) {
	delta, priority, err := ex.Validate(height, tx)
	if err != nil {
		return 0, err
	}
	if err := ex.store.ApplyDelta(delta); err != nil {
		return 0, err
	}
	ex.metrics.TxApplied.Inc()
	return priority, nil
}

// OpenBlock resets per-block transient state ahead of a sequence of
// ApplyExtrinsic calls (spec §4.8).
func (ex *Executive) OpenBlock(header types.Header) {
	ex.parentHash = header.ParentHash
	ex.blockNumber = header.Number
	ex.extrinsics = nil
	ex.extrinsicHashes = nil
}

// ApplyExtrinsic validates tx against the block currently open and commits
// its delta, enforcing that a non-genesis block's leading extrinsics are
// exactly the deployment's inherents, in aggregate.InherentTags order
// (spec §4.8, §4.9).
func (ex *Executive) ApplyExtrinsic(tx Transaction) error {
	idx := len(ex.extrinsics)
	if ex.blockNumber > 0 {
		if idx < len(aggregate.InherentTags) {
			if tx.Checker.Tag() != aggregate.InherentTags[idx] {
				return ErrInherentOutOfOrder
			}
		} else if tx.Checker.IsInherent() {
			return ErrInherentOutOfOrder
		}
	}

	if _, err := ex.Apply(ex.blockNumber, tx); err != nil {
		return err
	}

	e := codec.NewEncoder()
	tx.Encode(e)
	ex.extrinsics = append(ex.extrinsics, e.Bytes())
	ex.extrinsicHashes = append(ex.extrinsicHashes, tx.Hash())
	return nil
}

// CloseBlock recomputes the state root from the store's live outputs and
// the extrinsics root from the block's applied transactions, returning the
// populated header (spec §4.8).
func (ex *Executive) CloseBlock() (types.Header, error) {
	header := types.Header{ParentHash: ex.parentHash, Number: ex.blockNumber}

	leaves, err := ex.store.StateRootLeaves(nil)
	if err != nil {
		return types.Header{}, err
	}
	if len(leaves) > 0 {
		hashed := make([][]byte, len(leaves))
		for i, k := range leaves {
			hashed[i] = merkle.HashData(k)
		}
		tree, err := merkle.BuildTree(hashed)
		if err != nil {
			return types.Header{}, err
		}
		copy(header.StateRoot[:], tree.Root())
	}

	if len(ex.extrinsicHashes) > 0 {
		hashed := make([][]byte, len(ex.extrinsicHashes))
		for i, h := range ex.extrinsicHashes {
			hashed[i] = append([]byte(nil), h[:]...)
		}
		tree, err := merkle.BuildTree(hashed)
		if err != nil {
			return types.Header{}, err
		}
		copy(header.ExtrinsicsRoot[:], tree.Root())
	}

	return header, nil
}

// ExecuteBlock re-runs OpenBlock, ApplyExtrinsic for each of block's
// extrinsics, and CloseBlock, asserting the recomputed header's roots
// match the header block carries (spec §4.8).
func (ex *Executive) ExecuteBlock(block types.Block) error {
	ex.OpenBlock(block.Header)
	for _, raw := range block.Extrinsics {
		tx, err := types.DecodeTransaction[aggregate.Verifier, aggregate.Checker](raw, aggregate.DecodeVerifier, aggregate.DecodeChecker)
		if err != nil {
			return err
		}
		if err := ex.ApplyExtrinsic(tx); err != nil {
			return err
		}
	}
	got, err := ex.CloseBlock()
	if err != nil {
		return err
	}
	if got.StateRoot != block.Header.StateRoot || got.ExtrinsicsRoot != block.Header.ExtrinsicsRoot {
		return ErrHeaderMismatch
	}
	ex.metrics.BlocksApplied.Inc()
	return nil
}

// stripped returns the canonical encoding of tx with every input redeemer
// replaced by an empty byte string: the signature domain and the
// content-addressing preimage (spec §4.4, §4.8).
func stripped(tx Transaction) []byte {
	e := codec.NewEncoder()
	tx.EncodeStripped(e)
	return e.Bytes()
}

// structuralChecks enforces spec §4.7 step 1: input refs pairwise distinct,
// and input/peek/eviction refs mutually disjoint.
func structuralChecks(tx Transaction) error {
	seen := make(map[types.OutputRef]string, len(tx.Inputs)+len(tx.Peeks)+len(tx.Evictions))
	mark := func(ref types.OutputRef, kind string) error {
		if prior, ok := seen[ref]; ok {
			if kind == prior && kind == "input" {
				return ErrDuplicateInputRef
			}
			return ErrOverlappingRefs
		}
		seen[ref] = kind
		return nil
	}
	for _, in := range tx.Inputs {
		if err := mark(in.OutputRef, "input"); err != nil {
			return err
		}
	}
	for _, ref := range tx.Peeks {
		if err := mark(ref, "peek"); err != nil {
			return err
		}
	}
	for _, ref := range tx.Evictions {
		if err := mark(ref, "eviction"); err != nil {
			return err
		}
	}
	return nil
}
