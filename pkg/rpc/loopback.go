package rpc

import (
	"context"
	"sync"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/executive"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/store"
	"github.com/utxokernel/kernel/pkg/types"
)

// LoopbackClient is an in-process rpc.Client wrapping a local
// *executive.Executive and its own block history. It is the harness used by
// wallet tests, and cmd/kerneld serves one through rpc.Server; it makes no
// network calls.
type LoopbackClient struct {
	mu sync.Mutex

	store   *store.Store
	ex      *executive.Executive
	genesis kernelcrypto.Hash256

	tip    uint64
	hashes map[uint64]kernelcrypto.Hash256
	blocks map[kernelcrypto.Hash256]types.Block
}

// NewLoopbackClient builds a loopback node over st, producing its own
// genesis block (an empty block at height 0) whose hash becomes
// genesisHash.
func NewLoopbackClient(st *store.Store, metrics *executive.Metrics) *LoopbackClient {
	ex := executive.New(st, metrics)
	n := &LoopbackClient{
		store:  st,
		ex:     ex,
		hashes: make(map[uint64]kernelcrypto.Hash256),
		blocks: make(map[kernelcrypto.Hash256]types.Block),
	}
	genesis := types.Block{Header: types.Header{Number: 0}}
	n.recordBlock(0, genesis)
	n.genesis = n.hashes[0]
	return n
}

// recordBlock hashes block's header encoding and files it under both the
// height and hash indices.
func (n *LoopbackClient) recordBlock(height uint64, block types.Block) kernelcrypto.Hash256 {
	e := codec.NewEncoder()
	block.Header.Encode(e)
	hash := kernelcrypto.Hash(e.Bytes())
	n.hashes[height] = hash
	n.blocks[hash] = block
	if height > n.tip {
		n.tip = height
	}
	return hash
}

// ProduceBlock builds and applies a new block on top of the current tip,
// containing txs in order. ProduceBlock does not author inherents, and
// ApplyExtrinsic rejects a block past genesis whose leading txs are not the
// deployment's inherents in their declared order. It is the test/harness
// entry point standing in for a consensus engine's block production.
func (n *LoopbackClient) ProduceBlock(txs []executive.Transaction) (types.Block, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	height := n.tip + 1
	parent := n.hashes[n.tip]
	n.ex.OpenBlock(types.Header{ParentHash: parent, Number: height})
	for _, tx := range txs {
		if err := n.ex.ApplyExtrinsic(tx); err != nil {
			return types.Block{}, err
		}
	}
	header, err := n.ex.CloseBlock()
	if err != nil {
		return types.Block{}, err
	}

	raws := make([][]byte, len(txs))
	for i, tx := range txs {
		e := codec.NewEncoder()
		tx.Encode(e)
		raws[i] = e.Bytes()
	}
	block := types.Block{Header: header, Extrinsics: raws}
	n.recordBlock(height, block)
	return block, nil
}

func (n *LoopbackClient) GetBlockHash(_ context.Context, height uint64) (kernelcrypto.Hash256, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	h, ok := n.hashes[height]
	return h, ok, nil
}

func (n *LoopbackClient) GetBlock(_ context.Context, hash kernelcrypto.Hash256) (types.Block, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	b, ok := n.blocks[hash]
	return b, ok, nil
}

func (n *LoopbackClient) GetStorage(_ context.Context, key []byte) ([]byte, bool, error) {
	v, err := n.store.Peek(key)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// SubmitExtrinsic decodes and immediately seals raw into its own one-
// transaction block: the loopback client has no mempool, so submission and
// block production are the same step.
func (n *LoopbackClient) SubmitExtrinsic(_ context.Context, raw []byte) (kernelcrypto.Hash256, error) {
	tx, err := types.DecodeTransaction[aggregate.Verifier, aggregate.Checker](raw, aggregate.DecodeVerifier, aggregate.DecodeChecker)
	if err != nil {
		return kernelcrypto.Hash256{}, err
	}
	if _, err := n.ProduceBlock([]executive.Transaction{tx}); err != nil {
		return kernelcrypto.Hash256{}, err
	}
	return tx.Hash(), nil
}

func (n *LoopbackClient) GenesisHash(context.Context) (kernelcrypto.Hash256, error) {
	return n.genesis, nil
}
