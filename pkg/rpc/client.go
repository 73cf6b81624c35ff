// Package rpc defines the abstract node façade the wallet sync loop and
// transaction builder depend on (spec §6 "RPC façade consumed by the
// wallet"), in the same client-interface-plus-concrete-implementation split
// as pkg/accumulate/accumulate_client.go.
package rpc

import (
	"context"

	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/types"
)

// Client is the only interface the wallet should depend on for talking to
// a node, whatever the underlying transport (in-process loopback, JSON-RPC
// over HTTP, ...).
type Client interface {
	// GetBlockHash returns the canonical hash at height, or ok=false if the
	// node has not reached that height.
	GetBlockHash(ctx context.Context, height uint64) (hash kernelcrypto.Hash256, ok bool, err error)

	// GetBlock returns the block recorded under hash, or ok=false if unknown.
	GetBlock(ctx context.Context, hash kernelcrypto.Hash256) (block types.Block, ok bool, err error)

	// GetStorage looks up the raw Output bytes at a canonical-encoded
	// OutputRef key, or ok=false if the output is not (or no longer) live.
	GetStorage(ctx context.Context, key []byte) (value []byte, ok bool, err error)

	// SubmitExtrinsic submits a canonically encoded transaction, returning
	// its content-addressing hash on acceptance.
	SubmitExtrinsic(ctx context.Context, raw []byte) (kernelcrypto.Hash256, error)

	// GenesisHash returns the node's genesis block hash, checked against the
	// wallet database on open (spec §4.16).
	GenesisHash(ctx context.Context) (kernelcrypto.Hash256, error)
}
