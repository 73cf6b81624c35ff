package rpc

import (
	"context"
	"testing"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/executive"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/store"
	"github.com/utxokernel/kernel/pkg/types"
	"github.com/utxokernel/kernel/pkg/verifier"
)

func TestLoopbackProduceBlockAndFetch(t *testing.T) {
	st := store.New(store.NewMemKV())
	client := NewLoopbackClient(st, nil)
	ctx := context.Background()

	genesisHash, err := client.GenesisHash(ctx)
	if err != nil {
		t.Fatalf("genesis hash: %v", err)
	}
	h0, ok, err := client.GetBlockHash(ctx, 0)
	if err != nil || !ok || h0 != genesisHash {
		t.Fatalf("GetBlockHash(0) = %v, %v, %v; want %v, true, nil", h0, ok, err, genesisHash)
	}

	mintTx := executive.Transaction{
		Outputs: []types.Output[aggregate.Verifier]{{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(10)}),
			Verifier: aggregate.Verifier{Inner: verifier.UpForGrabs{}},
		}},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	block, err := client.ProduceBlock([]executive.Transaction{mintTx})
	if err != nil {
		t.Fatalf("ProduceBlock: %v", err)
	}
	if block.Header.Number != 1 {
		t.Fatalf("got block number %d, want 1", block.Header.Number)
	}

	h1, ok, err := client.GetBlockHash(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("GetBlockHash(1): %v, %v, %v", h1, ok, err)
	}
	got, ok, err := client.GetBlock(ctx, h1)
	if err != nil || !ok {
		t.Fatalf("GetBlock(h1): %v, %v, %v", got, ok, err)
	}
	if len(got.Extrinsics) != 1 {
		t.Fatalf("got %d extrinsics, want 1", len(got.Extrinsics))
	}

	ref := types.OutputRef{TxHash: mintTx.Hash(), Index: 0}
	raw, ok, err := client.GetStorage(ctx, ref.EncodeBytes())
	if err != nil || !ok || len(raw) == 0 {
		t.Fatalf("GetStorage(mint output) = %v, %v, %v", raw, ok, err)
	}
}
