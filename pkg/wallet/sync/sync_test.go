package sync

import (
	"context"
	"testing"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/executive"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/rpc"
	"github.com/utxokernel/kernel/pkg/store"
	"github.com/utxokernel/kernel/pkg/types"
	"github.com/utxokernel/kernel/pkg/verifier"
	"github.com/utxokernel/kernel/pkg/wallet/db"
)

func newTestLoop(t *testing.T) (*Loop, *rpc.LoopbackClient, kernelcrypto.PublicKey) {
	t.Helper()
	nodeStore := store.New(store.NewMemKV())
	client := rpc.NewLoopbackClient(nodeStore, nil)

	ctx := context.Background()
	genesisHash, err := client.GenesisHash(ctx)
	if err != nil {
		t.Fatalf("genesis hash: %v", err)
	}

	wdb, err := db.Open(store.NewMemKV(), genesisHash)
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}

	owner, _, err := kernelcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	keys := Keystore{owner: {}}

	return New(client, wdb, keys, nil), client, owner
}

func TestSyncAppliesMintedCoin(t *testing.T) {
	loop, client, owner := newTestLoop(t)
	ctx := context.Background()

	mintTx := executive.Transaction{
		Outputs: []types.Output[aggregate.Verifier]{{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(42)}),
			Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: owner}},
		}},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	if _, err := client.ProduceBlock([]executive.Transaction{mintTx}); err != nil {
		t.Fatalf("ProduceBlock: %v", err)
	}

	if err := loop.Sync(ctx); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	entries, err := loop.db.ListUnspent()
	if err != nil {
		t.Fatalf("ListUnspent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d unspent entries, want 1", len(entries))
	}
	if entries[0].Record.Owner != owner {
		t.Errorf("got owner %x, want %x", entries[0].Record.Owner, owner)
	}
	if entries[0].Record.Amount.CapToUint64() != 42 {
		t.Errorf("got amount %v, want 42", entries[0].Record.Amount)
	}

	height, err := loop.db.Height()
	if err != nil || height != 1 {
		t.Errorf("got height %d, %v; want 1, nil", height, err)
	}
}

func TestSyncIsIdempotentAtTip(t *testing.T) {
	loop, client, owner := newTestLoop(t)
	ctx := context.Background()

	mintTx := executive.Transaction{
		Outputs: []types.Output[aggregate.Verifier]{{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(7)}),
			Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: owner}},
		}},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	if _, err := client.ProduceBlock([]executive.Transaction{mintTx}); err != nil {
		t.Fatalf("ProduceBlock: %v", err)
	}
	if err := loop.Sync(ctx); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	if err := loop.Sync(ctx); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	entries, err := loop.db.ListUnspent()
	if err != nil {
		t.Fatalf("ListUnspent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d unspent entries after repeat sync, want 1", len(entries))
	}
}

func TestSyncSpendConsumesUnspent(t *testing.T) {
	loop, client, owner := newTestLoop(t)
	ctx := context.Background()

	mintTx := executive.Transaction{
		Outputs: []types.Output[aggregate.Verifier]{{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(10)}),
			Verifier: aggregate.Verifier{Inner: verifier.UpForGrabs{}},
		}},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	if _, err := client.ProduceBlock([]executive.Transaction{mintTx}); err != nil {
		t.Fatalf("mint: %v", err)
	}
	mintRef := types.OutputRef{TxHash: mintTx.Hash(), Index: 0}

	spendTx := executive.Transaction{
		Inputs: []types.Input{{OutputRef: mintRef}},
		Outputs: []types.Output[aggregate.Verifier]{{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(10)}),
			Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: owner}},
		}},
		Checker: aggregate.Checker{Inner: money.Spend{}},
	}
	if _, err := client.ProduceBlock([]executive.Transaction{spendTx}); err != nil {
		t.Fatalf("spend: %v", err)
	}

	if err := loop.Sync(ctx); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	entries, err := loop.db.ListUnspent()
	if err != nil {
		t.Fatalf("ListUnspent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d unspent entries, want 1 (the spend's output)", len(entries))
	}
	if entries[0].Record.Owner != owner {
		t.Errorf("got owner %x, want %x", entries[0].Record.Owner, owner)
	}
}
