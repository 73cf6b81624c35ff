package builder

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
	walletsync "github.com/utxokernel/kernel/pkg/wallet/sync"
)

func newTestBuilder(t *testing.T) (*Builder, *rpc.LoopbackClient, *db.DB, kernelcrypto.PublicKey, MemKeyStore) {
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

	owner, priv, err := kernelcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	keys := MemKeyStore{
		owner: func(msg []byte) kernelcrypto.Signature { return kernelcrypto.Sign(priv, msg) },
	}

	mintTx := executive.Transaction{
		Outputs: []types.Output[aggregate.Verifier]{{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(100)}),
			Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: owner}},
		}},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	if _, err := client.ProduceBlock([]executive.Transaction{mintTx}); err != nil {
		t.Fatalf("mint: %v", err)
	}

	loop := walletsync.New(client, wdb, walletsync.Keystore{owner: {}}, nil)
	if err := loop.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}

	return New(client, wdb, keys), client, wdb, owner, keys
}

func TestBuildSpendPaysRecipientAndChange(t *testing.T) {
	b, client, wdb, owner, _ := newTestBuilder(t)
	ctx := context.Background()

	recipient, _, err := kernelcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}

	recipients := []types.Output[aggregate.Verifier]{{
		Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(30)}),
		Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: recipient}},
	}}

	txHash, err := b.BuildSpend(ctx, recipients, nil, owner)
	if err != nil {
		t.Fatalf("BuildSpend: %v", err)
	}

	block, ok, err := client.GetBlock(ctx, func() kernelcrypto.Hash256 {
		h, _, _ := client.GetBlockHash(ctx, 2)
		return h
	}())
	if err != nil || !ok {
		t.Fatalf("GetBlock: ok=%v err=%v", ok, err)
	}
	if len(block.Extrinsics) != 1 {
		t.Fatalf("got %d extrinsics, want 1", len(block.Extrinsics))
	}

	tx, err := types.DecodeTransaction[aggregate.Verifier, aggregate.Checker](block.Extrinsics[0], aggregate.DecodeVerifier, aggregate.DecodeChecker)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tx.Hash() != txHash {
		t.Errorf("submitted hash mismatch")
	}
	if len(tx.Outputs) != 2 {
		t.Fatalf("got %d outputs, want 2 (recipient + change)", len(tx.Outputs))
	}

	loop := walletsync.New(client, wdb, walletsync.Keystore{owner: {}}, nil)
	if err := loop.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	entries, err := wdb.ListUnspent()
	if err != nil {
		t.Fatalf("ListUnspent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d unspent entries, want 1 (change)", len(entries))
	}
	if entries[0].Record.Amount.CapToUint64() != 70 {
		t.Errorf("got change %v, want 70", entries[0].Record.Amount)
	}
}

func TestBuildSpendInsufficientFunds(t *testing.T) {
	b, _, _, _, _ := newTestBuilder(t)
	ctx := context.Background()

	recipient, _, err := kernelcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	recipients := []types.Output[aggregate.Verifier]{{
		Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(1000)}),
		Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: recipient}},
	}}

	if _, err := b.BuildSpend(ctx, recipients, nil, recipient); err != ErrInsufficientFunds {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
}
