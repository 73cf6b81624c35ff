package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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
	"github.com/utxokernel/kernel/pkg/wallet/builder"
	"github.com/utxokernel/kernel/pkg/wallet/db"
	walletsync "github.com/utxokernel/kernel/pkg/wallet/sync"
)

func TestHandleBalance(t *testing.T) {
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

	mintTx := executive.Transaction{
		Outputs: []types.Output[aggregate.Verifier]{{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(50)}),
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

	keys := builder.MemKeyStore{owner: func(msg []byte) kernelcrypto.Signature { return kernelcrypto.Sign(priv, msg) }}
	b := builder.New(client, wdb, keys)
	h := NewWalletHandlers(wdb, b, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/wallet/balance", nil)
	rec := httptest.NewRecorder()
	h.HandleBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	var resp balanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 50 {
		t.Errorf("got total %d, want 50", resp.Total)
	}
	if len(resp.Coins) != 1 {
		t.Fatalf("got %d coins, want 1", len(resp.Coins))
	}
}

func TestHandleSpendRejectsEmptyRecipients(t *testing.T) {
	h := NewWalletHandlers(nil, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/wallet/spend", strings.NewReader(`{"recipients":[]}`))
	rec := httptest.NewRecorder()
	h.HandleSpend(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}
