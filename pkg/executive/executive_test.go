package executive

import (
	"errors"
	"testing"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/checker"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/store"
	"github.com/utxokernel/kernel/pkg/types"
	"github.com/utxokernel/kernel/pkg/verifier"
)

func coinOutput(value uint64) types.Output[aggregate.Verifier] {
	return types.Output[aggregate.Verifier]{
		Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: amount.FromUint64(value)}),
		Verifier: aggregate.Verifier{Inner: verifier.UpForGrabs{}},
	}
}

func TestApplyMintThenSpend(t *testing.T) {
	st := store.New(store.NewMemKV())
	ex := New(st, nil)

	mintTx := Transaction{
		Outputs: []types.Output[aggregate.Verifier]{coinOutput(100)},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	if _, err := ex.Apply(1, mintTx); err != nil {
		t.Fatalf("mint: %v", err)
	}
	mintRef := types.OutputRef{TxHash: mintTx.Hash(), Index: 0}

	spendTx := Transaction{
		Inputs:  []types.Input{{OutputRef: mintRef}},
		Outputs: []types.Output[aggregate.Verifier]{coinOutput(100)},
		Checker: aggregate.Checker{Inner: money.Spend{}},
	}
	if _, err := ex.Apply(1, spendTx); err != nil {
		t.Fatalf("spend: %v", err)
	}

	if has, _ := st.Has(mintRef.EncodeBytes()); has {
		t.Error("spent mint output should no longer be present")
	}
}

func TestValidateRejectsMissingInput(t *testing.T) {
	st := store.New(store.NewMemKV())
	ex := New(st, nil)

	spendTx := Transaction{
		Inputs:  []types.Input{{OutputRef: types.OutputRef{Index: 0}}},
		Outputs: []types.Output[aggregate.Verifier]{coinOutput(1)},
		Checker: aggregate.Checker{Inner: money.Spend{}},
	}
	_, _, err := ex.Validate(1, spendTx)
	if !errors.Is(err, checker.ErrMissingInput) {
		t.Errorf("got %v, want ErrMissingInput", err)
	}
}

func TestValidateRejectsDuplicateInputRefs(t *testing.T) {
	st := store.New(store.NewMemKV())
	ex := New(st, nil)

	ref := types.OutputRef{Index: 0}
	spendTx := Transaction{
		Inputs:  []types.Input{{OutputRef: ref}, {OutputRef: ref}},
		Outputs: []types.Output[aggregate.Verifier]{coinOutput(1)},
		Checker: aggregate.Checker{Inner: money.Spend{}},
	}
	_, _, err := ex.Validate(1, spendTx)
	if !errors.Is(err, ErrDuplicateInputRef) {
		t.Errorf("got %v, want ErrDuplicateInputRef", err)
	}
}

func TestOpenApplyCloseBlock(t *testing.T) {
	st := store.New(store.NewMemKV())
	ex := New(st, nil)
	ex.OpenBlock(types.Header{Number: 0})

	mintTx := Transaction{
		Outputs: []types.Output[aggregate.Verifier]{coinOutput(5)},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	if err := ex.ApplyExtrinsic(mintTx); err != nil {
		t.Fatalf("apply: %v", err)
	}
	header, err := ex.CloseBlock()
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if header.StateRoot.IsZero() {
		t.Error("expected non-zero state root")
	}
	if header.ExtrinsicsRoot.IsZero() {
		t.Error("expected non-zero extrinsics root")
	}
}

func TestExecuteBlockMatchesRecomputedRoots(t *testing.T) {
	st := store.New(store.NewMemKV())
	ex := New(st, nil)
	ex.OpenBlock(types.Header{Number: 0})

	mintTx := Transaction{
		Outputs: []types.Output[aggregate.Verifier]{coinOutput(5)},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	if err := ex.ApplyExtrinsic(mintTx); err != nil {
		t.Fatalf("apply: %v", err)
	}
	header, err := ex.CloseBlock()
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	e := codec.NewEncoder()
	mintTx.Encode(e)
	block := types.Block{Header: header, Extrinsics: [][]byte{e.Bytes()}}

	ex2 := New(store.New(store.NewMemKV()), nil)
	if err := ex2.ExecuteBlock(block); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestApplyExtrinsicRejectsInherentOutOfOrder(t *testing.T) {
	st := store.New(store.NewMemKV())
	ex := New(st, nil)
	ex.OpenBlock(types.Header{Number: 5})

	mintTx := Transaction{
		Outputs: []types.Output[aggregate.Verifier]{coinOutput(5)},
		Checker: aggregate.Checker{Inner: money.Mint{}},
	}
	err := ex.ApplyExtrinsic(mintTx)
	if !errors.Is(err, ErrInherentOutOfOrder) {
		t.Errorf("got %v, want ErrInherentOutOfOrder", err)
	}
}
