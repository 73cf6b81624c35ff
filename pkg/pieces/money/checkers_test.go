package money

import (
	"errors"
	"testing"

	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/types"
)

func coinPayload(v uint64) types.AnyPayload {
	return types.ToAnyPayload[Coin](Coin{Value: amount.FromUint64(v)})
}

func TestMintHappyPath(t *testing.T) {
	outputs := []types.AnyPayload{coinPayload(10), coinPayload(5)}
	priority, err := Mint{}.Check(0, nil, nil, nil, outputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priority != 0 {
		t.Errorf("mint priority = %d, want 0", priority)
	}
}

func TestMintRejectsInputs(t *testing.T) {
	inputs := []types.AnyPayload{coinPayload(1)}
	_, err := Mint{}.Check(0, inputs, nil, nil, []types.AnyPayload{coinPayload(1)})
	if !errors.Is(err, ErrMintingWithInputs) {
		t.Errorf("got %v, want ErrMintingWithInputs", err)
	}
}

func TestSpendHappyPath(t *testing.T) {
	// S1 — inputs {10,5}, outputs {7,7}; expected priority 1.
	inputs := []types.AnyPayload{coinPayload(10), coinPayload(5)}
	outputs := []types.AnyPayload{coinPayload(7), coinPayload(7)}
	priority, err := Spend{}.Check(0, inputs, nil, nil, outputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priority != 1 {
		t.Errorf("spend priority = %d, want 1", priority)
	}
}

func TestSpendOverdraft(t *testing.T) {
	// S2 — inputs {10,1}, outputs {5,7}; expected OutputsExceedInputs.
	inputs := []types.AnyPayload{coinPayload(10), coinPayload(1)}
	outputs := []types.AnyPayload{coinPayload(5), coinPayload(7)}
	_, err := Spend{}.Check(0, inputs, nil, nil, outputs)
	if !errors.Is(err, ErrOutputsExceedInputs) {
		t.Errorf("got %v, want ErrOutputsExceedInputs", err)
	}
}

func TestSpendZeroValueOutputRejected(t *testing.T) {
	inputs := []types.AnyPayload{coinPayload(5)}
	outputs := []types.AnyPayload{coinPayload(0)}
	_, err := Spend{}.Check(0, inputs, nil, nil, outputs)
	if !errors.Is(err, ErrZeroValueCoin) {
		t.Errorf("got %v, want ErrZeroValueCoin", err)
	}
}

func TestSpendBadlyTypedInput(t *testing.T) {
	bad := types.AnyPayload{TypeID: [4]byte{'x', 'x', 'x', 'x'}, Bytes: nil}
	_, err := Spend{}.Check(0, []types.AnyPayload{bad}, nil, nil, nil)
	if !errors.Is(err, ErrBadlyTyped) {
		t.Errorf("got %v, want ErrBadlyTyped", err)
	}
}
