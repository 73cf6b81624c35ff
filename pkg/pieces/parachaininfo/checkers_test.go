package parachaininfo

import (
	"errors"
	"testing"

	"github.com/utxokernel/kernel/pkg/types"
)

func infoPayload(n uint32) types.AnyPayload {
	return types.ToAnyPayload[ParachainInfo](ParachainInfo{RelayParentNumber: n})
}

func TestSetParachainInfoGenesis(t *testing.T) {
	outputs := []types.AnyPayload{infoPayload(0)}
	if _, err := (SetParachainInfo{}).Check(0, nil, nil, nil, outputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if LatestRelayParentNumber.Load() != 0 {
		t.Errorf("got %d, want 0", LatestRelayParentNumber.Load())
	}
}

func TestSetParachainInfoGenesisRejectsNonZero(t *testing.T) {
	outputs := []types.AnyPayload{infoPayload(5)}
	_, err := (SetParachainInfo{}).Check(0, nil, nil, nil, outputs)
	if !errors.Is(err, ErrGenesisMustBeZero) {
		t.Errorf("got %v, want ErrGenesisMustBeZero", err)
	}
}

func TestSetParachainInfoAdvances(t *testing.T) {
	inputs := []types.AnyPayload{infoPayload(10)}
	outputs := []types.AnyPayload{infoPayload(11)}
	if _, err := (SetParachainInfo{}).Check(0, inputs, nil, nil, outputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if LatestRelayParentNumber.Load() != 11 {
		t.Errorf("got %d, want 11", LatestRelayParentNumber.Load())
	}
}

func TestSetParachainInfoRejectsNonMonotonic(t *testing.T) {
	inputs := []types.AnyPayload{infoPayload(10)}
	outputs := []types.AnyPayload{infoPayload(10)}
	_, err := (SetParachainInfo{}).Check(0, inputs, nil, nil, outputs)
	if !errors.Is(err, ErrNotMonotonic) {
		t.Errorf("got %v, want ErrNotMonotonic", err)
	}
}

func TestSetParachainInfoCreateInherentGenesis(t *testing.T) {
	inputs, peeks, outputs, err := (SetParachainInfo{}).CreateInherent(ParachainInfo{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inputs) != 0 || len(peeks) != 0 || len(outputs) != 1 {
		t.Fatalf("unexpected shape: %d inputs, %d peeks, %d outputs", len(inputs), len(peeks), len(outputs))
	}
}
