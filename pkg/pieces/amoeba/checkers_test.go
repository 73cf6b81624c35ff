package amoeba

import (
	"errors"
	"testing"

	"github.com/utxokernel/kernel/pkg/types"
)

func detailsPayload(gen uint32) types.AnyPayload {
	return types.ToAnyPayload[Details](Details{Generation: gen})
}

func TestCreationHappyPath(t *testing.T) {
	outputs := []types.AnyPayload{detailsPayload(0)}
	if _, err := (Creation{}).Check(0, nil, nil, nil, outputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreationRejectsNonZeroGeneration(t *testing.T) {
	outputs := []types.AnyPayload{detailsPayload(1)}
	_, err := (Creation{}).Check(0, nil, nil, nil, outputs)
	if !errors.Is(err, ErrWrongGeneration) {
		t.Errorf("got %v, want ErrWrongGeneration", err)
	}
}

func TestCreationRejectsInputs(t *testing.T) {
	inputs := []types.AnyPayload{detailsPayload(0)}
	outputs := []types.AnyPayload{detailsPayload(0)}
	_, err := (Creation{}).Check(0, inputs, nil, nil, outputs)
	if !errors.Is(err, ErrWrongInputCount) {
		t.Errorf("got %v, want ErrWrongInputCount", err)
	}
}

func TestMitosisHappyPath(t *testing.T) {
	inputs := []types.AnyPayload{detailsPayload(3)}
	outputs := []types.AnyPayload{detailsPayload(4), detailsPayload(4)}
	if _, err := (Mitosis{}).Check(0, inputs, nil, nil, outputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMitosisRejectsWrongDaughterGeneration(t *testing.T) {
	inputs := []types.AnyPayload{detailsPayload(3)}
	outputs := []types.AnyPayload{detailsPayload(4), detailsPayload(5)}
	_, err := (Mitosis{}).Check(0, inputs, nil, nil, outputs)
	if !errors.Is(err, ErrWrongGeneration) {
		t.Errorf("got %v, want ErrWrongGeneration", err)
	}
}

func TestMitosisRejectsWrongOutputCount(t *testing.T) {
	inputs := []types.AnyPayload{detailsPayload(3)}
	outputs := []types.AnyPayload{detailsPayload(4)}
	_, err := (Mitosis{}).Check(0, inputs, nil, nil, outputs)
	if !errors.Is(err, ErrWrongOutputCount) {
		t.Errorf("got %v, want ErrWrongOutputCount", err)
	}
}

func TestDeathHappyPath(t *testing.T) {
	inputs := []types.AnyPayload{detailsPayload(2)}
	if _, err := (Death{}).Check(0, inputs, nil, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeathRejectsOutputs(t *testing.T) {
	inputs := []types.AnyPayload{detailsPayload(2)}
	outputs := []types.AnyPayload{detailsPayload(2)}
	_, err := (Death{}).Check(0, inputs, nil, nil, outputs)
	if !errors.Is(err, ErrWrongOutputCount) {
		t.Errorf("got %v, want ErrWrongOutputCount", err)
	}
}
