package amoeba

import (
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/types"
)

// Creation spawns a generation-0 amoeba out of nothing (spec §4.13).
type Creation struct{}

func (Creation) Encode(*codec.Encoder)               {}
func DecodeCreation(*codec.Decoder) (Creation, error) { return Creation{}, nil }
func (Creation) IsInherent() bool                     { return false }

func (Creation) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 0 || len(evictions) != 0 {
		return 0, ErrWrongInputCount
	}
	if len(outputs) != 1 {
		return 0, ErrWrongOutputCount
	}
	d, err := AsDetails(outputs[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	if d.Generation != 0 {
		return 0, ErrWrongGeneration
	}
	return 0, nil
}

// Mitosis splits one amoeba into two daughters of the next generation
// (spec §4.13).
type Mitosis struct{}

func (Mitosis) Encode(*codec.Encoder)              {}
func DecodeMitosis(*codec.Decoder) (Mitosis, error) { return Mitosis{}, nil }
func (Mitosis) IsInherent() bool                    { return false }

func (Mitosis) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 1 {
		return 0, ErrWrongInputCount
	}
	if len(outputs) != 2 {
		return 0, ErrWrongOutputCount
	}
	mother, err := AsDetails(inputs[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	for _, o := range outputs {
		daughter, err := AsDetails(o)
		if err != nil {
			return 0, ErrBadlyTyped
		}
		if daughter.Generation != mother.Generation+1 {
			return 0, ErrWrongGeneration
		}
	}
	return 0, nil
}

// Death removes one amoeba (spec §4.13).
type Death struct{}

func (Death) Encode(*codec.Encoder)            {}
func DecodeDeath(*codec.Decoder) (Death, error) { return Death{}, nil }
func (Death) IsInherent() bool                  { return false }

func (Death) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 1 {
		return 0, ErrWrongInputCount
	}
	if len(outputs) != 0 {
		return 0, ErrWrongOutputCount
	}
	if _, err := AsDetails(inputs[0]); err != nil {
		return 0, ErrBadlyTyped
	}
	return 0, nil
}
