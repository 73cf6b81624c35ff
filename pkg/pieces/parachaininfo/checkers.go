package parachaininfo

import (
	"sync/atomic"

	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/types"
)

// LatestRelayParentNumber is the side channel the runtime exposes for
// later APIs (spec §4.15 "publish ... to a side channel"). SetParachainInfo
// updates it as a side effect of a successful Check. No package in this
// repository reads it besides this package's tests; it plays no role in
// consensus.
var LatestRelayParentNumber atomic.Uint32

// SetParachainInfo anchors the latest observed relay-chain block, inherent
// (spec §4.15).
type SetParachainInfo struct{}

func (SetParachainInfo) Encode(*codec.Encoder) {}
func DecodeSetParachainInfo(*codec.Decoder) (SetParachainInfo, error) {
	return SetParachainInfo{}, nil
}
func (SetParachainInfo) IsInherent() bool { return true }

func (SetParachainInfo) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(evictions) != 0 || len(peeks) != 0 {
		return 0, ErrWrongInputCount
	}
	if len(outputs) != 1 {
		return 0, ErrWrongOutputCount
	}
	current, err := As(outputs[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	if len(inputs) == 0 {
		if current.RelayParentNumber != 0 {
			return 0, ErrGenesisMustBeZero
		}
		LatestRelayParentNumber.Store(current.RelayParentNumber)
		return 0, nil
	}
	if len(inputs) != 1 {
		return 0, ErrWrongInputCount
	}
	previous, err := As(inputs[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	if current.RelayParentNumber <= previous.RelayParentNumber {
		return 0, ErrNotMonotonic
	}
	LatestRelayParentNumber.Store(current.RelayParentNumber)
	return 0, nil
}

// CreateInherent builds the SetParachainInfo transaction body for the block
// currently being authored (spec §4.9, §4.15). authoringData carries the
// freshly observed ParachainInfo; previous is nil at genesis.
func (SetParachainInfo) CreateInherent(authoringData any, previous *types.OutputRef) ([]types.Input, []types.OutputRef, []types.AnyPayload, error) {
	current, ok := authoringData.(ParachainInfo)
	if !ok {
		return nil, nil, nil, ErrBadlyTyped
	}
	out := []types.AnyPayload{types.ToAnyPayload[ParachainInfo](current)}
	if previous == nil {
		return nil, nil, out, nil
	}
	in := types.Input{OutputRef: *previous}
	return []types.Input{in}, nil, out, nil
}
