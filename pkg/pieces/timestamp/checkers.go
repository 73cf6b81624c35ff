package timestamp

import (
	"github.com/utxokernel/kernel/pkg/checker"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/types"
)

// AuthoringData is the authoringData SetTimestamp.CreateInherent expects
// (spec §4.9 step 2): the wall clock the author is using and, for every
// block past the bootstrap case, the decoded previous Timestamp.
type AuthoringData struct {
	NowMS    uint64
	Previous *Timestamp
}

// ImportingData is the importingData SetTimestamp.CheckInherent expects
// (spec §4.14 "Off-chain check at import").
type ImportingData struct {
	LocalClockMS uint64
}

// SetTimestamp records the current block's timestamp, inherent (spec
// §4.14).
type SetTimestamp struct{}

func (SetTimestamp) Encode(*codec.Encoder)                   {}
func DecodeSetTimestamp(*codec.Decoder) (SetTimestamp, error) { return SetTimestamp{}, nil }
func (SetTimestamp) IsInherent() bool                         { return true }

func (SetTimestamp) Check(height uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 0 || len(evictions) != 0 {
		return 0, ErrWrongInputCount
	}
	if len(outputs) != 1 {
		return 0, ErrWrongOutputCount
	}
	newTS, err := As(outputs[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	if uint64(newTS.Block) != height {
		return 0, ErrWrongBlockNumber
	}
	if height == 1 {
		if len(peeks) != 0 {
			return 0, ErrWrongPeekCount
		}
		return 0, nil
	}
	if len(peeks) != 1 {
		return 0, ErrWrongPeekCount
	}
	old, err := As(peeks[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	if newTS.Block != old.Block+1 {
		return 0, ErrWrongBlockNumber
	}
	if newTS.TimeMS < old.TimeMS+DefaultMinimumIntervalMS {
		return 0, ErrTooSoon
	}
	return 0, nil
}

// CreateInherent builds the SetTimestamp transaction body for the block
// currently being authored (spec §4.9, §4.14). It takes no height: the new
// timestamp's Block is 1 when authoringData has no Previous, otherwise
// Previous.Block+1, and its time is the clock raised to the minimum interval
// after Previous.
func (SetTimestamp) CreateInherent(authoringData any, previous *types.OutputRef) ([]types.Input, []types.OutputRef, []types.AnyPayload, error) {
	ad, ok := authoringData.(AuthoringData)
	if !ok {
		return nil, nil, nil, ErrBadlyTyped
	}
	if ad.Previous == nil {
		// Bootstrap: first non-genesis block has no prior timestamp to peek.
		out := Timestamp{TimeMS: ad.NowMS, Block: 1}
		return nil, nil, []types.AnyPayload{types.ToAnyPayload[Timestamp](out)}, nil
	}
	if previous == nil {
		return nil, nil, nil, ErrWrongPeekCount
	}
	newMS := ad.NowMS
	if floor := ad.Previous.TimeMS + DefaultMinimumIntervalMS; newMS < floor {
		newMS = floor
	}
	out := Timestamp{TimeMS: newMS, Block: ad.Previous.Block + 1}
	return nil, []types.OutputRef{*previous}, []types.AnyPayload{types.ToAnyPayload[Timestamp](out)}, nil
}

// CheckInherent re-validates an imported block's SetTimestamp output
// against the importer's local clock (spec §4.14 "Off-chain check at
// import"). A timestamp too far in the future is fatal: it mirrors an
// on-chain invariant violation rather than a soft warning.
func (SetTimestamp) CheckInherent(importingData any, inherentOutputs []types.AnyPayload, out *checker.CheckInherentsResult) {
	id, ok := importingData.(ImportingData)
	if !ok {
		out.PutFatalError("timestamp", "BadImportingData", ErrBadlyTyped)
		return
	}
	for _, o := range inherentOutputs {
		ts, err := As(o)
		if err != nil {
			out.PutFatalError("timestamp", "BadlyTyped", err)
			continue
		}
		if ts.TimeMS > id.LocalClockMS+DefaultMaxDriftMS {
			out.PutFatalError("timestamp", "TooFarInFuture", ErrTooFarInFuture)
		}
	}
}

// CleanUpTimestamp consumes, as inputs, timestamps old enough that no
// dispute can still reference them (spec §4.14). Its evictions are not
// inspected.
type CleanUpTimestamp struct{}

func (CleanUpTimestamp) Encode(*codec.Encoder) {}
func DecodeCleanUpTimestamp(*codec.Decoder) (CleanUpTimestamp, error) {
	return CleanUpTimestamp{}, nil
}
func (CleanUpTimestamp) IsInherent() bool { return false }

func (CleanUpTimestamp) Check(height uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(peeks) != 1 {
		return 0, ErrWrongPeekCount
	}
	if len(outputs) != 0 {
		return 0, ErrWrongOutputCount
	}
	if len(inputs) == 0 {
		return 0, ErrWrongInputCount
	}
	ref, err := As(peeks[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	for _, in := range inputs {
		old, err := As(in)
		if err != nil {
			return 0, ErrBadlyTyped
		}
		if old.TimeMS+DefaultMinAgeForCleanupMS >= ref.TimeMS {
			return 0, ErrTooYoungToClean
		}
		if uint64(old.Block)+DefaultMinAgeForCleanupBlocks >= height {
			return 0, ErrTooYoungToClean
		}
	}
	return 0, nil
}
