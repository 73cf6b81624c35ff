package poe

import (
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/types"
)

// CreateClaim registers one or more new claims (spec §4.12).
type CreateClaim struct{}

func (CreateClaim) Encode(*codec.Encoder)                   {}
func DecodeCreateClaim(*codec.Decoder) (CreateClaim, error) { return CreateClaim{}, nil }
func (CreateClaim) IsInherent() bool                        { return false }

func (CreateClaim) Check(height uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 0 || len(evictions) != 0 {
		return 0, ErrWrongInputCount
	}
	if len(outputs) == 0 {
		return 0, ErrWrongOutputCount
	}
	for _, o := range outputs {
		c, err := AsClaim(o)
		if err != nil {
			return 0, ErrBadlyTyped
		}
		if uint64(c.EffectiveHeight) < height {
			return 0, ErrClaimTooEarly
		}
	}
	return 0, nil
}

// Revoke removes claims permanently (spec §4.12).
type Revoke struct{}

func (Revoke) Encode(*codec.Encoder)             {}
func DecodeRevoke(*codec.Decoder) (Revoke, error) { return Revoke{}, nil }
func (Revoke) IsInherent() bool                   { return false }

func (Revoke) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) == 0 {
		return 0, ErrWrongInputCount
	}
	if len(evictions) != 0 || len(outputs) != 0 {
		return 0, ErrWrongOutputCount
	}
	for _, in := range inputs {
		if _, err := AsClaim(in); err != nil {
			return 0, ErrBadlyTyped
		}
	}
	return 0, nil
}

// Dispute evicts a losing duplicate claim in favor of an earlier winner
// (spec §4.12).
type Dispute struct{}

func (Dispute) Encode(*codec.Encoder)              {}
func DecodeDispute(*codec.Decoder) (Dispute, error) { return Dispute{}, nil }
func (Dispute) IsInherent() bool                    { return false }

func (Dispute) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 0 || len(outputs) != 0 {
		return 0, ErrWrongInputCount
	}
	if len(peeks) != 1 {
		return 0, ErrWrongPeekCount
	}
	if len(evictions) == 0 {
		return 0, ErrWrongInputCount
	}
	winner, err := AsClaim(peeks[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	for _, ev := range evictions {
		loser, err := AsClaim(ev)
		if err != nil {
			return 0, ErrBadlyTyped
		}
		if loser.Hash != winner.Hash {
			return 0, ErrDisputeHashMismatch
		}
		if loser.EffectiveHeight <= winner.EffectiveHeight {
			return 0, ErrDisputeNotOlder
		}
	}
	return 0, nil
}
