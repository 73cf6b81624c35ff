// Package poe implements the proof-of-existence piece (spec §4.12): claim
// creation (effective-height gated), revocation, and dispute resolution
// between duplicate claims of the same hash via eviction.
package poe

import (
	"encoding/hex"
	"strconv"

	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/types"
)

// ClaimTypeID identifies the Claim payload.
var ClaimTypeID = [4]byte{'p', 'o', 'e', '1'}

// Claim asserts that some document's hash existed at or before
// EffectiveHeight (spec §4.12).
type Claim struct {
	Hash             kernelcrypto.Hash256
	EffectiveHeight  uint32
}

func (Claim) TypeID() [4]byte { return ClaimTypeID }

func (c Claim) Encode(e *codec.Encoder) {
	e.PutBytes(c.Hash[:])
	e.PutUint32(c.EffectiveHeight)
}

// DecodeClaim reads a Claim written by Encode.
func DecodeClaim(d *codec.Decoder) (Claim, error) {
	h, err := d.GetBytes(kernelcrypto.HashSize)
	if err != nil {
		return Claim{}, err
	}
	height, err := d.GetUint32()
	if err != nil {
		return Claim{}, err
	}
	var c Claim
	copy(c.Hash[:], h)
	c.EffectiveHeight = height
	return c, nil
}

// AsClaim extracts p as a Claim, or ErrBadlyTyped.
func AsClaim(p types.AnyPayload) (Claim, error) { return types.Extract(p, Claim{}, DecodeClaim) }

// Describe renders a human-readable summary of the claim; no caller in
// this repository uses it yet (supplemented from
// original_source/wardrobe/poe's get_value accessor; no consensus-relevant
// behavior).
func (c Claim) Describe() string {
	return "claim(" + hex.EncodeToString(c.Hash[:]) + ") effective at block " +
		strconv.FormatUint(uint64(c.EffectiveHeight), 10)
}
