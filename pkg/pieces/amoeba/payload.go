// Package amoeba implements the protozoan life-cycle piece (spec §4.13):
// creation, mitosis, and death of a counted, generation-tagged cell.
package amoeba

import (
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/types"
)

// DetailsTypeID identifies the AmoebaDetails payload.
var DetailsTypeID = [4]byte{'a', 'm', 'b', '1'}

// Details is the amoeba payload (spec §4.13).
type Details struct {
	Generation uint32
	FourBytes  [4]byte
}

func (Details) TypeID() [4]byte { return DetailsTypeID }

func (d Details) Encode(e *codec.Encoder) {
	e.PutUint32(d.Generation)
	e.PutBytes(d.FourBytes[:])
}

// DecodeDetails reads a Details written by Encode.
func DecodeDetails(d *codec.Decoder) (Details, error) {
	gen, err := d.GetUint32()
	if err != nil {
		return Details{}, err
	}
	fb, err := d.GetBytes(4)
	if err != nil {
		return Details{}, err
	}
	var out Details
	out.Generation = gen
	copy(out.FourBytes[:], fb)
	return out, nil
}

// AsDetails extracts p as Details, or ErrBadlyTyped.
func AsDetails(p types.AnyPayload) (Details, error) { return types.Extract(p, Details{}, DecodeDetails) }
