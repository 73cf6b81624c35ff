// Package aggregate wires the deployment's concrete piece verifiers and
// checkers into the tagged-union sum types spec §4.4/§4.5 call the
// aggregate V and C. There is no reflection or code generation here: each
// sum type dispatches on a one-byte tag via an explicit type switch over
// the known concrete variant types.
package aggregate

import (
	"fmt"

	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/verifier"
)

// Verifier is the deployment's aggregate verifier sum type (spec §4.4).
// It satisfies both types.VerifierPayload (Tag/Encode, for wire framing)
// and verifier.Verifier (Verify, for admissibility checks).
type Verifier struct {
	Inner verifier.Verifier
}

// ErrUnknownVerifierTag is returned by DecodeVerifier for a tag byte this
// deployment does not recognize.
var ErrUnknownVerifierTag = fmt.Errorf("aggregate: unknown verifier tag")

// Tag returns the wire tag of the wrapped verifier variant.
func (v Verifier) Tag() uint8 {
	switch v.Inner.(type) {
	case verifier.Signature:
		return verifier.TagSignature
	case verifier.UpForGrabs:
		return verifier.TagUpForGrabs
	case verifier.ThresholdMultiSig:
		return verifier.TagThresholdMultiSig
	default:
		panic(fmt.Sprintf("aggregate: unhandled verifier variant %T", v.Inner))
	}
}

// Encode appends the wrapped variant's body (the tag itself is written by
// the caller, types.Output.encode, ahead of this call).
func (v Verifier) Encode(e *codec.Encoder) {
	switch inner := v.Inner.(type) {
	case verifier.Signature:
		inner.Encode(e)
	case verifier.UpForGrabs:
		inner.Encode(e)
	case verifier.ThresholdMultiSig:
		inner.Encode(e)
	default:
		panic(fmt.Sprintf("aggregate: unhandled verifier variant %T", v.Inner))
	}
}

// Verify delegates to the wrapped variant.
func (v Verifier) Verify(simplifiedTx []byte, redeemer []byte) bool {
	return v.Inner.Verify(simplifiedTx, redeemer)
}

// DecodeVerifier reads the tag byte and dispatches to the matching
// variant's decode function, wrapping the result as a Verifier. This is
// the decodeVerifier function types.DecodeTransaction expects.
func DecodeVerifier(d *codec.Decoder) (Verifier, error) {
	tag, err := d.GetUint8()
	if err != nil {
		return Verifier{}, err
	}
	switch tag {
	case verifier.TagSignature:
		v, err := verifier.DecodeSignature(d)
		return Verifier{Inner: v}, err
	case verifier.TagUpForGrabs:
		v, err := verifier.DecodeUpForGrabs(d)
		return Verifier{Inner: v}, err
	case verifier.TagThresholdMultiSig:
		v, err := verifier.DecodeThresholdMultiSig(d)
		return Verifier{Inner: v}, err
	default:
		return Verifier{}, fmt.Errorf("%w: %d", ErrUnknownVerifierTag, tag)
	}
}
