// Package verifier implements the per-input admissibility algebra (spec
// §4.4): the three verifier variants and the aggregate Verifier sum type
// wired together in pkg/aggregate.
package verifier

import (
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
)

// Verifier is implemented by every concrete verifier variant. Verify
// receives the stripped ("simplified") transaction encoding the redeemer is
// a claim about, per spec §4.4.
type Verifier interface {
	Verify(simplifiedTx []byte, redeemer []byte) bool
}

// Tag bytes for the three canonical verifier variants. Values are stable
// across the deployment and must not be reused for new variants without a
// protocol upgrade.
const (
	TagSignature         uint8 = 0
	TagUpForGrabs        uint8 = 1
	TagThresholdMultiSig uint8 = 2
)

// Signature admits only a redeemer that is a valid signature by OwnerPubkey
// over the stripped transaction.
type Signature struct {
	OwnerPubkey kernelcrypto.PublicKey
}

func (Signature) Tag() uint8 { return TagSignature }

func (s Signature) Encode(e *codec.Encoder) { e.PutBytes(s.OwnerPubkey[:]) }

// DecodeSignature reads the body of a Signature verifier (tag already
// consumed by the caller).
func DecodeSignature(d *codec.Decoder) (Signature, error) {
	b, err := d.GetBytes(kernelcrypto.PublicKeySize)
	if err != nil {
		return Signature{}, err
	}
	var s Signature
	copy(s.OwnerPubkey[:], b)
	return s, nil
}

// Verify checks redeemer as a detached signature over simplifiedTx.
func (s Signature) Verify(simplifiedTx []byte, redeemer []byte) bool {
	if len(redeemer) != kernelcrypto.SignatureSize {
		return false
	}
	var sig kernelcrypto.Signature
	copy(sig[:], redeemer)
	return kernelcrypto.Verify(s.OwnerPubkey, simplifiedTx, sig)
}

// UpForGrabs admits any redeemer; any caller may consume the output.
type UpForGrabs struct{}

func (UpForGrabs) Tag() uint8 { return TagUpForGrabs }

func (UpForGrabs) Encode(*codec.Encoder) {}

// DecodeUpForGrabs reads the (empty) body of an UpForGrabs verifier.
func DecodeUpForGrabs(*codec.Decoder) (UpForGrabs, error) { return UpForGrabs{}, nil }

// Verify always succeeds.
func (UpForGrabs) Verify([]byte, []byte) bool { return true }

// ThresholdMultiSig admits a redeemer carrying at least Threshold distinct,
// valid signatures from Signatories.
type ThresholdMultiSig struct {
	Threshold  uint8
	Signatories []kernelcrypto.PublicKey
}

func (ThresholdMultiSig) Tag() uint8 { return TagThresholdMultiSig }

func (t ThresholdMultiSig) Encode(e *codec.Encoder) {
	e.PutUint8(t.Threshold)
	codec.PutSlice(e, t.Signatories, func(e *codec.Encoder, pk kernelcrypto.PublicKey) {
		e.PutBytes(pk[:])
	})
}

// DecodeThresholdMultiSig reads the body of a ThresholdMultiSig verifier.
func DecodeThresholdMultiSig(d *codec.Decoder) (ThresholdMultiSig, error) {
	threshold, err := d.GetUint8()
	if err != nil {
		return ThresholdMultiSig{}, err
	}
	sigs, err := codec.GetSlice(d, func(d *codec.Decoder) (kernelcrypto.PublicKey, error) {
		b, err := d.GetBytes(kernelcrypto.PublicKeySize)
		if err != nil {
			return kernelcrypto.PublicKey{}, err
		}
		var pk kernelcrypto.PublicKey
		copy(pk[:], b)
		return pk, nil
	})
	if err != nil {
		return ThresholdMultiSig{}, err
	}
	return ThresholdMultiSig{Threshold: threshold, Signatories: sigs}, nil
}

// redemption is the per-index (index, signature) pair the redeemer encodes.
type redemption struct {
	Index uint32
	Sig   kernelcrypto.Signature
}

// Verify checks redeemer as a sequence of (index, signature) pairs: at
// least Threshold distinct, in-range indices must carry a valid signature
// by the corresponding signatory (spec §4.4).
func (t ThresholdMultiSig) Verify(simplifiedTx []byte, redeemer []byte) bool {
	d := codec.NewDecoder(redeemer)
	redemptions, err := codec.GetSlice(d, func(d *codec.Decoder) (redemption, error) {
		idx, err := d.GetUint32()
		if err != nil {
			return redemption{}, err
		}
		sb, err := d.GetBytes(kernelcrypto.SignatureSize)
		if err != nil {
			return redemption{}, err
		}
		var sig kernelcrypto.Signature
		copy(sig[:], sb)
		return redemption{Index: idx, Sig: sig}, nil
	})
	if err != nil || d.Remaining() != 0 {
		return false
	}

	seen := make(map[uint32]bool, len(redemptions))
	valid := 0
	for _, r := range redemptions {
		if seen[r.Index] {
			return false // duplicate index rejected outright
		}
		seen[r.Index] = true
		if int(r.Index) >= len(t.Signatories) {
			continue
		}
		if kernelcrypto.Verify(t.Signatories[r.Index], simplifiedTx, r.Sig) {
			valid++
		}
	}
	return valid >= int(t.Threshold)
}
