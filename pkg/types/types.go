// Package types defines the kernel's core data model: OutputRef, the
// AnyPayload dynamic-typing envelope, Output/Input/Transaction/Block, and
// their canonical encodings (spec §3).
package types

import (
	"fmt"

	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
)

// OutputRef uniquely identifies an Output: the hash of the transaction that
// created it plus the output's index within that transaction's outputs.
type OutputRef struct {
	TxHash kernelcrypto.Hash256
	Index  uint32
}

// Encode appends the canonical encoding of r to e.
func (r OutputRef) Encode(e *codec.Encoder) {
	e.PutBytes(r.TxHash[:])
	e.PutUint32(r.Index)
}

// EncodeBytes returns the canonical encoding of r, used directly as a store
// key (spec §4.6, §6 "Storage key for outputs").
func (r OutputRef) EncodeBytes() []byte {
	e := codec.NewEncoder()
	r.Encode(e)
	return e.Bytes()
}

// DecodeOutputRef reads an OutputRef written by Encode.
func DecodeOutputRef(d *codec.Decoder) (OutputRef, error) {
	h, err := d.GetBytes(kernelcrypto.HashSize)
	if err != nil {
		return OutputRef{}, err
	}
	idx, err := d.GetUint32()
	if err != nil {
		return OutputRef{}, err
	}
	var r OutputRef
	copy(r.TxHash[:], h)
	r.Index = idx
	return r, nil
}

func (r OutputRef) String() string {
	return fmt.Sprintf("%x:%d", r.TxHash[:], r.Index)
}

// AnyPayload is the dynamic-typing envelope every Output's state is stored
// as (spec §4.3). TypeID is a compile-time constant per concrete payload
// type; Bytes is that type's canonical encoding.
type AnyPayload struct {
	TypeID [4]byte
	Bytes  []byte
}

// Encode appends the canonical encoding of p to e.
func (p AnyPayload) Encode(e *codec.Encoder) {
	e.PutBytes(p.TypeID[:])
	e.PutBytesWithLen(p.Bytes)
}

// DecodeAnyPayload reads an AnyPayload written by Encode.
func DecodeAnyPayload(d *codec.Decoder) (AnyPayload, error) {
	tid, err := d.GetBytes(4)
	if err != nil {
		return AnyPayload{}, err
	}
	b, err := d.GetBytesWithLen()
	if err != nil {
		return AnyPayload{}, err
	}
	var p AnyPayload
	copy(p.TypeID[:], tid)
	p.Bytes = append([]byte(nil), b...)
	return p, nil
}

// ErrBadlyTyped is returned by Extract when a payload's TypeID does not
// match the requested type, or its bytes do not round-trip as that type.
var ErrBadlyTyped = fmt.Errorf("types: badly typed payload")

// Payload is implemented by every concrete piece payload type (Coin,
// KittyData, Claim, ...).
type Payload interface {
	TypeID() [4]byte
	Encode(e *codec.Encoder)
}

// PayloadDecoder decodes the canonical bytes of one concrete payload type.
type PayloadDecoder[T Payload] func(d *codec.Decoder) (T, error)

// ToAnyPayload wraps a concrete payload as an AnyPayload.
func ToAnyPayload[T Payload](v T) AnyPayload {
	e := codec.NewEncoder()
	v.Encode(e)
	return AnyPayload{TypeID: v.TypeID(), Bytes: e.Bytes()}
}

// Extract decodes p as T, iff p.TypeID == the zero value of T's TypeID and
// the bytes round-trip. Callers pass a zero T only to read its TYPE_ID and a
// decode function for the body.
func Extract[T Payload](p AnyPayload, zero T, decode PayloadDecoder[T]) (T, error) {
	var zeroOut T
	if p.TypeID != zero.TypeID() {
		return zeroOut, ErrBadlyTyped
	}
	d := codec.NewDecoder(p.Bytes)
	v, err := decode(d)
	if err != nil {
		return zeroOut, fmt.Errorf("%w: %v", ErrBadlyTyped, err)
	}
	if d.Remaining() != 0 {
		return zeroOut, fmt.Errorf("%w: trailing bytes", ErrBadlyTyped)
	}
	return v, nil
}

// Input references an Output to be consumed, with an opaque redeemer
// interpreted by that output's verifier (spec §3 Input).
type Input struct {
	OutputRef OutputRef
	Redeemer  []byte
}

func (in Input) encode(e *codec.Encoder, stripRedeemer bool) {
	in.OutputRef.Encode(e)
	if stripRedeemer {
		e.PutBytesWithLen(nil)
	} else {
		e.PutBytesWithLen(in.Redeemer)
	}
}

// DecodeInput reads an Input written by encode.
func DecodeInput(d *codec.Decoder) (Input, error) {
	ref, err := DecodeOutputRef(d)
	if err != nil {
		return Input{}, err
	}
	r, err := d.GetBytesWithLen()
	if err != nil {
		return Input{}, err
	}
	return Input{OutputRef: ref, Redeemer: append([]byte(nil), r...)}, nil
}

// VerifierPayload is implemented by every concrete verifier variant that an
// aggregate Verifier sum type wraps (spec §4.4).
type VerifierPayload interface {
	Tag() uint8
	Encode(e *codec.Encoder)
}

// Output<V> pairs a payload with the verifier that gates its consumption
// (spec §3 Output<V>). V is the aggregate verifier sum type of the
// deployment (pkg/aggregate.Verifier in this repo).
type Output[V VerifierPayload] struct {
	Payload  AnyPayload
	Verifier V
}

func (o Output[V]) encode(e *codec.Encoder) {
	o.Payload.Encode(e)
	e.PutUint8(o.Verifier.Tag())
	o.Verifier.Encode(e)
}

// Encode appends the canonical encoding of o to e (spec §4.6 "Value type:
// canonical encoding of Output<V>" — the store's per-key persisted form).
func (o Output[V]) Encode(e *codec.Encoder) { o.encode(e) }

// DecodeOutput reads an Output written by Encode, given a decode function
// for the deployment's concrete aggregate verifier type.
func DecodeOutput[V VerifierPayload](d *codec.Decoder, decodeVerifier func(d *codec.Decoder) (V, error)) (Output[V], error) {
	p, err := DecodeAnyPayload(d)
	if err != nil {
		return Output[V]{}, err
	}
	v, err := decodeVerifier(d)
	if err != nil {
		return Output[V]{}, err
	}
	return Output[V]{Payload: p, Verifier: v}, nil
}

// CheckerPayload is implemented by every concrete constraint-checker variant
// an aggregate checker sum type wraps (spec §4.5).
type CheckerPayload interface {
	Tag() uint8
	Encode(e *codec.Encoder)
}

// Transaction<V,C> is the kernel's sole unit of state transition (spec §3).
type Transaction[V VerifierPayload, C CheckerPayload] struct {
	Inputs    []Input
	Peeks     []OutputRef
	Evictions []OutputRef
	Outputs   []Output[V]
	Checker   C
}

// encodeFields writes inputs ∥ peeks ∥ evictions ∥ outputs ∥ checker with no
// further wrapping — the body the outer Encode/EncodeStripped prefix with
// one compact length (spec §4.1's Transaction subtlety, extended to include
// evictions alongside inputs/peeks/outputs per §3's entity model).
func (tx Transaction[V, C]) encodeFields(e *codec.Encoder, stripRedeemers bool) {
	codec.PutSlice(e, tx.Inputs, func(e *codec.Encoder, in Input) { in.encode(e, stripRedeemers) })
	codec.PutSlice(e, tx.Peeks, func(e *codec.Encoder, r OutputRef) { r.Encode(e) })
	codec.PutSlice(e, tx.Evictions, func(e *codec.Encoder, r OutputRef) { r.Encode(e) })
	codec.PutSlice(e, tx.Outputs, func(e *codec.Encoder, o Output[V]) { o.encode(e) })
	e.PutUint8(tx.Checker.Tag())
	tx.Checker.Encode(e)
}

// Encode writes the full transaction, wrapped in one compact length prefix
// as an opaque byte string (spec §4.1), with witnesses included.
func (tx Transaction[V, C]) Encode(e *codec.Encoder) {
	inner := codec.NewEncoder()
	tx.encodeFields(inner, false)
	e.PutBytesWithLen(inner.Bytes())
}

// EncodeStripped writes the "simplified_tx" / content-addressing preimage:
// every input's redeemer replaced by an empty byte string (spec §4.4,
// §4.8). This is what verifiers sign over and what tx_hash is computed
// from.
func (tx Transaction[V, C]) EncodeStripped(e *codec.Encoder) {
	inner := codec.NewEncoder()
	tx.encodeFields(inner, true)
	e.PutBytesWithLen(inner.Bytes())
}

// Hash returns the content-addressing hash of tx: BLAKE2-256 of the
// stripped canonical encoding (spec §4.8).
func (tx Transaction[V, C]) Hash() kernelcrypto.Hash256 {
	e := codec.NewEncoder()
	tx.EncodeStripped(e)
	return kernelcrypto.Hash(e.Bytes())
}

// Header carries a block's summary metadata (spec §3 Block).
type Header struct {
	ParentHash     kernelcrypto.Hash256
	Number         uint64
	StateRoot      kernelcrypto.Hash256
	ExtrinsicsRoot kernelcrypto.Hash256
	Digest         []byte
}

// Encode appends the canonical encoding of h to e.
func (h Header) Encode(e *codec.Encoder) {
	e.PutBytes(h.ParentHash[:])
	e.PutUint64(h.Number)
	e.PutBytes(h.StateRoot[:])
	e.PutBytes(h.ExtrinsicsRoot[:])
	e.PutBytesWithLen(h.Digest)
}

// DecodeHeader reads a Header written by Encode.
func DecodeHeader(d *codec.Decoder) (Header, error) {
	var h Header
	ph, err := d.GetBytes(kernelcrypto.HashSize)
	if err != nil {
		return h, err
	}
	num, err := d.GetUint64()
	if err != nil {
		return h, err
	}
	sr, err := d.GetBytes(kernelcrypto.HashSize)
	if err != nil {
		return h, err
	}
	er, err := d.GetBytes(kernelcrypto.HashSize)
	if err != nil {
		return h, err
	}
	dg, err := d.GetBytesWithLen()
	if err != nil {
		return h, err
	}
	copy(h.ParentHash[:], ph)
	h.Number = num
	copy(h.StateRoot[:], sr)
	copy(h.ExtrinsicsRoot[:], er)
	h.Digest = append([]byte(nil), dg...)
	return h, nil
}

// Block pairs a Header with its ordered extrinsics (spec §3 Block). Each
// extrinsic is carried pre-encoded (raw bytes) so that a Block can be
// serialized uniformly regardless of the deployment's V/C type parameters
// (spec §4.1).
type Block struct {
	Header     Header
	Extrinsics [][]byte
}

// Encode appends the canonical encoding of b to e (spec §6 block wire
// format: header ∥ compact_len_seq(extrinsics)).
func (b Block) Encode(e *codec.Encoder) {
	b.Header.Encode(e)
	codec.PutSlice(e, b.Extrinsics, func(e *codec.Encoder, ex []byte) { e.PutBytesWithLen(ex) })
}

// DecodeTransaction reads a Transaction written by Encode, given decode
// functions for the deployment's concrete verifier and checker aggregate
// types (spec §4.1: skip the outer compact length, then read the fields).
func DecodeTransaction[V VerifierPayload, C CheckerPayload](
	raw []byte,
	decodeVerifier func(d *codec.Decoder) (V, error),
	decodeChecker func(d *codec.Decoder) (C, error),
) (Transaction[V, C], error) {
	outer := codec.NewDecoder(raw)
	body, err := outer.GetBytesWithLen()
	if err != nil {
		return Transaction[V, C]{}, err
	}
	d := codec.NewDecoder(body)

	inputs, err := codec.GetSlice(d, DecodeInput)
	if err != nil {
		return Transaction[V, C]{}, err
	}
	peeks, err := codec.GetSlice(d, DecodeOutputRef)
	if err != nil {
		return Transaction[V, C]{}, err
	}
	evictions, err := codec.GetSlice(d, DecodeOutputRef)
	if err != nil {
		return Transaction[V, C]{}, err
	}
	outputs, err := codec.GetSlice(d, func(d *codec.Decoder) (Output[V], error) {
		return DecodeOutput(d, decodeVerifier)
	})
	if err != nil {
		return Transaction[V, C]{}, err
	}
	checker, err := decodeChecker(d)
	if err != nil {
		return Transaction[V, C]{}, err
	}
	return Transaction[V, C]{
		Inputs:    inputs,
		Peeks:     peeks,
		Evictions: evictions,
		Outputs:   outputs,
		Checker:   checker,
	}, nil
}

// DecodeBlock reads a Block written by Encode.
func DecodeBlock(d *codec.Decoder) (Block, error) {
	h, err := DecodeHeader(d)
	if err != nil {
		return Block{}, err
	}
	ex, err := codec.GetSlice(d, func(d *codec.Decoder) ([]byte, error) { return d.GetBytesWithLen() })
	if err != nil {
		return Block{}, err
	}
	return Block{Header: h, Extrinsics: ex}, nil
}
