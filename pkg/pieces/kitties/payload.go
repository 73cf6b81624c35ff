// Package kitties implements the cryptokitty breeding/trading piece (spec
// §4.11): KittyData life cycle (Create, Breed, UpdateName) and
// TradableKittyData listing/trading (List, Delist, UpdatePrice, Buy).
package kitties

import (
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/types"
)

// ParentKind discriminates which parent role a kitty occupies.
type ParentKind uint8

const (
	ParentMom ParentKind = 0
	ParentDad ParentKind = 1
)

// MomStatus is the breeding-readiness state of a Mom kitty.
type MomStatus uint8

const (
	MomRearinToGo      MomStatus = 0
	MomHadBirthRecently MomStatus = 1
)

// DadStatus is the breeding-readiness state of a Dad kitty.
type DadStatus uint8

const (
	DadRearinToGo DadStatus = 0
	DadTired      DadStatus = 1
)

// Parent tags a kitty as a Mom or a Dad, with that role's status (spec
// §4.11 `Parent = Mom(MomStatus) | Dad(DadStatus)`).
type Parent struct {
	Kind ParentKind
	Mom  MomStatus
	Dad  DadStatus
}

func (p Parent) Encode(e *codec.Encoder) {
	e.PutUint8(uint8(p.Kind))
	switch p.Kind {
	case ParentMom:
		e.PutUint8(uint8(p.Mom))
	case ParentDad:
		e.PutUint8(uint8(p.Dad))
	}
}

// DecodeParent reads a Parent written by Encode.
func DecodeParent(d *codec.Decoder) (Parent, error) {
	kind, err := d.GetUint8()
	if err != nil {
		return Parent{}, err
	}
	status, err := d.GetUint8()
	if err != nil {
		return Parent{}, err
	}
	p := Parent{Kind: ParentKind(kind)}
	switch p.Kind {
	case ParentMom:
		p.Mom = MomStatus(status)
	case ParentDad:
		p.Dad = DadStatus(status)
	}
	return p, nil
}

// KittyTypeID identifies the KittyData payload.
var KittyTypeID = [4]byte{'k', 'i', 't', 'y'}

// KittyData is the non-tradable cryptokitty payload (spec §4.11).
type KittyData struct {
	Parent        Parent
	FreeBreedings uint64
	DNA           kernelcrypto.Hash256
	Name          [4]byte
	NumBreedings  amount.Amount
}

func (KittyData) TypeID() [4]byte { return KittyTypeID }

func (k KittyData) Encode(e *codec.Encoder) {
	k.Parent.Encode(e)
	e.PutUint64(k.FreeBreedings)
	e.PutBytes(k.DNA[:])
	e.PutBytes(k.Name[:])
	k.NumBreedings.Encode(e)
}

// DecodeKittyData reads a KittyData written by Encode.
func DecodeKittyData(d *codec.Decoder) (KittyData, error) {
	p, err := DecodeParent(d)
	if err != nil {
		return KittyData{}, err
	}
	free, err := d.GetUint64()
	if err != nil {
		return KittyData{}, err
	}
	dna, err := d.GetBytes(kernelcrypto.HashSize)
	if err != nil {
		return KittyData{}, err
	}
	name, err := d.GetBytes(4)
	if err != nil {
		return KittyData{}, err
	}
	nb, err := amount.Decode(d)
	if err != nil {
		return KittyData{}, err
	}
	var k KittyData
	k.Parent = p
	k.FreeBreedings = free
	copy(k.DNA[:], dna)
	copy(k.Name[:], name)
	k.NumBreedings = nb
	return k, nil
}

// AsKittyData extracts p as a KittyData, or ErrBadlyTyped.
func AsKittyData(p types.AnyPayload) (KittyData, error) {
	return types.Extract(p, KittyData{}, DecodeKittyData)
}

// TradableKittyTypeID identifies the TradableKittyData payload.
var TradableKittyTypeID = [4]byte{'t', 'k', 't', 'y'}

// TradableKittyData wraps a KittyData with a listing price (spec §4.11;
// invariant `price > 0`).
type TradableKittyData struct {
	Base  KittyData
	Price amount.Amount
}

func (TradableKittyData) TypeID() [4]byte { return TradableKittyTypeID }

func (t TradableKittyData) Encode(e *codec.Encoder) {
	t.Base.Encode(e)
	t.Price.Encode(e)
}

// DecodeTradableKittyData reads a TradableKittyData written by Encode.
func DecodeTradableKittyData(d *codec.Decoder) (TradableKittyData, error) {
	base, err := DecodeKittyData(d)
	if err != nil {
		return TradableKittyData{}, err
	}
	price, err := amount.Decode(d)
	if err != nil {
		return TradableKittyData{}, err
	}
	return TradableKittyData{Base: base, Price: price}, nil
}

// AsTradableKittyData extracts p as a TradableKittyData, or ErrBadlyTyped.
func AsTradableKittyData(p types.AnyPayload) (TradableKittyData, error) {
	return types.Extract(p, TradableKittyData{}, DecodeTradableKittyData)
}
