package db

import (
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/pieces/kitties"
)

// CoinRecord is the value type of the unspent table: an owned coin, plus
// the owner pubkey resolved by the sync loop's filter predicate (spec
// §4.16 `unspent: OutputRef -> (owner_pubkey, amount)`).
type CoinRecord struct {
	Owner  kernelcrypto.PublicKey
	Amount amount.Amount
}

func (r CoinRecord) Encode(e *codec.Encoder) {
	e.PutBytes(r.Owner[:])
	r.Amount.Encode(e)
}

// DecodeCoinRecord reads a CoinRecord written by Encode.
func DecodeCoinRecord(d *codec.Decoder) (CoinRecord, error) {
	owner, err := d.GetBytes(kernelcrypto.PublicKeySize)
	if err != nil {
		return CoinRecord{}, err
	}
	amt, err := amount.Decode(d)
	if err != nil {
		return CoinRecord{}, err
	}
	var r CoinRecord
	copy(r.Owner[:], owner)
	r.Amount = amt
	return r, nil
}

// KittyRecord is the value type of the fresh_kitty/used_kitty tables (spec
// §4.16 `fresh_kitty, used_kitty: OutputRef -> (owner_pubkey, payload)`).
type KittyRecord struct {
	Owner kernelcrypto.PublicKey
	Data  kitties.KittyData
}

func (r KittyRecord) Encode(e *codec.Encoder) {
	e.PutBytes(r.Owner[:])
	r.Data.Encode(e)
}

// DecodeKittyRecord reads a KittyRecord written by Encode.
func DecodeKittyRecord(d *codec.Decoder) (KittyRecord, error) {
	owner, err := d.GetBytes(kernelcrypto.PublicKeySize)
	if err != nil {
		return KittyRecord{}, err
	}
	data, err := kitties.DecodeKittyData(d)
	if err != nil {
		return KittyRecord{}, err
	}
	var r KittyRecord
	copy(r.Owner[:], owner)
	r.Data = data
	return r, nil
}

// TradableKittyRecord is the value type of the fresh_tradable_kitty/
// used_tradable_kitty tables.
type TradableKittyRecord struct {
	Owner kernelcrypto.PublicKey
	Data  kitties.TradableKittyData
}

func (r TradableKittyRecord) Encode(e *codec.Encoder) {
	e.PutBytes(r.Owner[:])
	r.Data.Encode(e)
}

// DecodeTradableKittyRecord reads a TradableKittyRecord written by Encode.
func DecodeTradableKittyRecord(d *codec.Decoder) (TradableKittyRecord, error) {
	owner, err := d.GetBytes(kernelcrypto.PublicKeySize)
	if err != nil {
		return TradableKittyRecord{}, err
	}
	data, err := kitties.DecodeTradableKittyData(d)
	if err != nil {
		return TradableKittyRecord{}, err
	}
	var r TradableKittyRecord
	copy(r.Owner[:], owner)
	r.Data = data
	return r, nil
}
