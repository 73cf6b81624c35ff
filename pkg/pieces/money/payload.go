// Package money implements the fungible-coin piece (spec §4.10): Coin with
// Mint/Spend semantics, plus the class-scoped BackedCoin/MintClass/SpendClass
// extension supplemented from original_source/multitoken.rs.
package money

import (
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/types"
)

// CoinTypeID identifies the Coin payload within an AnyPayload envelope.
var CoinTypeID = [4]byte{'c', 'o', 'i', 'n'}

// Coin is the single-class fungible coin payload (spec §4.10).
type Coin struct {
	Value amount.Amount
}

func (Coin) TypeID() [4]byte { return CoinTypeID }

func (c Coin) Encode(e *codec.Encoder) { c.Value.Encode(e) }

// DecodeCoin reads a Coin written by Encode.
func DecodeCoin(d *codec.Decoder) (Coin, error) {
	v, err := amount.Decode(d)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Value: v}, nil
}

// AsCoin extracts p as a Coin, or ErrBadlyTyped.
func AsCoin(p types.AnyPayload) (Coin, error) { return types.Extract(p, Coin{}, DecodeCoin) }

// BackedCoinTypeID identifies the BackedCoin payload.
var BackedCoinTypeID = [4]byte{'b', 'c', 'o', 'i'}

// BackedCoin generalizes Coin to a deployment with multiple named coin
// classes (supplemented from original_source/multitoken.rs; see DESIGN.md).
type BackedCoin struct {
	Value   amount.Amount
	ClassID [4]byte
}

func (BackedCoin) TypeID() [4]byte { return BackedCoinTypeID }

func (c BackedCoin) Encode(e *codec.Encoder) {
	c.Value.Encode(e)
	e.PutBytes(c.ClassID[:])
}

// DecodeBackedCoin reads a BackedCoin written by Encode.
func DecodeBackedCoin(d *codec.Decoder) (BackedCoin, error) {
	v, err := amount.Decode(d)
	if err != nil {
		return BackedCoin{}, err
	}
	cid, err := d.GetBytes(4)
	if err != nil {
		return BackedCoin{}, err
	}
	var bc BackedCoin
	bc.Value = v
	copy(bc.ClassID[:], cid)
	return bc, nil
}

// AsBackedCoin extracts p as a BackedCoin, or ErrBadlyTyped.
func AsBackedCoin(p types.AnyPayload) (BackedCoin, error) {
	return types.Extract(p, BackedCoin{}, DecodeBackedCoin)
}
