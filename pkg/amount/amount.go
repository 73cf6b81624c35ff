// Package amount implements the unsigned 128-bit integer the kernel's value
// fields (Coin.Value, KittyData.NumBreedings) are specified over, with
// overflow-checked arithmetic (spec §4.10 "checked for overflow (u128)").
package amount

import (
	"fmt"
	"math/bits"

	"github.com/utxokernel/kernel/pkg/codec"
)

// Amount is a 128-bit unsigned integer held as two 64-bit limbs, matching
// the little-endian (lo, hi) field order codec.PutUint128/GetUint128 use.
type Amount struct {
	Lo, Hi uint64
}

// FromUint64 widens v to an Amount.
func FromUint64(v uint64) Amount { return Amount{Lo: v} }

// IsZero reports whether a is the zero value.
func (a Amount) IsZero() bool { return a.Lo == 0 && a.Hi == 0 }

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.Hi < b.Hi:
		return -1
	case a.Hi > b.Hi:
		return 1
	case a.Lo < b.Lo:
		return -1
	case a.Lo > b.Lo:
		return 1
	default:
		return 0
	}
}

// Add returns a+b and reports whether the addition overflowed 128 bits.
func Add(a, b Amount) (Amount, bool) {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, carry2 := bits.Add64(a.Hi, b.Hi, carry)
	return Amount{Lo: lo, Hi: hi}, carry2 != 0
}

// Sub returns a-b and reports whether a < b (underflow).
func Sub(a, b Amount) (Amount, bool) {
	if a.Cmp(b) < 0 {
		return Amount{}, true
	}
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Amount{Lo: lo, Hi: hi}, false
}

// Sum adds up vs, capped-reporting overflow at the first limb that
// overflows.
func Sum(vs ...Amount) (Amount, bool) {
	var total Amount
	for _, v := range vs {
		var overflow bool
		total, overflow = Add(total, v)
		if overflow {
			return Amount{}, true
		}
	}
	return total, false
}

// CapToUint64 saturates a at math.MaxUint64, used for priority values which
// are u64 even though balances are u128 (spec §4.10 "capped at u64::MAX").
func (a Amount) CapToUint64() uint64 {
	if a.Hi != 0 {
		return ^uint64(0)
	}
	return a.Lo
}

// Encode appends the canonical little-endian (lo, hi) encoding of a.
func (a Amount) Encode(e *codec.Encoder) { e.PutUint128(a.Lo, a.Hi) }

// Decode reads an Amount written by Encode.
func Decode(d *codec.Decoder) (Amount, error) {
	lo, hi, err := d.GetUint128()
	if err != nil {
		return Amount{}, err
	}
	return Amount{Lo: lo, Hi: hi}, nil
}

func (a Amount) String() string {
	if a.Hi == 0 {
		return fmt.Sprintf("%d", a.Lo)
	}
	return fmt.Sprintf("0x%016x%016x", a.Hi, a.Lo)
}
