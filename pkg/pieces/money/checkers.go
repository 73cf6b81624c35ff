package money

import (
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/types"
)

// Mint permits creating new coins out of nothing (spec §4.10).
type Mint struct{}

func (Mint) Encode(*codec.Encoder) {}

// DecodeMint reads the (empty) body of a Mint checker.
func DecodeMint(*codec.Decoder) (Mint, error) { return Mint{}, nil }

func (Mint) IsInherent() bool { return false }

// Check enforces: no inputs, no evictions, no peeks, at least one output,
// every output a Coin with value > 0.
func (Mint) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 0 || len(evictions) != 0 || len(peeks) != 0 {
		return 0, ErrMintingWithInputs
	}
	if len(outputs) == 0 {
		return 0, ErrMintingNothing
	}
	for _, o := range outputs {
		c, err := AsCoin(o)
		if err != nil {
			return 0, ErrBadlyTyped
		}
		if c.Value.IsZero() {
			return 0, ErrZeroValueCoin
		}
	}
	return 0, nil
}

// Spend permits consuming coins and producing coins of lesser or equal
// total value (spec §4.10).
type Spend struct{}

func (Spend) Encode(*codec.Encoder) {}

// DecodeSpend reads the (empty) body of a Spend checker.
func DecodeSpend(*codec.Decoder) (Spend, error) { return Spend{}, nil }

func (Spend) IsInherent() bool { return false }

// Check enforces: at least one input, all Coins; outputs (possibly zero)
// all Coins with value > 0; Σoutputs ≤ Σinputs, overflow-checked. Priority
// is the burned value capped at u64::MAX.
func (Spend) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) == 0 {
		return 0, ErrSpendingNothing
	}
	inTotal, err := sumCoins(inputs)
	if err != nil {
		return 0, err
	}
	outTotal, err := sumCoins(outputs)
	if err != nil {
		return 0, err
	}
	for _, o := range outputs {
		c, _ := AsCoin(o)
		if c.Value.IsZero() {
			return 0, ErrZeroValueCoin
		}
	}
	if outTotal.Cmp(inTotal) > 0 {
		return 0, ErrOutputsExceedInputs
	}
	burned, _ := amount.Sub(inTotal, outTotal)
	return burned.CapToUint64(), nil
}

func sumCoins(payloads []types.AnyPayload) (amount.Amount, error) {
	vals := make([]amount.Amount, 0, len(payloads))
	for _, p := range payloads {
		c, err := AsCoin(p)
		if err != nil {
			return amount.Amount{}, ErrBadlyTyped
		}
		vals = append(vals, c.Value)
	}
	total, overflow := amount.Sum(vals...)
	if overflow {
		return amount.Amount{}, ErrValueOverflow
	}
	return total, nil
}

// MintClass is Mint scoped to a single BackedCoin class (supplemented from
// original_source/multitoken.rs).
type MintClass struct{}

func (MintClass) Encode(*codec.Encoder) {}

// DecodeMintClass reads the (empty) body of a MintClass checker.
func DecodeMintClass(*codec.Decoder) (MintClass, error) { return MintClass{}, nil }

func (MintClass) IsInherent() bool { return false }

func (MintClass) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 0 || len(evictions) != 0 {
		return 0, ErrMintingWithInputs
	}
	if len(outputs) == 0 {
		return 0, ErrMintingNothing
	}
	var classID [4]byte
	for i, o := range outputs {
		c, err := AsBackedCoin(o)
		if err != nil {
			return 0, ErrBadlyTyped
		}
		if c.Value.IsZero() {
			return 0, ErrZeroValueCoin
		}
		if i == 0 {
			classID = c.ClassID
		} else if c.ClassID != classID {
			return 0, ErrClassMismatch
		}
	}
	return 0, nil
}

// SpendClass is Spend scoped to a single BackedCoin class: every input and
// output must share one ClassId (supplemented from
// original_source/multitoken.rs).
type SpendClass struct{}

func (SpendClass) Encode(*codec.Encoder) {}

// DecodeSpendClass reads the (empty) body of a SpendClass checker.
func DecodeSpendClass(*codec.Decoder) (SpendClass, error) { return SpendClass{}, nil }

func (SpendClass) IsInherent() bool { return false }

func (SpendClass) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) == 0 {
		return 0, ErrSpendingNothing
	}
	classID, inTotal, err := sumBackedCoins(inputs, nil)
	if err != nil {
		return 0, err
	}
	_, outTotal, err := sumBackedCoins(outputs, &classID)
	if err != nil {
		return 0, err
	}
	for _, o := range outputs {
		c, _ := AsBackedCoin(o)
		if c.Value.IsZero() {
			return 0, ErrZeroValueCoin
		}
	}
	if outTotal.Cmp(inTotal) > 0 {
		return 0, ErrOutputsExceedInputs
	}
	burned, _ := amount.Sub(inTotal, outTotal)
	return burned.CapToUint64(), nil
}

// sumBackedCoins sums payloads as BackedCoin, enforcing that all share one
// ClassId (want, if non-nil, fixes the expected class). It returns the
// observed class id alongside the total.
func sumBackedCoins(payloads []types.AnyPayload, want *[4]byte) ([4]byte, amount.Amount, error) {
	var classID [4]byte
	vals := make([]amount.Amount, 0, len(payloads))
	for i, p := range payloads {
		c, err := AsBackedCoin(p)
		if err != nil {
			return classID, amount.Amount{}, ErrBadlyTyped
		}
		if want != nil {
			if c.ClassID != *want {
				return classID, amount.Amount{}, ErrClassMismatch
			}
		} else if i == 0 {
			classID = c.ClassID
		} else if c.ClassID != classID {
			return classID, amount.Amount{}, ErrClassMismatch
		}
		vals = append(vals, c.Value)
	}
	total, overflow := amount.Sum(vals...)
	if overflow {
		return classID, amount.Amount{}, ErrValueOverflow
	}
	return classID, total, nil
}
