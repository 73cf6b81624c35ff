package kitties

import (
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/types"
)

// Create mints new kitties out of nothing (spec §4.11).
type Create struct{}

func (Create) Encode(*codec.Encoder)             {}
func DecodeCreate(*codec.Decoder) (Create, error) { return Create{}, nil }
func (Create) IsInherent() bool                   { return false }

func (Create) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 0 || len(evictions) != 0 {
		return 0, ErrWrongInputCount
	}
	if len(outputs) == 0 {
		return 0, ErrWrongOutputCount
	}
	for _, o := range outputs {
		if _, err := AsKittyData(o); err != nil {
			return 0, ErrBadlyTyped
		}
	}
	return 0, nil
}

// Breed produces a child from a RearinToGo mom and dad (spec §4.11).
type Breed struct{}

func (Breed) Encode(*codec.Encoder)            {}
func DecodeBreed(*codec.Decoder) (Breed, error) { return Breed{}, nil }
func (Breed) IsInherent() bool                  { return false }

func (Breed) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	if len(inputs) != 2 {
		return 0, ErrWrongInputCount
	}
	if len(outputs) != 3 {
		return 0, ErrWrongOutputCount
	}

	var mom, dad KittyData
	var haveMom, haveDad bool
	for _, in := range inputs {
		k, err := AsKittyData(in)
		if err != nil {
			return 0, ErrBadlyTyped
		}
		switch k.Parent.Kind {
		case ParentMom:
			mom, haveMom = k, true
		case ParentDad:
			dad, haveDad = k, true
		}
	}
	if !haveMom || !haveDad {
		return 0, ErrWrongInputCount
	}

	if mom.Parent.Mom != MomRearinToGo {
		return 0, ErrMomNotReady
	}
	if dad.Parent.Dad != DadRearinToGo {
		return 0, ErrDadTooTired
	}
	if mom.FreeBreedings < 1 || dad.FreeBreedings < 1 {
		return 0, ErrNoFreeBreedings
	}

	momNumPost, overflow := amount.Add(mom.NumBreedings, amount.FromUint64(1))
	if overflow {
		return 0, ErrBreedingsOverflow
	}
	dadNumPost, overflow := amount.Add(dad.NumBreedings, amount.FromUint64(1))
	if overflow {
		return 0, ErrBreedingsOverflow
	}

	newMom, err := AsKittyData(outputs[0])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	newDad, err := AsKittyData(outputs[1])
	if err != nil {
		return 0, ErrBadlyTyped
	}
	child, err := AsKittyData(outputs[2])
	if err != nil {
		return 0, ErrBadlyTyped
	}

	if newMom.Parent.Kind != ParentMom || newMom.Parent.Mom != MomHadBirthRecently ||
		newMom.FreeBreedings != mom.FreeBreedings-1 || newMom.DNA != mom.DNA ||
		newMom.NumBreedings.Cmp(momNumPost) != 0 {
		return 0, ErrWrongNewMomFields
	}
	if newDad.Parent.Kind != ParentDad || newDad.Parent.Dad != DadTired ||
		newDad.FreeBreedings != dad.FreeBreedings-1 || newDad.DNA != dad.DNA ||
		newDad.NumBreedings.Cmp(dadNumPost) != 0 {
		return 0, ErrWrongNewDadFields
	}

	wantDNA := childDNA(mom.DNA, dad.DNA, momNumPost, dadNumPost)
	if child.DNA != wantDNA {
		return 0, ErrWrongChildDNA
	}
	if child.FreeBreedings != 2 || !child.NumBreedings.IsZero() {
		return 0, ErrWrongChildFields
	}
	childReady := (child.Parent.Kind == ParentMom && child.Parent.Mom == MomRearinToGo) ||
		(child.Parent.Kind == ParentDad && child.Parent.Dad == DadRearinToGo)
	if !childReady {
		return 0, ErrWrongChildFields
	}

	return 0, nil
}

// childDNA derives a child's DNA from its parents (spec §4.11, §8.6):
// hash(mom.dna || dad.dna || mom.num_breedings_post || dad.num_breedings_post).
func childDNA(momDNA, dadDNA kernelcrypto.Hash256, momNumPost, dadNumPost amount.Amount) kernelcrypto.Hash256 {
	e := codec.NewEncoder()
	e.PutBytes(momDNA[:])
	e.PutBytes(dadDNA[:])
	momNumPost.Encode(e)
	dadNumPost.Encode(e)
	return kernelcrypto.Hash(e.Bytes())
}

// UpdateName renames n kitties in place, paired input-to-output by DNA
// (spec §4.11).
type UpdateName struct{}

func (UpdateName) Encode(*codec.Encoder)                 {}
func DecodeUpdateName(*codec.Decoder) (UpdateName, error) { return UpdateName{}, nil }
func (UpdateName) IsInherent() bool                       { return false }

func (UpdateName) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	ins, err := decodeAllKitties(inputs)
	if err != nil {
		return 0, err
	}
	outs, err := decodeAllKitties(outputs)
	if err != nil {
		return 0, err
	}
	if len(ins) != len(outs) || len(ins) == 0 {
		return 0, ErrWrongInputCount
	}
	byDNA, err := indexByDNA(ins)
	if err != nil {
		return 0, err
	}
	anyNameChanged := false
	for _, out := range outs {
		in, ok := byDNA[out.DNA]
		if !ok {
			return 0, ErrDNAMismatch
		}
		delete(byDNA, out.DNA)
		if out.Parent != in.Parent || out.FreeBreedings != in.FreeBreedings ||
			out.NumBreedings.Cmp(in.NumBreedings) != 0 {
			return 0, ErrNonNameFieldChanged
		}
		if out.Name != in.Name {
			anyNameChanged = true
		}
	}
	if len(byDNA) != 0 {
		return 0, ErrDNAMismatch
	}
	if !anyNameChanged {
		return 0, ErrNoNameChanged
	}
	return 0, nil
}

func decodeAllKitties(payloads []types.AnyPayload) ([]KittyData, error) {
	out := make([]KittyData, 0, len(payloads))
	for _, p := range payloads {
		k, err := AsKittyData(p)
		if err != nil {
			return nil, ErrBadlyTyped
		}
		out = append(out, k)
	}
	return out, nil
}

func indexByDNA(ks []KittyData) (map[kernelcrypto.Hash256]KittyData, error) {
	m := make(map[kernelcrypto.Hash256]KittyData, len(ks))
	for _, k := range ks {
		if _, dup := m[k.DNA]; dup {
			return nil, ErrDuplicateDNA
		}
		m[k.DNA] = k
	}
	return m, nil
}

// List converts a KittyData into a TradableKittyData (spec §4.11).
type List struct{}

func (List) Encode(*codec.Encoder)           {}
func DecodeList(*codec.Decoder) (List, error) { return List{}, nil }
func (List) IsInherent() bool                 { return false }

func (List) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	ins, err := decodeAllKitties(inputs)
	if err != nil {
		return 0, err
	}
	outs, err := decodeAllTradable(outputs)
	if err != nil {
		return 0, err
	}
	return 0, pairListing(ins, outs, true)
}

// Delist converts a TradableKittyData back into a KittyData (spec §4.11).
type Delist struct{}

func (Delist) Encode(*codec.Encoder)             {}
func DecodeDelist(*codec.Decoder) (Delist, error) { return Delist{}, nil }
func (Delist) IsInherent() bool                   { return false }

func (Delist) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	ins, err := decodeAllTradable(inputs)
	if err != nil {
		return 0, err
	}
	outs, err := decodeAllKitties(outputs)
	if err != nil {
		return 0, err
	}
	return 0, pairListing(outs, ins, false)
}

func decodeAllTradable(payloads []types.AnyPayload) ([]TradableKittyData, error) {
	out := make([]TradableKittyData, 0, len(payloads))
	for _, p := range payloads {
		t, err := AsTradableKittyData(p)
		if err != nil {
			return nil, ErrBadlyTyped
		}
		out = append(out, t)
	}
	return out, nil
}

// pairListing checks that plain and tradable pair 1:1 by DNA with identical
// base fields, and every tradable price is positive. The bool argument is
// unused (kept for readability at call sites: List requires a fresh price > 0,
// Delist only requires the consumed price was itself > 0, already implied).
func pairListing(plain []KittyData, tradable []TradableKittyData, _ bool) error {
	if len(plain) != len(tradable) || len(plain) == 0 {
		return ErrWrongInputCount
	}
	byDNA := make(map[kernelcrypto.Hash256]KittyData, len(plain))
	for _, k := range plain {
		if _, dup := byDNA[k.DNA]; dup {
			return ErrDuplicateDNA
		}
		byDNA[k.DNA] = k
	}
	for _, tk := range tradable {
		base, ok := byDNA[tk.Base.DNA]
		if !ok {
			return ErrDNAMismatch
		}
		delete(byDNA, tk.Base.DNA)
		if base != tk.Base {
			return ErrBaseFieldsChanged
		}
		if tk.Price.IsZero() {
			return ErrZeroPrice
		}
	}
	if len(byDNA) != 0 {
		return ErrDNAMismatch
	}
	return nil
}

// UpdatePrice repricess n tradable kitties paired by DNA (spec §4.11).
type UpdatePrice struct{}

func (UpdatePrice) Encode(*codec.Encoder)               {}
func DecodeUpdatePrice(*codec.Decoder) (UpdatePrice, error) { return UpdatePrice{}, nil }
func (UpdatePrice) IsInherent() bool                     { return false }

func (UpdatePrice) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	ins, err := decodeAllTradable(inputs)
	if err != nil {
		return 0, err
	}
	outs, err := decodeAllTradable(outputs)
	if err != nil {
		return 0, err
	}
	if len(ins) != len(outs) || len(ins) == 0 {
		return 0, ErrWrongInputCount
	}
	byDNA := make(map[kernelcrypto.Hash256]TradableKittyData, len(ins))
	for _, tk := range ins {
		if _, dup := byDNA[tk.Base.DNA]; dup {
			return 0, ErrDuplicateDNA
		}
		byDNA[tk.Base.DNA] = tk
	}
	for _, out := range outs {
		in, ok := byDNA[out.Base.DNA]
		if !ok {
			return 0, ErrDNAMismatch
		}
		delete(byDNA, out.Base.DNA)
		if in.Base != out.Base {
			return 0, ErrBaseFieldsChanged
		}
		if out.Price.IsZero() {
			return 0, ErrZeroPrice
		}
	}
	if len(byDNA) != 0 {
		return 0, ErrDNAMismatch
	}
	return 0, nil
}

// Buy atomically swaps one TradableKittyData for coins (spec §4.11). The
// checker sees only payloads (not verifiers), so it cannot itself identify
// "the seller" among the coin outputs; it enforces the aggregate invariant
// that total coin output value meets the listed price, delegating the
// value-conservation arithmetic to Money's Spend rule.
type Buy struct{}

func (Buy) Encode(*codec.Encoder)         {}
func DecodeBuy(*codec.Decoder) (Buy, error) { return Buy{}, nil }
func (Buy) IsInherent() bool               { return false }

func (Buy) Check(_ uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	var listing TradableKittyData
	haveListing := false
	var inCoins []types.AnyPayload
	for _, in := range inputs {
		if tk, err := AsTradableKittyData(in); err == nil {
			if haveListing {
				return 0, ErrWrongInputCount
			}
			listing, haveListing = tk, true
			continue
		}
		if _, err := money.AsCoin(in); err == nil {
			inCoins = append(inCoins, in)
			continue
		}
		return 0, ErrBadlyTyped
	}
	if !haveListing {
		return 0, ErrWrongInputCount
	}

	var newListing TradableKittyData
	haveNewListing := false
	var outCoins []types.AnyPayload
	for _, out := range outputs {
		if tk, err := AsTradableKittyData(out); err == nil {
			if haveNewListing {
				return 0, ErrWrongOutputCount
			}
			newListing, haveNewListing = tk, true
			continue
		}
		if _, err := money.AsCoin(out); err == nil {
			outCoins = append(outCoins, out)
			continue
		}
		return 0, ErrBadlyTyped
	}
	if !haveNewListing {
		return 0, ErrWrongOutputCount
	}
	if newListing.Base != listing.Base {
		return 0, ErrBaseFieldsChanged
	}

	paidTotal, err := sumCoinPayloads(outCoins)
	if err != nil {
		return 0, err
	}
	if paidTotal.Cmp(listing.Price) < 0 {
		return 0, ErrBuyPriceNotMet
	}

	priority, err := money.Spend{}.Check(0, inCoins, nil, nil, outCoins)
	if err != nil {
		return 0, err
	}
	return priority, nil
}

func sumCoinPayloads(payloads []types.AnyPayload) (amount.Amount, error) {
	vals := make([]amount.Amount, 0, len(payloads))
	for _, p := range payloads {
		c, err := money.AsCoin(p)
		if err != nil {
			return amount.Amount{}, ErrBadlyTyped
		}
		vals = append(vals, c.Value)
	}
	total, overflow := amount.Sum(vals...)
	if overflow {
		return amount.Amount{}, ErrBadlyTyped
	}
	return total, nil
}
