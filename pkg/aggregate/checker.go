package aggregate

import (
	"fmt"

	"github.com/utxokernel/kernel/pkg/checker"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/pieces/amoeba"
	"github.com/utxokernel/kernel/pkg/pieces/kitties"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/pieces/parachaininfo"
	"github.com/utxokernel/kernel/pkg/pieces/poe"
	"github.com/utxokernel/kernel/pkg/pieces/timestamp"
	"github.com/utxokernel/kernel/pkg/types"
)

// Wire tags for the deployment's checker variants. Declared order is
// significant: spec §4.8/§4.9 fix the order a block's inherent
// transactions must occupy by "the aggregate checker's variant order",
// and InherentTags below enumerates the inherent-capable subset in that
// same order.
const (
	TagMint uint8 = iota
	TagSpend
	TagMintClass
	TagSpendClass
	TagCreateKitty
	TagBreed
	TagUpdateName
	TagListKitty
	TagDelistKitty
	TagUpdateKittyPrice
	TagBuyKitty
	TagCreateClaim
	TagRevoke
	TagDispute
	TagCreation
	TagMitosis
	TagDeath
	TagSetTimestamp
	TagCleanUpTimestamp
	TagSetParachainInfo
)

// InherentTags lists the inherent-capable checker variants in the
// deterministic order pkg/executive/inherents.go must author and expect
// them in at the front of every non-genesis block (spec §4.9).
var InherentTags = []uint8{TagSetTimestamp, TagSetParachainInfo}

// ErrUnknownCheckerTag is returned by DecodeChecker for a tag byte this
// deployment does not recognize.
var ErrUnknownCheckerTag = fmt.Errorf("aggregate: unknown checker tag")

// Checker is the deployment's aggregate constraint-checker sum type (spec
// §4.5), wrapping whichever piece checker variant a transaction declares.
type Checker struct {
	Inner checker.ConstraintChecker
}

// Tag returns the wire tag of the wrapped checker variant.
func (c Checker) Tag() uint8 {
	switch c.Inner.(type) {
	case money.Mint:
		return TagMint
	case money.Spend:
		return TagSpend
	case money.MintClass:
		return TagMintClass
	case money.SpendClass:
		return TagSpendClass
	case kitties.Create:
		return TagCreateKitty
	case kitties.Breed:
		return TagBreed
	case kitties.UpdateName:
		return TagUpdateName
	case kitties.List:
		return TagListKitty
	case kitties.Delist:
		return TagDelistKitty
	case kitties.UpdatePrice:
		return TagUpdateKittyPrice
	case kitties.Buy:
		return TagBuyKitty
	case poe.CreateClaim:
		return TagCreateClaim
	case poe.Revoke:
		return TagRevoke
	case poe.Dispute:
		return TagDispute
	case amoeba.Creation:
		return TagCreation
	case amoeba.Mitosis:
		return TagMitosis
	case amoeba.Death:
		return TagDeath
	case timestamp.SetTimestamp:
		return TagSetTimestamp
	case timestamp.CleanUpTimestamp:
		return TagCleanUpTimestamp
	case parachaininfo.SetParachainInfo:
		return TagSetParachainInfo
	default:
		panic(fmt.Sprintf("aggregate: unhandled checker variant %T", c.Inner))
	}
}

// Encode appends the wrapped variant's body (the tag itself is written by
// the caller, types.Transaction.encodeFields, ahead of this call). Every
// current variant is a zero-sized struct, so this is a no-op, but it
// dispatches through Inner.Encode rather than assuming that forever.
func (c Checker) Encode(e *codec.Encoder) { c.Inner.Encode(e) }

// Check delegates to the wrapped variant.
func (c Checker) Check(height uint64, inputs, evictions, peeks, outputs []types.AnyPayload) (uint64, error) {
	return c.Inner.Check(height, inputs, evictions, peeks, outputs)
}

// IsInherent delegates to the wrapped variant.
func (c Checker) IsInherent() bool { return c.Inner.IsInherent() }

// AsInherentCreator exposes the wrapped variant's CreateInherent, if it
// implements checker.InherentCreator.
func (c Checker) AsInherentCreator() (checker.InherentCreator, bool) {
	ic, ok := c.Inner.(checker.InherentCreator)
	return ic, ok
}

// AsInherentImporter exposes the wrapped variant's CheckInherent, if it
// implements checker.InherentImporter.
func (c Checker) AsInherentImporter() (checker.InherentImporter, bool) {
	ii, ok := c.Inner.(checker.InherentImporter)
	return ii, ok
}

// DecodeChecker reads the tag byte and dispatches to the matching
// variant's decode function, wrapping the result as a Checker. This is the
// decodeChecker function types.DecodeTransaction expects.
func DecodeChecker(d *codec.Decoder) (Checker, error) {
	tag, err := d.GetUint8()
	if err != nil {
		return Checker{}, err
	}
	switch tag {
	case TagMint:
		v, err := money.DecodeMint(d)
		return Checker{Inner: v}, err
	case TagSpend:
		v, err := money.DecodeSpend(d)
		return Checker{Inner: v}, err
	case TagMintClass:
		v, err := money.DecodeMintClass(d)
		return Checker{Inner: v}, err
	case TagSpendClass:
		v, err := money.DecodeSpendClass(d)
		return Checker{Inner: v}, err
	case TagCreateKitty:
		v, err := kitties.DecodeCreate(d)
		return Checker{Inner: v}, err
	case TagBreed:
		v, err := kitties.DecodeBreed(d)
		return Checker{Inner: v}, err
	case TagUpdateName:
		v, err := kitties.DecodeUpdateName(d)
		return Checker{Inner: v}, err
	case TagListKitty:
		v, err := kitties.DecodeList(d)
		return Checker{Inner: v}, err
	case TagDelistKitty:
		v, err := kitties.DecodeDelist(d)
		return Checker{Inner: v}, err
	case TagUpdateKittyPrice:
		v, err := kitties.DecodeUpdatePrice(d)
		return Checker{Inner: v}, err
	case TagBuyKitty:
		v, err := kitties.DecodeBuy(d)
		return Checker{Inner: v}, err
	case TagCreateClaim:
		v, err := poe.DecodeCreateClaim(d)
		return Checker{Inner: v}, err
	case TagRevoke:
		v, err := poe.DecodeRevoke(d)
		return Checker{Inner: v}, err
	case TagDispute:
		v, err := poe.DecodeDispute(d)
		return Checker{Inner: v}, err
	case TagCreation:
		v, err := amoeba.DecodeCreation(d)
		return Checker{Inner: v}, err
	case TagMitosis:
		v, err := amoeba.DecodeMitosis(d)
		return Checker{Inner: v}, err
	case TagDeath:
		v, err := amoeba.DecodeDeath(d)
		return Checker{Inner: v}, err
	case TagSetTimestamp:
		v, err := timestamp.DecodeSetTimestamp(d)
		return Checker{Inner: v}, err
	case TagCleanUpTimestamp:
		v, err := timestamp.DecodeCleanUpTimestamp(d)
		return Checker{Inner: v}, err
	case TagSetParachainInfo:
		v, err := parachaininfo.DecodeSetParachainInfo(d)
		return Checker{Inner: v}, err
	default:
		return Checker{}, fmt.Errorf("%w: %d", ErrUnknownCheckerTag, tag)
	}
}
