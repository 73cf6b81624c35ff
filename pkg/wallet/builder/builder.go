// Package builder implements the wallet's transaction-assembly pipeline
// (spec §4.17): select coins, construct a transaction with empty
// redeemers, sign the stripped encoding per input, and submit. The shape
// follows pkg/execution/proof_generator_adapter.go's "assemble, then hand
// off" structure: a builder gathers everything a transaction needs from
// local state before a single terminal call hands the result onward (here,
// to an rpc.Client instead of an inner proof generator).
package builder

import (
	"context"
	"sort"

	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/pieces/kitties"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/rpc"
	"github.com/utxokernel/kernel/pkg/types"
	"github.com/utxokernel/kernel/pkg/verifier"
	"github.com/utxokernel/kernel/pkg/wallet/db"
)

// Transaction is the deployment's concrete transaction type, matching
// pkg/executive.Transaction.
type Transaction = types.Transaction[aggregate.Verifier, aggregate.Checker]

// Builder assembles, signs, and submits transactions spending a wallet's
// own fresh coins and kitties.
type Builder struct {
	client rpc.Client
	db     *db.DB
	keys   KeyStore
}

// New builds a Builder over wdb, signing with keys and submitting through
// client.
func New(client rpc.Client, wdb *db.DB, keys KeyStore) *Builder {
	return &Builder{client: client, db: wdb, keys: keys}
}

// selectedInput is one coin the builder has committed to spend.
type selectedInput struct {
	ref    types.OutputRef
	record db.CoinRecord
}

// selectCoins implements spec §4.17 step 1: sum the caller's chosen
// inputs first, then greedily add further fresh unspent entries (in
// ascending OutputRef order, for determinism) until the total covers
// target or the wallet runs out.
func (b *Builder) selectCoins(chosen []types.OutputRef, target amount.Amount) ([]selectedInput, amount.Amount, error) {
	var selected []selectedInput
	picked := make(map[types.OutputRef]bool, len(chosen))

	var total amount.Amount
	overflow := false
	addRef := func(ref types.OutputRef, rec db.CoinRecord) {
		selected = append(selected, selectedInput{ref: ref, record: rec})
		picked[ref] = true
		sum, ovf := amount.Sum(total, rec.Amount)
		total, overflow = sum, overflow || ovf
	}

	for _, ref := range chosen {
		rec, ok, err := b.db.GetUnspent(ref)
		if err != nil {
			return nil, amount.Amount{}, err
		}
		if !ok {
			return nil, amount.Amount{}, db.ErrNotFound
		}
		addRef(ref, rec)
	}

	if overflow {
		return nil, amount.Amount{}, ErrInsufficientFunds
	}

	if total.Cmp(target) >= 0 {
		return selected, total, nil
	}

	entries, err := b.db.ListUnspent()
	if err != nil {
		return nil, amount.Amount{}, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Ref.String() < entries[j].Ref.String()
	})
	for _, entry := range entries {
		if picked[entry.Ref] {
			continue
		}
		addRef(entry.Ref, entry.Record)
		if overflow {
			return nil, amount.Amount{}, ErrInsufficientFunds
		}
		if total.Cmp(target) >= 0 {
			return selected, total, nil
		}
	}
	return nil, amount.Amount{}, ErrInsufficientFunds
}

// sumCoinOutputs totals the Coin-valued outputs of recipients; non-Coin
// outputs don't draw on the coin budget.
func sumCoinOutputs(recipients []types.Output[aggregate.Verifier]) (amount.Amount, error) {
	var total amount.Amount
	for _, out := range recipients {
		coin, err := money.AsCoin(out.Payload)
		if err != nil {
			continue
		}
		sum, overflow := amount.Sum(total, coin.Value)
		if overflow {
			return amount.Amount{}, ErrInsufficientFunds
		}
		total = sum
	}
	return total, nil
}

// signInputs fills in tx's redeemers in place, one Signature redeemer per
// input, each over tx's stripped encoding (spec §4.17 step 2). Every
// selected input must be owned by a Signature verifier the caller's
// KeyStore can sign for; ThresholdMultiSig and UpForGrabs inputs are
// outside what the builder assembles automatically.
func (b *Builder) signInputs(tx *Transaction, owners map[types.OutputRef]kernelcrypto.PublicKey) error {
	e := codec.NewEncoder()
	tx.EncodeStripped(e)
	msg := e.Bytes()

	for i, in := range tx.Inputs {
		owner, ok := owners[in.OutputRef]
		if !ok {
			continue
		}
		sig, err := b.keys.Sign(owner, msg)
		if err != nil {
			return err
		}
		tx.Inputs[i].Redeemer = sig[:]
	}
	return nil
}

// BuildSpend assembles, signs, and submits a transaction paying recipients
// out of the wallet's fresh coins, returning leftover value to changeOwner
// as a Signature-guarded change output. chosen lets the caller pin
// specific inputs (e.g. to consolidate particular coins); it may be empty.
func (b *Builder) BuildSpend(ctx context.Context, recipients []types.Output[aggregate.Verifier], chosen []types.OutputRef, changeOwner kernelcrypto.PublicKey) (kernelcrypto.Hash256, error) {
	target, err := sumCoinOutputs(recipients)
	if err != nil {
		return kernelcrypto.Hash256{}, err
	}

	inputs, total, err := b.selectCoins(chosen, target)
	if err != nil {
		return kernelcrypto.Hash256{}, err
	}

	tx := Transaction{
		Outputs: append([]types.Output[aggregate.Verifier]{}, recipients...),
		Checker: aggregate.Checker{Inner: money.Spend{}},
	}
	owners := make(map[types.OutputRef]kernelcrypto.PublicKey, len(inputs))
	for _, in := range inputs {
		tx.Inputs = append(tx.Inputs, types.Input{OutputRef: in.ref})
		owners[in.ref] = in.record.Owner
	}

	change, _ := amount.Sub(total, target)
	if !change.IsZero() {
		tx.Outputs = append(tx.Outputs, types.Output[aggregate.Verifier]{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: change}),
			Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: changeOwner}},
		})
	}

	if err := b.signInputs(&tx, owners); err != nil {
		return kernelcrypto.Hash256{}, err
	}

	e := codec.NewEncoder()
	tx.Encode(e)
	return b.client.SubmitExtrinsic(ctx, e.Bytes())
}

// BuildBuy assembles spec §4.17's atomic buy: one transaction consuming a
// tradable kitty listing plus enough of the buyer's coins to meet its
// price, emitting the tradable kitty (base fields unchanged) under the
// buyer's Signature verifier, the price in coin to the seller, and coin change back to the
// buyer. kitties.Buy.Check only sees payloads, so it can't itself confirm
// the coins paid to the seller (as opposed to buyer change) meet the
// price; BuildBuy closes that gap by constructing a dedicated
// listing.Owner-verified output of exactly price and routing any leftover
// to a separate buyer-verified change output, so every transaction this
// builder produces pays the seller in full.
func (b *Builder) BuildBuy(ctx context.Context, listingRef types.OutputRef, buyer kernelcrypto.PublicKey, chosen []types.OutputRef) (kernelcrypto.Hash256, error) {
	listing, ok, err := b.db.GetFreshTradableKitty(listingRef)
	if err != nil {
		return kernelcrypto.Hash256{}, err
	}
	if !ok {
		return kernelcrypto.Hash256{}, ErrKittyNotForSale
	}

	price := listing.Data.Price
	inputs, total, err := b.selectCoins(chosen, price)
	if err != nil {
		return kernelcrypto.Hash256{}, err
	}

	tx := Transaction{
		Inputs: []types.Input{{OutputRef: listingRef}},
		Outputs: []types.Output[aggregate.Verifier]{
			{
				Payload:  types.ToAnyPayload[kitties.TradableKittyData](listing.Data),
				Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: buyer}},
			},
			{
				Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: price}),
				Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: listing.Owner}},
			},
		},
		Checker: aggregate.Checker{Inner: kitties.Buy{}},
	}
	owners := map[types.OutputRef]kernelcrypto.PublicKey{listingRef: listing.Owner}
	for _, in := range inputs {
		tx.Inputs = append(tx.Inputs, types.Input{OutputRef: in.ref})
		owners[in.ref] = in.record.Owner
	}

	change, _ := amount.Sub(total, price)
	if !change.IsZero() {
		tx.Outputs = append(tx.Outputs, types.Output[aggregate.Verifier]{
			Payload:  types.ToAnyPayload[money.Coin](money.Coin{Value: change}),
			Verifier: aggregate.Verifier{Inner: verifier.Signature{OwnerPubkey: buyer}},
		})
	}

	if err := b.signInputs(&tx, owners); err != nil {
		return kernelcrypto.Hash256{}, err
	}

	e := codec.NewEncoder()
	tx.Encode(e)
	return b.client.SubmitExtrinsic(ctx, e.Bytes())
}
