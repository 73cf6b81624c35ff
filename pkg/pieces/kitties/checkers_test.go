package kitties

import (
	"errors"
	"testing"

	"github.com/utxokernel/kernel/pkg/amount"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/types"
)

func mustHash(b byte) kernelcrypto.Hash256 {
	var h kernelcrypto.Hash256
	h[0] = b
	return h
}

func TestBreedHappyPath(t *testing.T) {
	// S3 — mom/dad RearinToGo, free=2, num=0.
	domMom := mustHash(1)
	domDad := mustHash(2)
	mom := KittyData{Parent: Parent{Kind: ParentMom, Mom: MomRearinToGo}, FreeBreedings: 2, DNA: domMom}
	dad := KittyData{Parent: Parent{Kind: ParentDad, Dad: DadRearinToGo}, FreeBreedings: 2, DNA: domDad}

	momPost := amount.FromUint64(1)
	dadPost := amount.FromUint64(1)
	newMom := mom
	newMom.Parent.Mom = MomHadBirthRecently
	newMom.FreeBreedings = 1
	newMom.NumBreedings = momPost
	newDad := dad
	newDad.Parent.Dad = DadTired
	newDad.FreeBreedings = 1
	newDad.NumBreedings = dadPost
	child := KittyData{
		Parent:        Parent{Kind: ParentMom, Mom: MomRearinToGo},
		FreeBreedings: 2,
		DNA:           childDNA(domMom, domDad, momPost, dadPost),
	}

	inputs := []types.AnyPayload{types.ToAnyPayload[KittyData](mom), types.ToAnyPayload[KittyData](dad)}
	outputs := []types.AnyPayload{
		types.ToAnyPayload[KittyData](newMom),
		types.ToAnyPayload[KittyData](newDad),
		types.ToAnyPayload[KittyData](child),
	}

	if _, err := (Breed{}).Check(0, inputs, nil, nil, outputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBreedRejectsTiredDad(t *testing.T) {
	// S4 — dad status Tired.
	mom := KittyData{Parent: Parent{Kind: ParentMom, Mom: MomRearinToGo}, FreeBreedings: 2, DNA: mustHash(1)}
	dad := KittyData{Parent: Parent{Kind: ParentDad, Dad: DadTired}, FreeBreedings: 2, DNA: mustHash(2)}
	inputs := []types.AnyPayload{types.ToAnyPayload[KittyData](mom), types.ToAnyPayload[KittyData](dad)}

	_, err := (Breed{}).Check(0, inputs, nil, nil, make([]types.AnyPayload, 3))
	if !errors.Is(err, ErrDadTooTired) {
		t.Errorf("got %v, want ErrDadTooTired", err)
	}
}

func TestUpdateNameAcceptsRenameWithMatchingDNA(t *testing.T) {
	k := KittyData{Parent: Parent{Kind: ParentMom, Mom: MomRearinToGo}, DNA: mustHash(1), Name: [4]byte{'a', 0, 0, 0}}
	renamed := k
	renamed.Name = [4]byte{'b', 0, 0, 0}

	_, err := (UpdateName{}).Check(
		0,
		[]types.AnyPayload{types.ToAnyPayload[KittyData](k)},
		nil, nil,
		[]types.AnyPayload{types.ToAnyPayload[KittyData](renamed)},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateNameRejectsNonNameChange(t *testing.T) {
	k := KittyData{Parent: Parent{Kind: ParentMom, Mom: MomRearinToGo}, DNA: mustHash(1), FreeBreedings: 1}
	changed := k
	changed.FreeBreedings = 2

	_, err := (UpdateName{}).Check(
		0,
		[]types.AnyPayload{types.ToAnyPayload[KittyData](k)},
		nil, nil,
		[]types.AnyPayload{types.ToAnyPayload[KittyData](changed)},
	)
	if !errors.Is(err, ErrNonNameFieldChanged) {
		t.Errorf("got %v, want ErrNonNameFieldChanged", err)
	}
}
