package poe

import (
	"errors"
	"testing"

	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/types"
)

func claimPayload(hash byte, height uint32) types.AnyPayload {
	var h kernelcrypto.Hash256
	h[0] = hash
	return types.ToAnyPayload[Claim](Claim{Hash: h, EffectiveHeight: height})
}

func TestCreateClaimHappyPath(t *testing.T) {
	outputs := []types.AnyPayload{claimPayload(1, 10)}
	if _, err := (CreateClaim{}).Check(10, nil, nil, nil, outputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateClaimRejectsEffectiveHeightInPast(t *testing.T) {
	outputs := []types.AnyPayload{claimPayload(1, 5)}
	_, err := (CreateClaim{}).Check(10, nil, nil, nil, outputs)
	if !errors.Is(err, ErrClaimTooEarly) {
		t.Errorf("got %v, want ErrClaimTooEarly", err)
	}
}

func TestCreateClaimRejectsEmptyOutputs(t *testing.T) {
	_, err := (CreateClaim{}).Check(10, nil, nil, nil, nil)
	if !errors.Is(err, ErrWrongOutputCount) {
		t.Errorf("got %v, want ErrWrongOutputCount", err)
	}
}

func TestRevokeHappyPath(t *testing.T) {
	inputs := []types.AnyPayload{claimPayload(1, 10)}
	if _, err := (Revoke{}).Check(10, inputs, nil, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRevokeRejectsNoInputs(t *testing.T) {
	_, err := (Revoke{}).Check(10, nil, nil, nil, nil)
	if !errors.Is(err, ErrWrongInputCount) {
		t.Errorf("got %v, want ErrWrongInputCount", err)
	}
}

// TestDisputeEvictsLaterDuplicate covers scenario S5: two claims of the same
// document hash exist, the earlier one wins and the later duplicate is
// evicted by peeking the winner and listing the loser as an eviction.
func TestDisputeEvictsLaterDuplicate(t *testing.T) {
	peeks := []types.AnyPayload{claimPayload(7, 10)}
	evictions := []types.AnyPayload{claimPayload(7, 20)}
	if _, err := (Dispute{}).Check(30, nil, evictions, peeks, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDisputeRejectsHashMismatch(t *testing.T) {
	peeks := []types.AnyPayload{claimPayload(7, 10)}
	evictions := []types.AnyPayload{claimPayload(9, 20)}
	_, err := (Dispute{}).Check(30, nil, evictions, peeks, nil)
	if !errors.Is(err, ErrDisputeHashMismatch) {
		t.Errorf("got %v, want ErrDisputeHashMismatch", err)
	}
}

func TestDisputeRejectsEvictingTheWinner(t *testing.T) {
	peeks := []types.AnyPayload{claimPayload(7, 20)}
	evictions := []types.AnyPayload{claimPayload(7, 10)}
	_, err := (Dispute{}).Check(30, nil, evictions, peeks, nil)
	if !errors.Is(err, ErrDisputeNotOlder) {
		t.Errorf("got %v, want ErrDisputeNotOlder", err)
	}
}

func TestDisputeRequiresExactlyOnePeek(t *testing.T) {
	evictions := []types.AnyPayload{claimPayload(7, 20)}
	_, err := (Dispute{}).Check(30, nil, evictions, nil, nil)
	if !errors.Is(err, ErrWrongPeekCount) {
		t.Errorf("got %v, want ErrWrongPeekCount", err)
	}
}
