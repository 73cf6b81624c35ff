package aggregate

import (
	"testing"

	"github.com/utxokernel/kernel/pkg/codec"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/pieces/money"
	"github.com/utxokernel/kernel/pkg/pieces/timestamp"
	"github.com/utxokernel/kernel/pkg/verifier"
)

func TestVerifierRoundTrip(t *testing.T) {
	v := Verifier{Inner: verifier.Signature{OwnerPubkey: kernelcrypto.PublicKey{1, 2, 3}}}
	e := codec.NewEncoder()
	e.PutUint8(v.Tag())
	v.Encode(e)

	d := codec.NewDecoder(e.Bytes())
	got, err := DecodeVerifier(d)
	if err != nil {
		t.Fatalf("DecodeVerifier: %v", err)
	}
	sig, ok := got.Inner.(verifier.Signature)
	if !ok {
		t.Fatalf("got %T, want verifier.Signature", got.Inner)
	}
	if sig.OwnerPubkey != (kernelcrypto.PublicKey{1, 2, 3}) {
		t.Errorf("pubkey mismatch: %x", sig.OwnerPubkey)
	}
}

func TestCheckerRoundTrip(t *testing.T) {
	c := Checker{Inner: money.Spend{}}
	e := codec.NewEncoder()
	e.PutUint8(c.Tag())
	c.Encode(e)

	d := codec.NewDecoder(e.Bytes())
	got, err := DecodeChecker(d)
	if err != nil {
		t.Fatalf("DecodeChecker: %v", err)
	}
	if _, ok := got.Inner.(money.Spend); !ok {
		t.Fatalf("got %T, want money.Spend", got.Inner)
	}
}

func TestSetTimestampImplementsInherentInterfaces(t *testing.T) {
	c := Checker{Inner: timestamp.SetTimestamp{}}
	if _, ok := c.AsInherentCreator(); !ok {
		t.Error("expected SetTimestamp to implement InherentCreator")
	}
	if _, ok := c.AsInherentImporter(); !ok {
		t.Error("expected SetTimestamp to implement InherentImporter")
	}
}
