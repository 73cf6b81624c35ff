package sync

import (
	"github.com/utxokernel/kernel/pkg/aggregate"
	"github.com/utxokernel/kernel/pkg/kernelcrypto"
	"github.com/utxokernel/kernel/pkg/verifier"
)

// Keystore is the set of public keys the wallet considers its own. Signing
// itself is out of this package's scope (pkg/wallet/builder); Keystore here
// is only consulted by the sync loop's filter predicate.
type Keystore map[kernelcrypto.PublicKey]struct{}

// Has reports whether pub is one of the wallet's own keys.
func (k Keystore) Has(pub kernelcrypto.PublicKey) bool {
	_, ok := k[pub]
	return ok
}

// filterOwner applies spec §4.16 step 4's filter predicate: an output is
// ours if its verifier is UpForGrabs (owner unspecified, recorded as the
// zero pubkey), a Signature naming one of our keys, or a ThresholdMultiSig
// naming at least one of our keys among its signatories (recorded under
// that key). ok is false when none of these hold.
func filterOwner(v aggregate.Verifier, keys Keystore) (owner kernelcrypto.PublicKey, ok bool) {
	switch inner := v.Inner.(type) {
	case verifier.UpForGrabs:
		return kernelcrypto.PublicKey{}, true
	case verifier.Signature:
		if keys.Has(inner.OwnerPubkey) {
			return inner.OwnerPubkey, true
		}
		return kernelcrypto.PublicKey{}, false
	case verifier.ThresholdMultiSig:
		for _, pk := range inner.Signatories {
			if keys.Has(pk) {
				return pk, true
			}
		}
		return kernelcrypto.PublicKey{}, false
	default:
		return kernelcrypto.PublicKey{}, false
	}
}
