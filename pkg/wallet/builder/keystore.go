package builder

import "github.com/utxokernel/kernel/pkg/kernelcrypto"

// KeyStore resolves an owning public key to the private key that signs
// redeemers on its behalf. It is a separate interface from
// pkg/wallet/sync.Keystore, which only answers ownership-membership
// questions: this one performs the signature itself, so a deployment can
// keep private key material behind an HSM or a remote signer instead of
// handing it to the builder directly.
type KeyStore interface {
	// Sign returns a detached signature over msg by the key that owns pub,
	// or ErrNoSuchKey if no such key is held.
	Sign(pub kernelcrypto.PublicKey, msg []byte) (kernelcrypto.Signature, error)
}

// MemKeyStore is an in-memory KeyStore, suitable for tests and for a
// wallet process that holds its own keys directly.
type MemKeyStore map[kernelcrypto.PublicKey]func(msg []byte) kernelcrypto.Signature

// Sign implements KeyStore.
func (m MemKeyStore) Sign(pub kernelcrypto.PublicKey, msg []byte) (kernelcrypto.Signature, error) {
	sign, ok := m[pub]
	if !ok {
		return kernelcrypto.Signature{}, ErrNoSuchKey
	}
	return sign(msg), nil
}
