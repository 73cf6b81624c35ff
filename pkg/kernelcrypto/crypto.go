// Package kernelcrypto wraps the two cryptographic primitives the kernel
// depends on: content-addressing hashes and redeemer signatures. Both are
// thin wrappers over ecosystem libraries, not new primitives (spec §4.2,
// non-goal: "defining new cryptographic primitives").
package kernelcrypto

import (
	"crypto/ed25519"
	cryptorand "crypto/rand"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the width of every content-addressing digest in the kernel:
// transaction hashes, OutputRef.TxHash, and kitty DNA.
const HashSize = 32

// Hash256 is a 32-byte BLAKE2-256 digest.
type Hash256 [HashSize]byte

// IsZero reports whether h is the all-zero genesis hash.
func (h Hash256) IsZero() bool {
	return h == Hash256{}
}

// Hash computes the canonical content-addressing digest of b.
func Hash(b []byte) Hash256 {
	// blake2b.New256 never errors for a nil key.
	h, _ := blake2b.New256(nil)
	h.Write(b)
	var out Hash256
	copy(out[:], h.Sum(nil))
	return out
}

// PublicKeySize is the width of an sr25519-substitute (ed25519) public key.
const PublicKeySize = ed25519.PublicKeySize

// SignatureSize is the width of an sr25519-substitute (ed25519) signature.
const SignatureSize = ed25519.SignatureSize

// PublicKey identifies a signatory. The spec's sr25519 is substituted with
// ed25519, which it explicitly sanctions as an acceptable equivalent
// (§4.2: "ed25519-style semantics are acceptable substitutes").
type PublicKey [PublicKeySize]byte

// Signature is a detached ed25519 signature over a message.
type Signature [SignatureSize]byte

// ErrInvalidSignature is returned by Verify when a signature does not
// verify against the supplied message and public key.
var ErrInvalidSignature = errors.New("kernelcrypto: invalid signature")

// GenerateKeyPair returns a fresh (public, private) key pair.
func GenerateKeyPair() (PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(cryptorand.Reader)
	if err != nil {
		return PublicKey{}, nil, err
	}
	var out PublicKey
	copy(out[:], pub)
	return out, priv, nil
}

// Sign signs msg with the supplied private key.
func Sign(priv ed25519.PrivateKey, msg []byte) Signature {
	var out Signature
	copy(out[:], ed25519.Sign(priv, msg))
	return out
}

// Verify reports whether sig is a valid signature over msg by pub.
func Verify(pub PublicKey, msg []byte, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig[:])
}
