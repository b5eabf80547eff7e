/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"hash"

	"github.com/gmsuite/gmsuite/bccsp"
)

// The CSP looks every request up by the reflect.Type of its opts (key
// generation, import and hashing) or of its key (everything else) and hands
// it to one of the handlers below. Handlers receive arguments the CSP has
// already checked for nil and may type-assert k without a second check.

// KeyGenerator creates SM9 master keys and SM4/ZUC secret keys.
type KeyGenerator interface {
	KeyGen(opts bccsp.KeyGenOpts) (k bccsp.Key, err error)
}

// KeyDeriver issues SM9 user keys from a master private key.
type KeyDeriver interface {
	KeyDeriv(k bccsp.Key, opts bccsp.KeyDerivOpts) (dk bccsp.Key, err error)
}

// KeyImporter turns raw bytes (DER master keys, symmetric key material) into
// a provider key.
type KeyImporter interface {
	KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (k bccsp.Key, err error)
}

// Encryptor handles SM9 identity encryption and the SM4/ZUC ciphers.
type Encryptor interface {
	Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) (ciphertext []byte, err error)
}

// Decryptor is the inverse of Encryptor for private and secret keys.
type Decryptor interface {
	Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) (plaintext []byte, err error)
}

// Signer produces DER SM9 signatures. The digest argument carries the whole
// message, since SM9 hashes it together with the pairing value.
type Signer interface {
	Sign(k bccsp.Key, digest []byte, opts bccsp.SignerOpts) (signature []byte, err error)
}

// Verifier checks SM9 signatures against an identity, a master public key
// with the signer named in opts, or the signer's own private key.
type Verifier interface {
	Verify(k bccsp.Key, signature, digest []byte, opts bccsp.SignerOpts) (valid bool, err error)
}

// KeyEncapsulator runs the SM9 key encapsulation mechanism towards the
// identity named by k, or by opts when k is a master public key. It returns
// the shared key and the encoded point C.
type KeyEncapsulator interface {
	Encapsulate(k bccsp.Key, opts *bccsp.SM9KeyEncapsulationOpts) (key, encapsulation []byte, err error)
}

// KeyDecapsulator recovers the shared key from C with an encryption user key.
type KeyDecapsulator interface {
	Decapsulate(k bccsp.Key, encapsulation []byte, opts *bccsp.SM9KeyEncapsulationOpts) (key []byte, err error)
}

// Hasher covers SM3 and the SHA-2/SHA-3 digests kept for interoperability.
type Hasher interface {
	Hash(msg []byte, opts bccsp.HashOpts) (hash []byte, err error)
	GetHash(opts bccsp.HashOpts) (h hash.Hash, err error)
}
