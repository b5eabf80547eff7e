/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"crypto"
	"io"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/pkg/errors"
)

// PublicKey is what an SM9 signature verifies against: the master public
// key of the KGC together with the signer's identity.
type PublicKey struct {
	Master *sm9.SignMasterPublicKey
	UID    []byte
	Hid    byte
}

// Verify reports whether sig is a valid DER-encoded signature of msg.
func (pk *PublicKey) Verify(msg, sig []byte) bool {
	return sm9.VerifyASN1(pk.Master, pk.UID, pk.Hid, msg, sig)
}

// identity is implemented by keys bound to a single signer.
type identity interface {
	Identity() ([]byte, byte)
}

// bccspCryptoSigner is the BCCSP-based implementation of a crypto.Signer
type bccspCryptoSigner struct {
	csp bccsp.BCCSP
	key bccsp.Key
	pk  interface{}
}

// New returns a new BCCSP-based crypto.Signer
// for the given BCCSP instance and SM9 user signing key.
func New(csp bccsp.BCCSP, key bccsp.Key) (crypto.Signer, error) {
	// Validate arguments
	if csp == nil {
		return nil, errors.New("bccsp instance must be different from nil.")
	}
	if key == nil {
		return nil, errors.New("key must be different from nil.")
	}
	if key.Symmetric() {
		return nil, errors.New("key must be asymmetric.")
	}

	// Marshall the bccsp public key as a crypto.PublicKey
	pub, err := key.PublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed getting public key")
	}

	raw, err := pub.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "failed marshalling public key")
	}

	master, err := sm9.UnmarshalSignMasterPublicKeyASN1(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed parsing master public key")
	}

	pk := &PublicKey{Master: master, Hid: sm9.HidSign}
	if id, ok := pub.(identity); ok {
		pk.UID, pk.Hid = id.Identity()
	}

	return &bccspCryptoSigner{csp: csp, key: key, pk: pk}, nil
}

// Public returns the public key corresponding to the opaque,
// private key.
func (s *bccspCryptoSigner) Public() crypto.PublicKey {
	return s.pk
}

// Sign signs msg with the private key. SM9 hashes the full message
// internally, so the digest argument carries the message itself and
// opts.HashFunc() is expected to be zero.
//
// The signature is the DER encoding of (h, S).
func (s *bccspCryptoSigner) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	return s.csp.Sign(s.key, digest, opts)
}
