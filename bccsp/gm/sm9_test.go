/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"math/big"
	"testing"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSM9SignVerify(t *testing.T) {
	t.Parallel()

	csp := newTestCSP(t)

	master, err := csp.KeyGen(&bccsp.SM9SignMasterKeyGenOpts{})
	require.NoError(t, err)
	assert.True(t, master.Private())
	assert.False(t, master.Symmetric())
	_, err = master.Bytes()
	assert.EqualError(t, err, "Not supported.")

	user, err := csp.KeyDeriv(master, &bccsp.SM9UserKeyDerivOpts{ID: []byte("Alice")})
	require.NoError(t, err)
	assert.Equal(t, sm9.HidSign, user.(*sm9SignPrivateKey).privKey.Hid)

	stored, err := csp.GetKey(user.SKI())
	require.NoError(t, err)
	assert.Equal(t, user, stored)

	msg := []byte("Chinese IBS standard")
	sig, err := csp.Sign(user, msg, nil)
	require.NoError(t, err)

	valid, err := csp.Verify(user, sig, msg, nil)
	require.NoError(t, err)
	assert.True(t, valid)

	identity, err := user.PublicKey()
	require.NoError(t, err)
	assert.False(t, identity.Private())
	valid, err = csp.Verify(identity, sig, msg, nil)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = csp.Verify(identity, sig, []byte("another message"), nil)
	require.NoError(t, err)
	assert.False(t, valid)

	masterPub, err := master.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, master.SKI(), masterPub.SKI())

	valid, err = csp.Verify(masterPub, sig, msg, &bccsp.SM9SignerOpts{UID: []byte("Alice")})
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = csp.Verify(masterPub, sig, msg, &bccsp.SM9SignerOpts{UID: []byte("Bob")})
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = csp.Verify(masterPub, sig, msg, nil)
	assert.Contains(t, err.Error(), "Verifying against a master public key needs SM9SignerOpts with a UID.")

	valid, err = csp.Verify(identity, []byte{0x30, 0x00}, msg, nil)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSM9KeyDerivInvalidOpts(t *testing.T) {
	t.Parallel()

	csp := newTestCSP(t)

	master, err := csp.KeyGen(&bccsp.SM9EncryptMasterKeyGenOpts{Temporary: true})
	require.NoError(t, err)

	_, err = csp.KeyDeriv(master, &bccsp.SM9UserKeyDerivOpts{Temporary: true})
	assert.Contains(t, err.Error(), "Invalid opts. ID must not be empty.")

	user, err := csp.KeyDeriv(master, &bccsp.SM9UserKeyDerivOpts{Temporary: true, ID: []byte("Bob"), Hid: sm9.HidExchange})
	require.NoError(t, err)
	assert.Equal(t, sm9.HidExchange, user.(*sm9EncryptPrivateKey).privKey.Hid)
}

func TestSM9SignMasterImport(t *testing.T) {
	t.Parallel()

	csp := newTestCSP(t)

	d, ok := new(big.Int).SetString("0130E78459D78545CB54C587E02CF480CE0B66340F319F348A1D5B1F2DC5F4", 16)
	require.True(t, ok)

	master, err := csp.KeyImport(d, &bccsp.SM9SignMasterPrivateKeyImportOpts{Temporary: true})
	require.NoError(t, err)

	der, err := master.(*sm9SignMasterPrivateKey).privKey.MarshalASN1()
	require.NoError(t, err)
	fromDER, err := csp.KeyImport(der, &bccsp.SM9SignMasterPrivateKeyImportOpts{Temporary: true})
	require.NoError(t, err)
	assert.Equal(t, master.SKI(), fromDER.SKI())

	pub, err := master.PublicKey()
	require.NoError(t, err)
	raw, err := pub.Bytes()
	require.NoError(t, err)

	imported, err := csp.KeyImport(raw, &bccsp.SM9SignMasterPublicKeyImportOpts{Temporary: true})
	require.NoError(t, err)
	assert.Equal(t, pub.SKI(), imported.SKI())

	imported, err = csp.KeyImport(pub.(*sm9SignMasterPublicKey).pubKey, &bccsp.SM9SignMasterPublicKeyImportOpts{Temporary: true})
	require.NoError(t, err)
	assert.Equal(t, pub.SKI(), imported.SKI())

	_, err = csp.KeyImport([]byte{0x30, 0x01, 0x00}, &bccsp.SM9SignMasterPublicKeyImportOpts{Temporary: true})
	assert.Contains(t, err.Error(), "Failed converting DER to SM9 sign master public key")

	_, err = csp.KeyImport(big.NewInt(0), &bccsp.SM9SignMasterPrivateKeyImportOpts{Temporary: true})
	assert.Contains(t, err.Error(), "Failed importing SM9 sign master private key")

	_, err = csp.KeyImport(42, &bccsp.SM9SignMasterPrivateKeyImportOpts{Temporary: true})
	assert.Contains(t, err.Error(), "Invalid raw material. Expected *big.Int or DER bytes.")
}

func TestSM9EncryptDecrypt(t *testing.T) {
	t.Parallel()

	csp := newTestCSP(t)

	master, err := csp.KeyGen(&bccsp.SM9EncryptMasterKeyGenOpts{})
	require.NoError(t, err)
	user, err := csp.KeyDeriv(master, &bccsp.SM9UserKeyDerivOpts{ID: []byte("Bob")})
	require.NoError(t, err)
	identity, err := user.PublicKey()
	require.NoError(t, err)
	masterPub, err := master.PublicKey()
	require.NoError(t, err)

	msg := []byte("Chinese IBE standard")
	for _, mode := range []bccsp.SM9EncMode{bccsp.SM9EncModeXOR, bccsp.SM9EncModeSM4ECB} {
		opts := &bccsp.SM9EncrypterOpts{Mode: mode}

		ct, err := csp.Encrypt(identity, msg, opts)
		require.NoError(t, err)
		pt, err := csp.Decrypt(user, ct, opts)
		require.NoError(t, err)
		assert.Equal(t, msg, pt)

		ct, err = csp.Encrypt(masterPub, msg, &bccsp.SM9EncrypterOpts{UID: []byte("Bob"), Mode: mode})
		require.NoError(t, err)
		pt, err = csp.Decrypt(user, ct, opts)
		require.NoError(t, err)
		assert.Equal(t, msg, pt)
	}

	ct, err := csp.Encrypt(identity, msg, nil)
	require.NoError(t, err)
	assert.Len(t, ct, 65+32+len(msg))

	ct[len(ct)-1] ^= 0x01
	_, err = csp.Decrypt(user, ct, nil)
	assert.Contains(t, err.Error(), "Failed decrypting with opts [")

	_, err = csp.Encrypt(masterPub, msg, nil)
	assert.Contains(t, err.Error(), "Encrypting to a master public key needs SM9EncrypterOpts with a UID.")

	_, err = csp.Encrypt(identity, msg, &bccsp.SM9EncrypterOpts{Mode: 7})
	assert.EqualError(t, err, "Mode not recognized [7]")

	_, err = csp.Encrypt(identity, msg, &bccsp.SM4ECBPKCS7ModeOpts{})
	assert.Contains(t, err.Error(), "Mode not recognized")
}

func TestSM9EncapsulateDecapsulate(t *testing.T) {
	t.Parallel()

	csp := newTestCSP(t)

	master, err := csp.KeyGen(&bccsp.SM9EncryptMasterKeyGenOpts{Temporary: true})
	require.NoError(t, err)
	user, err := csp.KeyDeriv(master, &bccsp.SM9UserKeyDerivOpts{Temporary: true, ID: []byte("Bob")})
	require.NoError(t, err)
	identity, err := user.PublicKey()
	require.NoError(t, err)

	opts := &bccsp.SM9KeyEncapsulationOpts{KeyLen: 32}
	key, c, err := csp.Encapsulate(identity, opts)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	unwrapped, err := csp.Decapsulate(user, c, opts)
	require.NoError(t, err)
	assert.Equal(t, key, unwrapped)

	masterPub, err := master.PublicKey()
	require.NoError(t, err)
	key, c, err = csp.Encapsulate(masterPub, &bccsp.SM9KeyEncapsulationOpts{UID: []byte("Bob"), KeyLen: 16})
	require.NoError(t, err)
	unwrapped, err = csp.Decapsulate(user, c, &bccsp.SM9KeyEncapsulationOpts{KeyLen: 16})
	require.NoError(t, err)
	assert.Equal(t, key, unwrapped)

	_, _, err = csp.Encapsulate(masterPub, opts)
	assert.Contains(t, err.Error(), "Invalid opts. UID must not be empty.")

	_, _, err = csp.Encapsulate(user, opts)
	assert.Contains(t, err.Error(), "Unsupported 'EncapsulateKey' provided [")

	_, _, err = csp.Encapsulate(identity, nil)
	assert.EqualError(t, err, "Invalid opts. It must not be nil.")

	_, err = csp.Decapsulate(identity, c, opts)
	assert.Contains(t, err.Error(), "Unsupported 'DecapsulateKey' provided [")

	_, err = csp.Decapsulate(user, []byte{0x04, 0x01}, opts)
	assert.Contains(t, err.Error(), "Invalid encapsulation")
}

func TestSM9KeyExchange(t *testing.T) {
	t.Parallel()

	csp := newTestCSP(t)

	master, err := csp.KeyGen(&bccsp.SM9EncryptMasterKeyGenOpts{Temporary: true})
	require.NoError(t, err)
	alice, err := csp.KeyDeriv(master, &bccsp.SM9UserKeyDerivOpts{Temporary: true, ID: []byte("Alice"), Hid: sm9.HidExchange})
	require.NoError(t, err)
	bob, err := csp.KeyDeriv(master, &bccsp.SM9UserKeyDerivOpts{Temporary: true, ID: []byte("Bob"), Hid: sm9.HidExchange})
	require.NoError(t, err)

	for _, confirmation := range []bool{true, false} {
		initiator, err := csp.KeyExchange(alice, &bccsp.SM9KeyExchangeOpts{PeerUID: []byte("Bob"), KeyLen: 16, Confirmation: confirmation})
		require.NoError(t, err)
		responder, err := csp.KeyExchange(bob, &bccsp.SM9KeyExchangeOpts{PeerUID: []byte("Alice"), KeyLen: 16, Confirmation: confirmation})
		require.NoError(t, err)

		ra, err := initiator.Init()
		require.NoError(t, err)
		rb, sb, err := responder.Respond(ra)
		require.NoError(t, err)
		keyA, sa, err := initiator.ConfirmResponder(rb, sb)
		require.NoError(t, err)
		keyB, err := responder.ConfirmInitiator(sa)
		require.NoError(t, err)

		assert.Len(t, keyA, 16)
		assert.Equal(t, keyA, keyB)
		if confirmation {
			assert.Len(t, sb, 32)
			assert.Len(t, sa, 32)
		} else {
			assert.Nil(t, sb)
			assert.Nil(t, sa)
		}
	}

	x, err := csp.KeyExchange(alice, &bccsp.SM9KeyExchangeOpts{PeerUID: []byte("Bob"), KeyLen: 16})
	require.NoError(t, err)
	_, _, err = x.Respond([]byte{0x04})
	assert.Contains(t, err.Error(), "Invalid ephemeral point")

	_, err = csp.KeyExchange(alice, &bccsp.SM9KeyExchangeOpts{KeyLen: 16})
	assert.Contains(t, err.Error(), "Failed starting key exchange with opts [")

	signMaster, err := csp.KeyGen(&bccsp.SM9SignMasterKeyGenOpts{Temporary: true})
	require.NoError(t, err)
	_, err = csp.KeyExchange(signMaster, &bccsp.SM9KeyExchangeOpts{PeerUID: []byte("Bob"), KeyLen: 16})
	assert.Contains(t, err.Error(), "Unsupported 'KeyExchangeKey' provided [")
}
