/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mocks holds hand-written test doubles for the bccsp interfaces.
package mocks

import (
	"bytes"
	"crypto"
	"errors"
	"hash"
	"reflect"

	"github.com/gmsuite/gmsuite/bccsp"
)

// MockBCCSP returns canned values. Sign also checks its arguments against
// the Sign*Arg fields.
type MockBCCSP struct {
	KeyGenValue   bccsp.Key
	KeyGenErr     error
	KeyDerivValue bccsp.Key
	KeyDerivErr   error
	GetKeyValue   bccsp.Key
	GetKeyErr     error

	KeyImportValue bccsp.Key
	KeyImportErr   error

	SignArgKey    bccsp.Key
	SignDigestArg []byte
	SignOptsArg   bccsp.SignerOpts
	SignValue     []byte
	SignErr       error

	VerifyValue bool
	VerifyErr   error
	ExpectedSig []byte

	EncryptError error
	DecryptError error

	HashVal []byte
	HashErr error
	HashFn  func() hash.Hash
}

func (m *MockBCCSP) KeyGen(bccsp.KeyGenOpts) (bccsp.Key, error) {
	return m.KeyGenValue, m.KeyGenErr
}

func (m *MockBCCSP) KeyDeriv(bccsp.Key, bccsp.KeyDerivOpts) (bccsp.Key, error) {
	return m.KeyDerivValue, m.KeyDerivErr
}

func (m *MockBCCSP) KeyImport(interface{}, bccsp.KeyImportOpts) (bccsp.Key, error) {
	return m.KeyImportValue, m.KeyImportErr
}

func (m *MockBCCSP) GetKey([]byte) (bccsp.Key, error) {
	return m.GetKeyValue, m.GetKeyErr
}

func (m *MockBCCSP) Hash([]byte, bccsp.HashOpts) ([]byte, error) {
	return m.HashVal, m.HashErr
}

func (m *MockBCCSP) GetHash(bccsp.HashOpts) (hash.Hash, error) {
	if m.HashFn == nil {
		return nil, m.HashErr
	}
	return m.HashFn(), m.HashErr
}

// Sign returns SignValue only when called with the expected key, message
// and opts. SM9 signs whole messages, so digest is the message.
func (m *MockBCCSP) Sign(k bccsp.Key, digest []byte, opts bccsp.SignerOpts) ([]byte, error) {
	switch {
	case !reflect.DeepEqual(m.SignArgKey, k):
		return nil, errors.New("invalid key")
	case !reflect.DeepEqual(m.SignDigestArg, digest):
		return nil, errors.New("invalid digest")
	case !reflect.DeepEqual(m.SignOptsArg, opts):
		return nil, errors.New("invalid opts")
	}
	return m.SignValue, m.SignErr
}

// Verify succeeds outright when VerifyValue is set, fails with VerifyErr
// when that is set, and otherwise compares against ExpectedSig.
func (m *MockBCCSP) Verify(_ bccsp.Key, signature, _ []byte, _ bccsp.SignerOpts) (bool, error) {
	if m.VerifyValue {
		return true, nil
	}
	if m.VerifyErr != nil {
		return false, m.VerifyErr
	}
	return bytes.Equal(m.ExpectedSig, signature), nil
}

// Encrypt is the identity transform unless EncryptError is set.
func (m *MockBCCSP) Encrypt(_ bccsp.Key, plaintext []byte, _ bccsp.EncrypterOpts) ([]byte, error) {
	if m.EncryptError != nil {
		return nil, m.EncryptError
	}
	return plaintext, nil
}

// Decrypt is the identity transform unless DecryptError is set.
func (m *MockBCCSP) Decrypt(_ bccsp.Key, ciphertext []byte, _ bccsp.DecrypterOpts) ([]byte, error) {
	if m.DecryptError != nil {
		return nil, m.DecryptError
	}
	return ciphertext, nil
}

type MockKey struct {
	BytesValue []byte
	BytesErr   error
	SKIValue   []byte
	Symm       bool
	PK         bccsp.Key
	PKErr      error
	Pvt        bool
}

func (m *MockKey) Bytes() ([]byte, error) { return m.BytesValue, m.BytesErr }
func (m *MockKey) SKI() []byte { return m.SKIValue }
func (m *MockKey) Symmetric() bool { return m.Symm }
func (m *MockKey) Private() bool { return m.Pvt }
func (m *MockKey) PublicKey() (bccsp.Key, error) { return m.PK, m.PKErr }

// MockIdentityKey is an SM9 public key bound to one user: a master public
// key in Bytes plus the user's UID and hid.
type MockIdentityKey struct {
	MockKey
	UID []byte
	Hid byte
}

func (m *MockIdentityKey) Identity() ([]byte, byte) {
	return m.UID, m.Hid
}

type SignerOpts struct {
	HashFuncValue crypto.Hash
}

func (o *SignerOpts) HashFunc() crypto.Hash {
	return o.HashFuncValue
}

type KeyStore struct {
	ReadOnlyValue bool
	GetKeyValue   bccsp.Key
	GetKeyErr     error
	StoreKeyErr   error
}

func (ks *KeyStore) ReadOnly() bool { return ks.ReadOnlyValue }
func (ks *KeyStore) GetKey([]byte) (bccsp.Key, error) { return ks.GetKeyValue, ks.GetKeyErr }
func (ks *KeyStore) StoreKey(bccsp.Key) error { return ks.StoreKeyErr }

type KeyGenOpts struct {
	EphemeralValue bool
}

func (*KeyGenOpts) Algorithm() string { return "Mock KeyGenOpts" }
func (o *KeyGenOpts) Ephemeral() bool { return o.EphemeralValue }

type KeyDerivOpts struct {
	EphemeralValue bool
}

func (*KeyDerivOpts) Algorithm() string { return "Mock KeyDerivOpts" }
func (o *KeyDerivOpts) Ephemeral() bool { return o.EphemeralValue }

type KeyImportOpts struct {
	EphemeralValue bool
}

func (*KeyImportOpts) Algorithm() string { return "Mock KeyImportOpts" }
func (o *KeyImportOpts) Ephemeral() bool { return o.EphemeralValue }

type (
	EncrypterOpts struct{}
	DecrypterOpts struct{}
	HashOpts      struct{}
)

func (HashOpts) Algorithm() string { return "Mock HashOpts" }
