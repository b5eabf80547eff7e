/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm3"
)

const (
	skiUserKey     byte = 0x01
	skiIdentityKey byte = 0x02
)

func sm3Digest(parts ...[]byte) []byte {
	h := sm3.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

func identitySKI(prefix byte, point, uid []byte, hid byte) []byte {
	return sm3Digest([]byte{prefix}, uid, []byte{hid}, point)
}

type sm9SignMasterPrivateKey struct {
	privKey *sm9.SignMasterPrivateKey
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *sm9SignMasterPrivateKey) Bytes() ([]byte, error) {
	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *sm9SignMasterPrivateKey) SKI() []byte {
	if k.privKey == nil {
		return nil
	}
	return sm3Digest(k.privKey.Public.Ppub.Marshal())
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *sm9SignMasterPrivateKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *sm9SignMasterPrivateKey) Private() bool {
	return true
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *sm9SignMasterPrivateKey) PublicKey() (bccsp.Key, error) {
	return &sm9SignMasterPublicKey{pubKey: k.privKey.Public}, nil
}

func (k *sm9SignMasterPrivateKey) algorithm() string { return bccsp.SM9SignMaster }

type sm9SignMasterPublicKey struct {
	pubKey *sm9.SignMasterPublicKey
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *sm9SignMasterPublicKey) Bytes() ([]byte, error) {
	raw, err := k.pubKey.MarshalASN1()
	if err != nil {
		return nil, errors.Wrap(err, "Failed marshalling key")
	}
	return raw, nil
}

// SKI returns the subject key identifier of this key.
func (k *sm9SignMasterPublicKey) SKI() []byte {
	if k.pubKey == nil {
		return nil
	}
	return sm3Digest(k.pubKey.Ppub.Marshal())
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *sm9SignMasterPublicKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *sm9SignMasterPublicKey) Private() bool {
	return false
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *sm9SignMasterPublicKey) PublicKey() (bccsp.Key, error) {
	return k, nil
}

func (k *sm9SignMasterPublicKey) algorithm() string { return bccsp.SM9SignMaster }

type sm9EncryptMasterPrivateKey struct {
	privKey *sm9.EncryptMasterPrivateKey
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *sm9EncryptMasterPrivateKey) Bytes() ([]byte, error) {
	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *sm9EncryptMasterPrivateKey) SKI() []byte {
	if k.privKey == nil {
		return nil
	}
	return sm3Digest(k.privKey.Public.Ppub.Marshal())
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *sm9EncryptMasterPrivateKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *sm9EncryptMasterPrivateKey) Private() bool {
	return true
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *sm9EncryptMasterPrivateKey) PublicKey() (bccsp.Key, error) {
	return &sm9EncryptMasterPublicKey{pubKey: k.privKey.Public}, nil
}

func (k *sm9EncryptMasterPrivateKey) algorithm() string { return bccsp.SM9EncryptMaster }

type sm9EncryptMasterPublicKey struct {
	pubKey *sm9.EncryptMasterPublicKey
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *sm9EncryptMasterPublicKey) Bytes() ([]byte, error) {
	raw, err := k.pubKey.MarshalASN1()
	if err != nil {
		return nil, errors.Wrap(err, "Failed marshalling key")
	}
	return raw, nil
}

// SKI returns the subject key identifier of this key.
func (k *sm9EncryptMasterPublicKey) SKI() []byte {
	if k.pubKey == nil {
		return nil
	}
	return sm3Digest(k.pubKey.Ppub.Marshal())
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *sm9EncryptMasterPublicKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *sm9EncryptMasterPublicKey) Private() bool {
	return false
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *sm9EncryptMasterPublicKey) PublicKey() (bccsp.Key, error) {
	return k, nil
}

func (k *sm9EncryptMasterPublicKey) algorithm() string { return bccsp.SM9EncryptMaster }

// sm9SignPrivateKey is the signing key of one identity.
type sm9SignPrivateKey struct {
	privKey *sm9.SignPrivateKey
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *sm9SignPrivateKey) Bytes() ([]byte, error) {
	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *sm9SignPrivateKey) SKI() []byte {
	if k.privKey == nil {
		return nil
	}
	return identitySKI(skiUserKey, k.privKey.D.Marshal(), k.privKey.UID, k.privKey.Hid)
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *sm9SignPrivateKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *sm9SignPrivateKey) Private() bool {
	return true
}

// PublicKey returns the master public key bound to this key's identity.
func (k *sm9SignPrivateKey) PublicKey() (bccsp.Key, error) {
	return &sm9SignIdentityKey{
		pubKey: k.privKey.Master,
		uid:    k.privKey.UID,
		hid:    k.privKey.Hid,
	}, nil
}

func (k *sm9SignPrivateKey) algorithm() string { return bccsp.SM9 }

// sm9SignIdentityKey verifies signatures of a single signer.
type sm9SignIdentityKey struct {
	pubKey *sm9.SignMasterPublicKey
	uid    []byte
	hid    byte
}

// Bytes returns the encoding of the master public key.
func (k *sm9SignIdentityKey) Bytes() ([]byte, error) {
	return (&sm9SignMasterPublicKey{pubKey: k.pubKey}).Bytes()
}

// SKI returns the subject key identifier of this key.
func (k *sm9SignIdentityKey) SKI() []byte {
	if k.pubKey == nil {
		return nil
	}
	return identitySKI(skiIdentityKey, k.pubKey.Ppub.Marshal(), k.uid, k.hid)
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *sm9SignIdentityKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *sm9SignIdentityKey) Private() bool {
	return false
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *sm9SignIdentityKey) PublicKey() (bccsp.Key, error) {
	return k, nil
}

func (k *sm9SignIdentityKey) algorithm() string { return bccsp.SM9 }

// Identity returns the user identifier and hid the key verifies for.
func (k *sm9SignIdentityKey) Identity() ([]byte, byte) {
	return k.uid, k.hid
}

// sm9EncryptPrivateKey is the decryption key of one identity.
type sm9EncryptPrivateKey struct {
	privKey *sm9.EncryptPrivateKey
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *sm9EncryptPrivateKey) Bytes() ([]byte, error) {
	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *sm9EncryptPrivateKey) SKI() []byte {
	if k.privKey == nil {
		return nil
	}
	return identitySKI(skiUserKey, k.privKey.D.Marshal(), k.privKey.UID, k.privKey.Hid)
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *sm9EncryptPrivateKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *sm9EncryptPrivateKey) Private() bool {
	return true
}

// PublicKey returns the master public key bound to this key's identity.
func (k *sm9EncryptPrivateKey) PublicKey() (bccsp.Key, error) {
	return &sm9EncryptIdentityKey{
		pubKey: k.privKey.Master,
		uid:    k.privKey.UID,
		hid:    k.privKey.Hid,
	}, nil
}

func (k *sm9EncryptPrivateKey) algorithm() string { return bccsp.SM9 }

// sm9EncryptIdentityKey encrypts to a single recipient.
type sm9EncryptIdentityKey struct {
	pubKey *sm9.EncryptMasterPublicKey
	uid    []byte
	hid    byte
}

// Bytes returns the encoding of the master public key.
func (k *sm9EncryptIdentityKey) Bytes() ([]byte, error) {
	return (&sm9EncryptMasterPublicKey{pubKey: k.pubKey}).Bytes()
}

// SKI returns the subject key identifier of this key.
func (k *sm9EncryptIdentityKey) SKI() []byte {
	if k.pubKey == nil {
		return nil
	}
	return identitySKI(skiIdentityKey, k.pubKey.Ppub.Marshal(), k.uid, k.hid)
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *sm9EncryptIdentityKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *sm9EncryptIdentityKey) Private() bool {
	return false
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *sm9EncryptIdentityKey) PublicKey() (bccsp.Key, error) {
	return k, nil
}

func (k *sm9EncryptIdentityKey) algorithm() string { return bccsp.SM9 }
