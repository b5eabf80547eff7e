/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"io"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
)

type sm9Signer struct {
	rand io.Reader
}

// Sign signs msg, which SM9 hashes itself, and returns the DER signature.
func (s *sm9Signer) Sign(k bccsp.Key, msg []byte, opts bccsp.SignerOpts) ([]byte, error) {
	return sm9.SignASN1(s.rand, k.(*sm9SignPrivateKey).privKey, msg)
}

type sm9SignIdentityKeyVerifier struct{}

func (v *sm9SignIdentityKeyVerifier) Verify(k bccsp.Key, signature, msg []byte, opts bccsp.SignerOpts) (bool, error) {
	id := k.(*sm9SignIdentityKey)
	return sm9.VerifyASN1(id.pubKey, id.uid, id.hid, msg, signature), nil
}

type sm9SignPrivateKeyVerifier struct{}

func (v *sm9SignPrivateKeyVerifier) Verify(k bccsp.Key, signature, msg []byte, opts bccsp.SignerOpts) (bool, error) {
	priv := k.(*sm9SignPrivateKey).privKey
	return sm9.VerifyASN1(priv.Master, priv.UID, priv.Hid, msg, signature), nil
}

type sm9SignMasterPublicKeyVerifier struct{}

func (v *sm9SignMasterPublicKeyVerifier) Verify(k bccsp.Key, signature, msg []byte, opts bccsp.SignerOpts) (bool, error) {
	o, ok := opts.(*bccsp.SM9SignerOpts)
	if !ok || o == nil || len(o.UID) == 0 {
		return false, errors.New("Invalid opts. Verifying against a master public key needs SM9SignerOpts with a UID.")
	}
	hid := o.Hid
	if hid == 0 {
		hid = sm9.HidSign
	}
	return sm9.VerifyASN1(k.(*sm9SignMasterPublicKey).pubKey, o.UID, hid, msg, signature), nil
}

func sm9EncType(mode bccsp.SM9EncMode) (*sm9.EncrypterOpts, error) {
	switch mode {
	case bccsp.SM9EncModeXOR:
		return &sm9.EncrypterOpts{EncType: sm9.EncTypeXOR}, nil
	case bccsp.SM9EncModeSM4ECB:
		return &sm9.EncrypterOpts{EncType: sm9.EncTypeSM4ECB}, nil
	default:
		return nil, errors.Errorf("Mode not recognized [%d]", mode)
	}
}

// sm9Opts reads mode and recipient from opts. Nil opts select XOR mode.
func sm9Opts(opts interface{}) (*bccsp.SM9EncrypterOpts, error) {
	switch o := opts.(type) {
	case nil:
		return &bccsp.SM9EncrypterOpts{}, nil
	case *bccsp.SM9EncrypterOpts:
		if o == nil {
			return &bccsp.SM9EncrypterOpts{}, nil
		}
		return o, nil
	case bccsp.SM9EncrypterOpts:
		return &o, nil
	default:
		return nil, errors.Errorf("Mode not recognized [%s]", opts)
	}
}

type sm9Encryptor struct {
	rand io.Reader
}

func (e *sm9Encryptor) Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) ([]byte, error) {
	o, err := sm9Opts(opts)
	if err != nil {
		return nil, err
	}
	encOpts, err := sm9EncType(o.Mode)
	if err != nil {
		return nil, err
	}

	switch key := k.(type) {
	case *sm9EncryptIdentityKey:
		return sm9.Encrypt(e.rand, key.pubKey, key.uid, key.hid, plaintext, encOpts)
	case *sm9EncryptMasterPublicKey:
		if len(o.UID) == 0 {
			return nil, errors.New("Invalid opts. Encrypting to a master public key needs SM9EncrypterOpts with a UID.")
		}
		hid := o.Hid
		if hid == 0 {
			hid = sm9.HidEncrypt
		}
		return sm9.Encrypt(e.rand, key.pubKey, o.UID, hid, plaintext, encOpts)
	default:
		return nil, errors.Errorf("Unsupported 'EncryptKey' provided [%v]", k)
	}
}

type sm9Decryptor struct{}

func (*sm9Decryptor) Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) ([]byte, error) {
	o, err := sm9Opts(opts)
	if err != nil {
		return nil, err
	}
	encOpts, err := sm9EncType(o.Mode)
	if err != nil {
		return nil, err
	}

	priv := k.(*sm9EncryptPrivateKey).privKey
	return sm9.Decrypt(priv, priv.UID, ciphertext, encOpts)
}

type sm9IdentityKeyEncapsulator struct {
	rand io.Reader
}

func (e *sm9IdentityKeyEncapsulator) Encapsulate(k bccsp.Key, opts *bccsp.SM9KeyEncapsulationOpts) ([]byte, []byte, error) {
	id := k.(*sm9EncryptIdentityKey)
	return wrapKey(e.rand, id.pubKey, id.uid, id.hid, opts.KeyLen)
}

type sm9MasterPublicKeyEncapsulator struct {
	rand io.Reader
}

func (e *sm9MasterPublicKeyEncapsulator) Encapsulate(k bccsp.Key, opts *bccsp.SM9KeyEncapsulationOpts) ([]byte, []byte, error) {
	hid := opts.Hid
	if hid == 0 {
		hid = sm9.HidEncrypt
	}
	return wrapKey(e.rand, k.(*sm9EncryptMasterPublicKey).pubKey, opts.UID, hid, opts.KeyLen)
}

func wrapKey(rand io.Reader, pub *sm9.EncryptMasterPublicKey, uid []byte, hid byte, klen int) ([]byte, []byte, error) {
	if len(uid) == 0 {
		return nil, nil, errors.New("Invalid opts. UID must not be empty.")
	}
	key, c, err := sm9.WrapKey(rand, pub, uid, hid, klen)
	if err != nil {
		return nil, nil, err
	}
	return key, c.Marshal(), nil
}

type sm9KeyDecapsulator struct{}

func (d *sm9KeyDecapsulator) Decapsulate(k bccsp.Key, encapsulation []byte, opts *bccsp.SM9KeyEncapsulationOpts) ([]byte, error) {
	priv := k.(*sm9EncryptPrivateKey).privKey

	c := &bn256.G1{}
	if err := c.Unmarshal(encapsulation); err != nil {
		return nil, errors.Wrap(err, "Invalid encapsulation")
	}
	return sm9.UnwrapKey(priv, priv.UID, c, opts.KeyLen)
}
