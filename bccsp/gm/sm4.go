/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"crypto/rand"
	"io"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/internal/gmcipher"
	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm4"
)

// SM4Encrypt encrypts exactly one block.
func SM4Encrypt(key, src []byte) ([]byte, error) {
	if len(src) != gmcipher.BlockSize {
		return nil, errors.Errorf("Invalid plaintext. Single block mode needs [%d] bytes, got [%d]", gmcipher.BlockSize, len(src))
	}
	block, err := sm4.NewCipher(key)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, len(src))
	block.Encrypt(dst, src)
	return dst, nil
}

// SM4Decrypt decrypts exactly one block.
func SM4Decrypt(key, src []byte) ([]byte, error) {
	if len(src) != gmcipher.BlockSize {
		return nil, errors.Errorf("Invalid ciphertext. Single block mode needs [%d] bytes, got [%d]", gmcipher.BlockSize, len(src))
	}
	block, err := sm4.NewCipher(key)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, len(src))
	block.Decrypt(dst, src)
	return dst, nil
}

type sm4Encryptor struct {
	prng io.Reader
}

// Encrypt encrypts plaintext with an SM4 key. Nil opts select the raw
// single-block transform.
func (e *sm4Encryptor) Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) ([]byte, error) {
	key := k.(*sm4PrivateKey).privKey

	switch o := opts.(type) {
	case nil:
		return SM4Encrypt(key, plaintext)
	case *bccsp.SM4ECBPKCS7ModeOpts, bccsp.SM4ECBPKCS7ModeOpts:
		return gmcipher.SM4ECBPKCS7Encrypt(key, plaintext)
	case *bccsp.SM4CBCPKCS7ModeOpts:
		return e.encryptCBC(key, plaintext, *o)
	case bccsp.SM4CBCPKCS7ModeOpts:
		return e.encryptCBC(key, plaintext, o)
	default:
		return nil, errors.Errorf("Mode not recognized [%s]", opts)
	}
}

func (e *sm4Encryptor) encryptCBC(key, plaintext []byte, o bccsp.SM4CBCPKCS7ModeOpts) ([]byte, error) {
	if len(o.IV) != 0 && o.PRNG != nil {
		return nil, errors.New("Invalid options. Either IV or PRNG should be different from nil, or both nil.")
	}
	if len(o.IV) != 0 {
		return gmcipher.SM4CBCPKCS7Encrypt(nil, key, o.IV, plaintext)
	}
	prng := o.PRNG
	if prng == nil {
		prng = e.prng
	}
	if prng == nil {
		prng = rand.Reader
	}
	return gmcipher.SM4CBCPKCS7Encrypt(prng, key, nil, plaintext)
}

type sm4Decryptor struct{}

// Decrypt reverses sm4Encryptor.Encrypt for the same opts.
func (*sm4Decryptor) Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) ([]byte, error) {
	key := k.(*sm4PrivateKey).privKey

	switch opts.(type) {
	case nil:
		return SM4Decrypt(key, ciphertext)
	case *bccsp.SM4ECBPKCS7ModeOpts, bccsp.SM4ECBPKCS7ModeOpts:
		return gmcipher.SM4ECBPKCS7Decrypt(key, ciphertext)
	case *bccsp.SM4CBCPKCS7ModeOpts, bccsp.SM4CBCPKCS7ModeOpts:
		return gmcipher.SM4CBCPKCS7Decrypt(key, ciphertext)
	default:
		return nil, errors.Errorf("Mode not recognized [%s]", opts)
	}
}
