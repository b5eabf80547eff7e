/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package gmcipher holds the SM4 block modes shared by the SM9 hybrid
// encryption and the GM crypto provider.
package gmcipher

import (
	"bytes"
	"crypto/cipher"
	"io"

	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm4"
)

// BlockSize is the SM4 block size in bytes. It is also the key size.
const BlockSize = 16

func pkcs7Padding(src []byte) []byte {
	padding := BlockSize - len(src)%BlockSize
	padtext := bytes.Repeat([]byte{byte(padding)}, padding)
	return append(src[:len(src):len(src)], padtext...)
}

func pkcs7UnPadding(src []byte) ([]byte, error) {
	length := len(src)
	if length == 0 || length%BlockSize != 0 {
		return nil, errors.New("Invalid pkcs7 padding (len(src) is not a multiple of the block size)")
	}
	unpadding := int(src[length-1])

	if unpadding > BlockSize || unpadding == 0 {
		return nil, errors.New("Invalid pkcs7 padding (unpadding > BlockSize || unpadding == 0)")
	}

	pad := src[len(src)-unpadding:]
	for i := 0; i < unpadding; i++ {
		if pad[i] != byte(unpadding) {
			return nil, errors.New("Invalid pkcs7 padding (pad[i] != unpadding)")
		}
	}

	return src[:(length - unpadding)], nil
}

// SM4ECBPKCS7Encrypt pads src with PKCS#7 and encrypts it block by block.
func SM4ECBPKCS7Encrypt(key, src []byte) ([]byte, error) {
	block, err := sm4.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating SM4 cipher")
	}

	tmp := pkcs7Padding(src)
	dst := make([]byte, len(tmp))
	for i := 0; i < len(tmp); i += BlockSize {
		block.Encrypt(dst[i:i+BlockSize], tmp[i:i+BlockSize])
	}
	return dst, nil
}

// SM4ECBPKCS7Decrypt reverses SM4ECBPKCS7Encrypt.
func SM4ECBPKCS7Decrypt(key, src []byte) ([]byte, error) {
	if len(src) == 0 || len(src)%BlockSize != 0 {
		return nil, errors.New("Invalid ciphertext. It must be a multiple of the block size")
	}
	block, err := sm4.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating SM4 cipher")
	}

	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += BlockSize {
		block.Decrypt(dst[i:i+BlockSize], src[i:i+BlockSize])
	}
	return pkcs7UnPadding(dst)
}

// SM4CBCPKCS7Encrypt pads src with PKCS#7 and encrypts it in CBC mode. The
// IV is read from prng when iv is nil and is prepended to the output.
func SM4CBCPKCS7Encrypt(prng io.Reader, key, iv, src []byte) ([]byte, error) {
	block, err := sm4.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating SM4 cipher")
	}

	tmp := pkcs7Padding(src)
	ciphertext := make([]byte, BlockSize+len(tmp))
	if iv != nil {
		if len(iv) != BlockSize {
			return nil, errors.Errorf("Invalid IV. It must have length the block size [%d]", len(iv))
		}
		copy(ciphertext[:BlockSize], iv)
	} else if _, err := io.ReadFull(prng, ciphertext[:BlockSize]); err != nil {
		return nil, errors.Wrap(err, "failed reading IV")
	}

	mode := cipher.NewCBCEncrypter(block, ciphertext[:BlockSize])
	mode.CryptBlocks(ciphertext[BlockSize:], tmp)
	return ciphertext, nil
}

// SM4CBCPKCS7Decrypt reverses SM4CBCPKCS7Encrypt. src starts with the IV.
func SM4CBCPKCS7Decrypt(key, src []byte) ([]byte, error) {
	if len(src) < 2*BlockSize || len(src)%BlockSize != 0 {
		return nil, errors.New("Invalid ciphertext. It must be a multiple of the block size and carry an IV")
	}
	block, err := sm4.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating SM4 cipher")
	}

	iv, body := src[:BlockSize], src[BlockSize:]
	dst := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(dst, body)
	return pkcs7UnPadding(dst)
}
