/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"crypto/cipher"

	"github.com/emmansun/gmsm/zuc"
	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/pkg/errors"
)

const (
	// ZUCKeySize is the ZUC-128 key length in bytes.
	ZUCKeySize = 16
	// ZUCIVSize is the ZUC-128 initialization vector length in bytes.
	ZUCIVSize = 16

	zucWordSize = 4
)

func newZUCStream(key, iv []byte) (cipher.Stream, error) {
	if len(key) != ZUCKeySize {
		return nil, errors.Errorf("Invalid key length [%d]. Must be %d bytes", len(key), ZUCKeySize)
	}
	if len(iv) != ZUCIVSize {
		return nil, errors.Errorf("Invalid IV length [%d]. Must be %d bytes", len(iv), ZUCIVSize)
	}
	s, err := zuc.NewCipher(key, iv)
	if err != nil {
		return nil, errors.Wrap(err, "failed initializing ZUC")
	}
	return s, nil
}

// KeystreamGenerator yields the ZUC-128 keystream one 32-bit word at a time.
type KeystreamGenerator struct {
	key, iv []byte
	stream  cipher.Stream
}

// NewKeystreamGenerator loads key and iv into a fresh ZUC state.
func NewKeystreamGenerator(key, iv []byte) (*KeystreamGenerator, error) {
	stream, err := newZUCStream(key, iv)
	if err != nil {
		return nil, err
	}
	return &KeystreamGenerator{
		key:    append([]byte(nil), key...),
		iv:     append([]byte(nil), iv...),
		stream: stream,
	}, nil
}

// Generate returns the next keystream word, big-endian.
func (g *KeystreamGenerator) Generate() []byte {
	var zero [zucWordSize]byte
	word := make([]byte, zucWordSize)
	g.stream.XORKeyStream(word, zero[:])
	return word
}

// Reset rewinds the generator to the first word.
func (g *KeystreamGenerator) Reset() {
	// key and iv were validated by NewKeystreamGenerator
	g.stream, _ = newZUCStream(g.key, g.iv)
}

type zucEncryptor struct{}

// Encrypt XORs plaintext with the keystream selected by the key and the IV
// in opts.
func (*zucEncryptor) Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) ([]byte, error) {
	return zucXOR(k, plaintext, opts)
}

type zucDecryptor struct{}

// Decrypt is the same keystream XOR as Encrypt.
func (*zucDecryptor) Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) ([]byte, error) {
	return zucXOR(k, ciphertext, opts)
}

func zucXOR(k bccsp.Key, in []byte, opts interface{}) ([]byte, error) {
	var iv []byte
	switch o := opts.(type) {
	case *bccsp.ZUCStreamOpts:
		if o == nil {
			return nil, errors.New("Invalid opts. ZUC needs an IV.")
		}
		iv = o.IV
	case bccsp.ZUCStreamOpts:
		iv = o.IV
	case nil:
		return nil, errors.New("Invalid opts. ZUC needs an IV.")
	default:
		return nil, errors.Errorf("Mode not recognized [%s]", opts)
	}

	stream, err := newZUCStream(k.(*zucPrivateKey).privKey, iv)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	stream.XORKeyStream(out, in)
	return out, nil
}
