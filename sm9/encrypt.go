/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm9

import (
	"crypto/subtle"
	"io"

	"github.com/gmsuite/gmsuite/internal/gmcipher"
	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// EncType selects how the derived key stream protects the message.
type EncType int

const (
	// EncTypeXOR xors the message with KDF output.
	EncTypeXOR EncType = 0
	// EncTypeSM4ECB encrypts the PKCS#7 padded message with SM4 in ECB
	// mode under a 16 byte derived key.
	EncTypeSM4ECB EncType = 1
)

func (t EncType) String() string {
	switch t {
	case EncTypeXOR:
		return "XOR"
	case EncTypeSM4ECB:
		return "SM4-ECB"
	default:
		return "unknown"
	}
}

// EncrypterOpts configures Encrypt and Decrypt. A nil value selects
// EncTypeXOR.
type EncrypterOpts struct {
	EncType EncType
}

func (o *EncrypterOpts) encType() EncType {
	if o == nil {
		return EncTypeXOR
	}
	return o.EncType
}

const (
	c1Size  = 1 + 2*32
	macSize = sm3Size
)

// encapsulate runs the shared first half of WrapKey and Encrypt. derive is
// called with the C1 coordinates and w, and may ask for a fresh nonce by
// returning ok = false.
func encapsulate(rand io.Reader, pub *EncryptMasterPublicKey, uid []byte, hid byte, derive func(c, w []byte) (ok bool)) (*bn256.G1, error) {
	if pub == nil || pub.Ppub == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "invalid master public key")
	}
	if len(uid) == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "empty user identifier")
	}

	q := pub.userPublicG1(uid, hid)
	g := pub.pairing()
	for {
		r, err := randScalar(rand)
		if err != nil {
			return nil, err
		}

		c := new(bn256.G1).ScalarMult(q, r)
		w := new(bn256.GT).Exp(g, r)
		if derive(coords(c.Marshal()), w.Marshal()) {
			return c, nil
		}
		logger.Warn("derived key is all zero, retrying with a new nonce")
	}
}

// WrapKey generates a klen byte key for uid and its encapsulation C.
func WrapKey(rand io.Reader, pub *EncryptMasterPublicKey, uid []byte, hid byte, klen int) ([]byte, *bn256.G1, error) {
	if klen <= 0 {
		return nil, nil, errors.Wrapf(ErrInvalidParameter, "key length %d", klen)
	}

	var key []byte
	c, err := encapsulate(rand, pub, uid, hid, func(c, w []byte) bool {
		key = KDF(klen, c, w, uid)
		return !isAllZero(key)
	})
	if err != nil {
		return nil, nil, err
	}
	return key, c, nil
}

// UnwrapKey recovers the key encapsulated in c.
func UnwrapKey(priv *EncryptPrivateKey, uid []byte, c *bn256.G1, klen int) ([]byte, error) {
	if priv == nil || priv.D == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "invalid private key")
	}
	if klen <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "key length %d", klen)
	}
	if c == nil || !c.IsOnCurve() {
		return nil, ErrDecoding
	}

	w := bn256.Pair(c, priv.D)
	key := KDF(klen, coords(c.Marshal()), w.Marshal(), uid)
	if isAllZero(key) {
		return nil, ErrKeyDerivation
	}
	return key, nil
}

// Encrypt encrypts msg to uid. The output is C1‖C3‖C2 with C1 the
// uncompressed encoding of the encapsulation.
func Encrypt(rand io.Reader, pub *EncryptMasterPublicKey, uid []byte, hid byte, msg []byte, opts *EncrypterOpts) ([]byte, error) {
	c1, c2, c3, err := encrypt(rand, pub, uid, hid, msg, opts.encType())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(c1)+len(c3)+len(c2))
	out = append(out, c1...)
	out = append(out, c3...)
	return append(out, c2...), nil
}

func encrypt(rand io.Reader, pub *EncryptMasterPublicKey, uid []byte, hid byte, msg []byte, encType EncType) (c1, c2, c3 []byte, err error) {
	var k1Len int
	switch encType {
	case EncTypeXOR:
		k1Len = len(msg)
	case EncTypeSM4ECB:
		k1Len = gmcipher.BlockSize
	default:
		return nil, nil, nil, errors.Wrapf(ErrInvalidParameter, "unsupported encryption type %d", encType)
	}

	var k []byte
	c, err := encapsulate(rand, pub, uid, hid, func(c, w []byte) bool {
		k = KDF(k1Len+macSize, c, w, uid)
		return k1Len == 0 || !isAllZero(k[:k1Len])
	})
	if err != nil {
		return nil, nil, nil, err
	}
	k1, k2 := k[:k1Len], k[k1Len:]

	switch encType {
	case EncTypeXOR:
		c2 = make([]byte, len(msg))
		subtle.XORBytes(c2, msg, k1)
	case EncTypeSM4ECB:
		if c2, err = gmcipher.SM4ECBPKCS7Encrypt(k1, msg); err != nil {
			return nil, nil, nil, err
		}
	}

	return c.Marshal(), c2, sm3Sum(c2, k2), nil
}

// Decrypt reverses Encrypt. The tag is checked before any plaintext is
// released.
func Decrypt(priv *EncryptPrivateKey, uid []byte, ciphertext []byte, opts *EncrypterOpts) ([]byte, error) {
	if len(ciphertext) < c1Size+macSize {
		return nil, ErrDecoding
	}
	c1 := ciphertext[:c1Size]
	c3 := ciphertext[c1Size : c1Size+macSize]
	c2 := ciphertext[c1Size+macSize:]
	return decrypt(priv, uid, c1, c2, c3, opts.encType())
}

func decrypt(priv *EncryptPrivateKey, uid []byte, c1, c2, c3 []byte, encType EncType) ([]byte, error) {
	if priv == nil || priv.D == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "invalid private key")
	}

	var k1Len int
	switch encType {
	case EncTypeXOR:
		k1Len = len(c2)
	case EncTypeSM4ECB:
		k1Len = gmcipher.BlockSize
	default:
		return nil, errors.Wrapf(ErrInvalidParameter, "unsupported encryption type %d", encType)
	}

	c := new(bn256.G1)
	if err := c.Unmarshal(c1); err != nil || c.IsInfinity() {
		return nil, ErrDecoding
	}

	w := bn256.Pair(c, priv.D)
	k := KDF(k1Len+macSize, coords(c.Marshal()), w.Marshal(), uid)
	k1, k2 := k[:k1Len], k[k1Len:]
	if k1Len > 0 && isAllZero(k1) {
		return nil, ErrKeyDerivation
	}

	if subtle.ConstantTimeCompare(sm3Sum(c2, k2), c3) != 1 {
		return nil, ErrIntegrity
	}

	switch encType {
	case EncTypeSM4ECB:
		msg, err := gmcipher.SM4ECBPKCS7Decrypt(k1, c2)
		if err != nil {
			return nil, errors.Wrap(ErrDecoding, err.Error())
		}
		return msg, nil
	default:
		msg := make([]byte, len(c2))
		subtle.XORBytes(msg, c2, k1)
		return msg, nil
	}
}

// EncryptASN1 encrypts msg and encodes the result as
//
//	SEQUENCE { EnType INTEGER, C1 BIT STRING, C3 OCTET STRING, CipherText OCTET STRING }
func EncryptASN1(rand io.Reader, pub *EncryptMasterPublicKey, uid []byte, hid byte, msg []byte, opts *EncrypterOpts) ([]byte, error) {
	encType := opts.encType()
	c1, c2, c3, err := encrypt(rand, pub, uid, hid, msg, encType)
	if err != nil {
		return nil, err
	}

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(int64(encType))
		b.AddASN1BitString(c1)
		b.AddASN1OctetString(c3)
		b.AddASN1OctetString(c2)
	})
	return b.Bytes()
}

// DecryptASN1 decrypts the output of EncryptASN1. The encryption type is
// taken from the encoding.
func DecryptASN1(priv *EncryptPrivateKey, uid []byte, der []byte) ([]byte, error) {
	var (
		inner      cryptobyte.String
		encType    int64
		c1, c2, c3 []byte
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) || !input.Empty() ||
		!inner.ReadASN1Integer(&encType) ||
		!inner.ReadASN1BitStringAsBytes(&c1) ||
		!inner.ReadASN1Bytes(&c3, asn1.OCTET_STRING) ||
		!inner.ReadASN1Bytes(&c2, asn1.OCTET_STRING) || !inner.Empty() {
		return nil, ErrDecoding
	}
	if len(c3) != macSize {
		return nil, ErrDecoding
	}
	return decrypt(priv, uid, c1, c2, c3, EncType(encType))
}
