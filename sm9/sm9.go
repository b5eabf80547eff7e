/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sm9 implements the SM9 identity-based schemes of GM/T 0044:
// digital signatures, key encapsulation, public key encryption and
// authenticated key exchange.
//
// A key generation center holds the master private keys and derives user
// private keys from identifiers. Anyone holding a master public key can
// verify signatures of, or encrypt to, an identifier without looking up a
// user certificate.
package sm9

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/gmsuite/gmsuite/common/flogging"
	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
	"github.com/tjfoc/gmsm/sm3"
)

var logger = flogging.MustGetLogger("sm9")

// Key generation function identifiers.
const (
	HidSign     byte = 0x01
	HidExchange byte = 0x02
	HidEncrypt  byte = 0x03
)

var (
	// ErrDecoding is returned for malformed points, keys and ciphertexts.
	ErrDecoding = bn256.ErrDecoding

	// ErrKeyDerivation is returned when a user key or a session key cannot
	// be derived, e.g. H1(ID‖hid) + ks ≡ 0 (mod N).
	ErrKeyDerivation = errors.New("sm9: key derivation failed")

	// ErrIntegrity is returned by Decrypt when the C3 tag does not match.
	ErrIntegrity = errors.New("sm9: ciphertext integrity check failed")

	// ErrInvalidParameter is returned for out of range lengths, empty
	// identifiers and nil keys.
	ErrInvalidParameter = errors.New("sm9: invalid parameter")

	// ErrKeyExchangeConfirm is returned when a key exchange confirmation
	// hash does not match.
	ErrKeyExchangeConfirm = errors.New("sm9: key exchange confirmation failed")
)

const (
	hashPrefixH1 byte = 0x01
	hashPrefixH2 byte = 0x02

	// hlen is 8·⌈(5·log2 N)/32⌉ bits, in bytes.
	hlen = 40

	scalarSize = 32
	sm3Size    = 32
)

var orderMinusOne = new(big.Int).Sub(bn256.Order, big.NewInt(1))

// hashToRange maps prefix‖z to [1, N-1].
func hashToRange(prefix byte, z ...[]byte) *big.Int {
	ha := make([]byte, 0, 2*sm3Size)
	var ct [4]byte
	for i := uint32(1); i <= 2; i++ {
		h := sm3.New()
		h.Write([]byte{prefix})
		for _, b := range z {
			h.Write(b)
		}
		binary.BigEndian.PutUint32(ct[:], i)
		h.Write(ct[:])
		ha = append(ha, h.Sum(nil)...)
	}

	k := new(big.Int).SetBytes(ha[:hlen])
	k.Mod(k, orderMinusOne)
	return k.Add(k, big.NewInt(1))
}

// H1 is the identity hash used for key derivation and public key
// computation.
func H1(id []byte, hid byte) *big.Int {
	return hashToRange(hashPrefixH1, id, []byte{hid})
}

// H2 is the message hash used by Sign and Verify.
func H2(msg, w []byte) *big.Int {
	return hashToRange(hashPrefixH2, msg, w)
}

// KDF derives klen bytes from the concatenation of z.
func KDF(klen int, z ...[]byte) []byte {
	out := make([]byte, 0, klen+sm3Size)
	var ct [4]byte
	for i := uint32(1); len(out) < klen; i++ {
		h := sm3.New()
		for _, b := range z {
			h.Write(b)
		}
		binary.BigEndian.PutUint32(ct[:], i)
		h.Write(ct[:])
		out = append(out, h.Sum(nil)...)
	}
	return out[:klen]
}

func sm3Sum(z ...[]byte) []byte {
	h := sm3.New()
	for _, b := range z {
		h.Write(b)
	}
	return h.Sum(nil)
}

// randScalar draws a uniform scalar in [1, N-1] by rejection sampling.
func randScalar(rand io.Reader) (*big.Int, error) {
	buf := make([]byte, scalarSize)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, errors.Wrap(err, "failed reading random scalar")
		}
		k := new(big.Int).SetBytes(buf)
		if k.Sign() > 0 && k.Cmp(bn256.Order) < 0 {
			return k, nil
		}
	}
}

func isAllZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

func scalarBytes(k *big.Int) []byte {
	return k.FillBytes(make([]byte, scalarSize))
}

// coords drops the 0x04 prefix of an uncompressed point encoding.
func coords(enc []byte) []byte {
	return enc[1:]
}
