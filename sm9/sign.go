/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm9

import (
	"io"
	"math/big"

	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// Sign signs msg with the user key priv and returns the signature (h, S).
func Sign(rand io.Reader, priv *SignPrivateKey, msg []byte) (*big.Int, *bn256.G1, error) {
	if priv == nil || priv.D == nil || priv.Master == nil {
		return nil, nil, errors.Wrap(ErrInvalidParameter, "invalid signing key")
	}

	g := priv.Master.pairing()
	for {
		r, err := randScalar(rand)
		if err != nil {
			return nil, nil, err
		}

		w := new(bn256.GT).Exp(g, r)
		h := H2(msg, w.Marshal())

		l := new(big.Int).Sub(r, h)
		l.Mod(l, bn256.Order)
		if l.Sign() == 0 {
			logger.Warn("signature nonce collided with message hash, retrying")
			continue
		}

		return h, new(bn256.G1).ScalarMult(priv.D, l), nil
	}
}

// Verify reports whether (h, S) is a valid signature of msg by the identity
// uid under the master public key pub.
func Verify(pub *SignMasterPublicKey, uid []byte, hid byte, msg []byte, h *big.Int, s *bn256.G1) bool {
	if pub == nil || pub.Ppub == nil || h == nil || s == nil {
		return false
	}
	if h.Sign() <= 0 || h.Cmp(bn256.Order) >= 0 {
		return false
	}
	if !s.IsOnCurve() {
		return false
	}

	t := new(bn256.GT).Exp(pub.pairing(), h)
	p := pub.userPublicG2(uid, hid)
	u := bn256.Pair(s, p)
	w := u.Mul(u, t)

	return H2(msg, w.Marshal()).Cmp(h) == 0
}

// SignASN1 signs msg and encodes the signature as
//
//	SEQUENCE { h OCTET STRING, S BIT STRING }
func SignASN1(rand io.Reader, priv *SignPrivateKey, msg []byte) ([]byte, error) {
	h, s, err := Sign(rand, priv, msg)
	if err != nil {
		return nil, err
	}
	return MarshalSignature(h, s)
}

// MarshalSignature encodes (h, S) in the SignASN1 layout.
func MarshalSignature(h *big.Int, s *bn256.G1) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1OctetString(scalarBytes(h))
		b.AddASN1BitString(s.Marshal())
	})
	return b.Bytes()
}

// UnmarshalSignature decodes the SignASN1 layout.
func UnmarshalSignature(sig []byte) (*big.Int, *bn256.G1, error) {
	var (
		inner      cryptobyte.String
		hBytes, sb []byte
	)
	input := cryptobyte.String(sig)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) || !input.Empty() ||
		!inner.ReadASN1Bytes(&hBytes, asn1.OCTET_STRING) ||
		!inner.ReadASN1BitStringAsBytes(&sb) || !inner.Empty() {
		return nil, nil, ErrDecoding
	}
	if len(hBytes) != scalarSize {
		return nil, nil, ErrDecoding
	}
	s := new(bn256.G1)
	if err := s.Unmarshal(sb); err != nil {
		return nil, nil, err
	}
	return new(big.Int).SetBytes(hBytes), s, nil
}

// VerifyASN1 verifies a SignASN1 signature. Malformed input is reported as
// an invalid signature.
func VerifyASN1(pub *SignMasterPublicKey, uid []byte, hid byte, msg, sig []byte) bool {
	h, s, err := UnmarshalSignature(sig)
	if err != nil {
		return false
	}
	return Verify(pub, uid, hid, msg, h, s)
}
