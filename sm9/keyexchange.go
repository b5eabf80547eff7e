/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm9

import (
	"crypto/subtle"
	"io"
	"math/big"

	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
)

// Role is a party's position in a key exchange. The initiator's identifier
// and ephemeral point always come first in the derived key input.
type Role int

const (
	Initiator Role = iota
	Responder
)

func (r Role) String() string {
	switch r {
	case Initiator:
		return "initiator"
	case Responder:
		return "responder"
	default:
		return "unknown"
	}
}

const (
	confirmTagResponder byte = 0x82
	confirmTagInitiator byte = 0x83
)

// KeyExchange runs one side of the SM9 key agreement. A value must not be
// reused for a second exchange.
type KeyExchange struct {
	priv         *EncryptPrivateKey
	uid          []byte
	peerUID      []byte
	klen         int
	confirmation bool

	role       Role
	r          *big.Int
	secret     *bn256.G1
	peerSecret *bn256.G1
	g1, g2, g3 *bn256.GT
	key        []byte
}

// NewKeyExchange prepares an exchange between uid, which owns priv, and
// peerUID. When confirmation is set, both sides exchange confirmation hashes.
func NewKeyExchange(priv *EncryptPrivateKey, uid, peerUID []byte, klen int, confirmation bool) (*KeyExchange, error) {
	if priv == nil || priv.D == nil || priv.Master == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "invalid private key")
	}
	if len(uid) == 0 || len(peerUID) == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "empty user identifier")
	}
	if klen <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "key length %d", klen)
	}
	return &KeyExchange{
		priv:         priv,
		uid:          append([]byte(nil), uid...),
		peerUID:      append([]byte(nil), peerUID...),
		klen:         klen,
		confirmation: confirmation,
	}, nil
}

// BeginKeyExchange draws r and computes R = [r]Q_peer, where Q_peer is the
// public point of peerUID.
func BeginKeyExchange(rand io.Reader, pub *EncryptMasterPublicKey, peerUID []byte, hid byte) (*big.Int, *bn256.G1, error) {
	if pub == nil || pub.Ppub == nil {
		return nil, nil, errors.Wrap(ErrInvalidParameter, "invalid master public key")
	}
	r, err := randScalar(rand)
	if err != nil {
		return nil, nil, err
	}
	q := pub.userPublicG1(peerUID, hid)
	return r, q.ScalarMult(q, r), nil
}

// sessionValues computes g1, g2 and g3 as seen from role.
func sessionValues(role Role, priv *EncryptPrivateKey, r *big.Int, peer *bn256.G1) (g1, g2, g3 *bn256.GT) {
	g := new(bn256.GT).Exp(priv.Master.pairing(), r)
	e := bn256.Pair(peer, priv.D)
	if role == Initiator {
		return g, e, new(bn256.GT).Exp(e, r)
	}
	return e, g, new(bn256.GT).Exp(e, r)
}

// EndKeyExchange derives the session key from this party's nonce r and
// point own, and the peer's point. The caller must pass its true role; a
// wrong role yields a key that does not match the peer's.
func EndKeyExchange(role Role, priv *EncryptPrivateKey, uid, peerUID []byte, r *big.Int, own, peer *bn256.G1, klen int) ([]byte, error) {
	if priv == nil || priv.D == nil || priv.Master == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "invalid private key")
	}
	if r == nil || own == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "missing ephemeral values")
	}
	if klen <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "key length %d", klen)
	}
	if peer == nil || !peer.IsOnCurve() {
		return nil, ErrDecoding
	}
	g1, g2, g3 := sessionValues(role, priv, r, peer)
	idA, idB, rA, rB := orderParties(role, uid, peerUID, own, peer)
	key := KDF(klen, idA, idB, rA, rB, g1.Marshal(), g2.Marshal(), g3.Marshal())
	if isAllZero(key) {
		return nil, ErrKeyDerivation
	}
	return key, nil
}

func orderParties(role Role, uid, peerUID []byte, own, peer *bn256.G1) (idA, idB, rA, rB []byte) {
	ownXY, peerXY := coords(own.Marshal()), coords(peer.Marshal())
	if role == Initiator {
		return uid, peerUID, ownXY, peerXY
	}
	return peerUID, uid, peerXY, ownXY
}

// InitKeyExchange starts the exchange as the initiator and returns RA.
func (ke *KeyExchange) InitKeyExchange(rand io.Reader, hid byte) (*bn256.G1, error) {
	r, ra, err := BeginKeyExchange(rand, ke.priv.Master, ke.peerUID, hid)
	if err != nil {
		return nil, err
	}
	ke.role = Initiator
	ke.r, ke.secret = r, ra
	logger.Debug("key exchange initiated")
	return new(bn256.G1).Set(ra), nil
}

// RespondKeyExchange answers the initiator's RA. It returns RB and, when
// confirmation is enabled, the responder's confirmation hash SB.
func (ke *KeyExchange) RespondKeyExchange(rand io.Reader, hid byte, ra *bn256.G1) (*bn256.G1, []byte, error) {
	if ra == nil || !ra.IsOnCurve() {
		return nil, nil, ErrDecoding
	}
	r, rb, err := BeginKeyExchange(rand, ke.priv.Master, ke.peerUID, hid)
	if err != nil {
		return nil, nil, err
	}
	ke.role = Responder
	ke.r, ke.secret = r, rb
	if err := ke.derive(ra); err != nil {
		return nil, nil, err
	}

	var sb []byte
	if ke.confirmation {
		sb = ke.confirmHash(confirmTagResponder)
	}
	return new(bn256.G1).Set(rb), sb, nil
}

// ConfirmResponder completes the exchange on the initiator side. It checks
// SB when confirmation is enabled and returns the session key and SA.
func (ke *KeyExchange) ConfirmResponder(rb *bn256.G1, sb []byte) ([]byte, []byte, error) {
	if ke.role != Initiator || ke.r == nil {
		return nil, nil, errors.Wrap(ErrInvalidParameter, "key exchange was not initiated")
	}
	if rb == nil || !rb.IsOnCurve() {
		return nil, nil, ErrDecoding
	}
	if err := ke.derive(rb); err != nil {
		return nil, nil, err
	}

	if !ke.confirmation {
		return ke.sessionKey(), nil, nil
	}
	if subtle.ConstantTimeCompare(ke.confirmHash(confirmTagResponder), sb) != 1 {
		return nil, nil, ErrKeyExchangeConfirm
	}
	return ke.sessionKey(), ke.confirmHash(confirmTagInitiator), nil
}

// ConfirmInitiator completes the exchange on the responder side and returns
// the session key.
func (ke *KeyExchange) ConfirmInitiator(sa []byte) ([]byte, error) {
	if ke.role != Responder || ke.key == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "key exchange was not answered")
	}
	if ke.confirmation && subtle.ConstantTimeCompare(ke.confirmHash(confirmTagInitiator), sa) != 1 {
		return nil, ErrKeyExchangeConfirm
	}
	return ke.sessionKey(), nil
}

func (ke *KeyExchange) derive(peer *bn256.G1) error {
	ke.peerSecret = new(bn256.G1).Set(peer)
	ke.g1, ke.g2, ke.g3 = sessionValues(ke.role, ke.priv, ke.r, peer)

	idA, idB, rA, rB := orderParties(ke.role, ke.uid, ke.peerUID, ke.secret, ke.peerSecret)
	ke.key = KDF(ke.klen, idA, idB, rA, rB, ke.g1.Marshal(), ke.g2.Marshal(), ke.g3.Marshal())
	if isAllZero(ke.key) {
		ke.key = nil
		return ErrKeyDerivation
	}
	return nil
}

func (ke *KeyExchange) confirmHash(tag byte) []byte {
	idA, idB, rA, rB := orderParties(ke.role, ke.uid, ke.peerUID, ke.secret, ke.peerSecret)
	inner := sm3Sum(ke.g2.Marshal(), ke.g3.Marshal(), idA, idB, rA, rB)
	return sm3Sum([]byte{tag}, ke.g1.Marshal(), inner)
}

func (ke *KeyExchange) sessionKey() []byte {
	return append([]byte(nil), ke.key...)
}
