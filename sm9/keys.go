/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm9

import (
	"io"
	"math/big"
	"sync"

	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// SignMasterPublicKey is Ppub-s = [ks]P2.
type SignMasterPublicKey struct {
	Ppub *bn256.G2

	once sync.Once
	g    *bn256.GT
}

// pairing returns e(P1, Ppub-s), computed once per key.
func (pub *SignMasterPublicKey) pairing() *bn256.GT {
	pub.once.Do(func() {
		pub.g = bn256.Pair(bn256.Gen1(), pub.Ppub)
	})
	return pub.g
}

// SignMasterPrivateKey is the signature master secret ks.
type SignMasterPrivateKey struct {
	D      *big.Int
	Public *SignMasterPublicKey
}

// EncryptMasterPublicKey is Ppub-e = [ke]P1. It serves encryption, key
// encapsulation and key exchange.
type EncryptMasterPublicKey struct {
	Ppub *bn256.G1

	once sync.Once
	g    *bn256.GT
}

// pairing returns e(Ppub-e, P2), computed once per key.
func (pub *EncryptMasterPublicKey) pairing() *bn256.GT {
	pub.once.Do(func() {
		pub.g = bn256.Pair(pub.Ppub, bn256.Gen2())
	})
	return pub.g
}

// EncryptMasterPrivateKey is the encryption master secret ke.
type EncryptMasterPrivateKey struct {
	D      *big.Int
	Public *EncryptMasterPublicKey
}

// SignPrivateKey is a user signing key ds in G1.
type SignPrivateKey struct {
	D      *bn256.G1
	UID    []byte
	Hid    byte
	Master *SignMasterPublicKey
}

// EncryptPrivateKey is a user decryption key de in G2.
type EncryptPrivateKey struct {
	D      *bn256.G2
	UID    []byte
	Hid    byte
	Master *EncryptMasterPublicKey
}

func checkMasterScalar(d *big.Int) error {
	if d == nil || d.Sign() <= 0 || d.Cmp(bn256.Order) >= 0 {
		return errors.Wrap(ErrInvalidParameter, "master key must be in [1, N-1]")
	}
	return nil
}

// NewSignMasterKey imports a signature master secret.
func NewSignMasterKey(d *big.Int) (*SignMasterPrivateKey, error) {
	if err := checkMasterScalar(d); err != nil {
		return nil, err
	}
	return &SignMasterPrivateKey{
		D:      new(big.Int).Set(d),
		Public: &SignMasterPublicKey{Ppub: new(bn256.G2).ScalarBaseMult(d)},
	}, nil
}

// GenerateSignMasterKey draws a fresh signature master key pair.
func GenerateSignMasterKey(rand io.Reader) (*SignMasterPrivateKey, error) {
	d, err := randScalar(rand)
	if err != nil {
		return nil, err
	}
	return NewSignMasterKey(d)
}

// NewEncryptMasterKey imports an encryption master secret.
func NewEncryptMasterKey(d *big.Int) (*EncryptMasterPrivateKey, error) {
	if err := checkMasterScalar(d); err != nil {
		return nil, err
	}
	return &EncryptMasterPrivateKey{
		D:      new(big.Int).Set(d),
		Public: &EncryptMasterPublicKey{Ppub: new(bn256.G1).ScalarBaseMult(d)},
	}, nil
}

// GenerateEncryptMasterKey draws a fresh encryption master key pair.
func GenerateEncryptMasterKey(rand io.Reader) (*EncryptMasterPrivateKey, error) {
	d, err := randScalar(rand)
	if err != nil {
		return nil, err
	}
	return NewEncryptMasterKey(d)
}

// userScalar computes t2 = s·(H1(ID‖hid) + s)⁻¹ mod N.
func userScalar(s *big.Int, uid []byte, hid byte) (*big.Int, error) {
	if len(uid) == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "empty user identifier")
	}

	t1 := H1(uid, hid)
	t1.Add(t1, s)
	t1.Mod(t1, bn256.Order)
	if t1.Sign() == 0 {
		return nil, errors.Wrapf(ErrKeyDerivation, "identifier %q maps to zero; the master key must be regenerated", uid)
	}

	t2 := t1.ModInverse(t1, bn256.Order)
	t2.Mul(t2, s)
	return t2.Mod(t2, bn256.Order), nil
}

// GenerateUserKey derives the signing key of uid.
func (priv *SignMasterPrivateKey) GenerateUserKey(uid []byte, hid byte) (*SignPrivateKey, error) {
	t2, err := userScalar(priv.D, uid, hid)
	if err != nil {
		return nil, err
	}
	return &SignPrivateKey{
		D:      new(bn256.G1).ScalarBaseMult(t2),
		UID:    append([]byte(nil), uid...),
		Hid:    hid,
		Master: priv.Public,
	}, nil
}

// GenerateUserKey derives the decryption key of uid.
func (priv *EncryptMasterPrivateKey) GenerateUserKey(uid []byte, hid byte) (*EncryptPrivateKey, error) {
	t2, err := userScalar(priv.D, uid, hid)
	if err != nil {
		return nil, err
	}
	return &EncryptPrivateKey{
		D:      new(bn256.G2).ScalarBaseMult(t2),
		UID:    append([]byte(nil), uid...),
		Hid:    hid,
		Master: priv.Public,
	}, nil
}

// userPublicG1 computes [H1(ID‖hid)]P1 + Ppub-e.
func (pub *EncryptMasterPublicKey) userPublicG1(uid []byte, hid byte) *bn256.G1 {
	q := new(bn256.G1).ScalarBaseMult(H1(uid, hid))
	return q.Add(q, pub.Ppub)
}

// userPublicG2 computes [H1(ID‖hid)]P2 + Ppub-s.
func (pub *SignMasterPublicKey) userPublicG2(uid []byte, hid byte) *bn256.G2 {
	q := new(bn256.G2).ScalarBaseMult(H1(uid, hid))
	return q.Add(q, pub.Ppub)
}

// KGC is a key generation center holding both master key pairs.
type KGC struct {
	rand io.Reader

	// SignHid and EncryptHid are the identifiers used by GenerateSignKey
	// and GenerateEncryptKey when the caller passes 0.
	SignHid    byte
	EncryptHid byte

	sign    *SignMasterPrivateKey
	encrypt *EncryptMasterPrivateKey
}

// NewKGC creates a key generation center drawing randomness from rand.
func NewKGC(rand io.Reader) *KGC {
	return &KGC{
		rand:       rand,
		SignHid:    HidSign,
		EncryptHid: HidEncrypt,
	}
}

func (k *KGC) GenerateSignMasterKey() (*SignMasterPublicKey, error) {
	priv, err := GenerateSignMasterKey(k.rand)
	if err != nil {
		return nil, errors.WithMessage(err, "failed generating signature master key")
	}
	k.sign = priv
	logger.Debug("generated signature master key")
	return priv.Public, nil
}

func (k *KGC) GenerateEncryptMasterKey() (*EncryptMasterPublicKey, error) {
	priv, err := GenerateEncryptMasterKey(k.rand)
	if err != nil {
		return nil, errors.WithMessage(err, "failed generating encryption master key")
	}
	k.encrypt = priv
	logger.Debug("generated encryption master key")
	return priv.Public, nil
}

// ImportSignMasterKey installs an existing signature master secret.
func (k *KGC) ImportSignMasterKey(d *big.Int) (*SignMasterPublicKey, error) {
	priv, err := NewSignMasterKey(d)
	if err != nil {
		return nil, err
	}
	k.sign = priv
	return priv.Public, nil
}

// ImportEncryptMasterKey installs an existing encryption master secret.
func (k *KGC) ImportEncryptMasterKey(d *big.Int) (*EncryptMasterPublicKey, error) {
	priv, err := NewEncryptMasterKey(d)
	if err != nil {
		return nil, err
	}
	k.encrypt = priv
	return priv.Public, nil
}

func (k *KGC) SignMasterPublicKey() *SignMasterPublicKey {
	if k.sign == nil {
		return nil
	}
	return k.sign.Public
}

func (k *KGC) EncryptMasterPublicKey() *EncryptMasterPublicKey {
	if k.encrypt == nil {
		return nil
	}
	return k.encrypt.Public
}

// GenerateSignKey derives the signing key of id. A zero hid selects SignHid.
func (k *KGC) GenerateSignKey(id []byte, hid byte) (*SignPrivateKey, error) {
	if k.sign == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "no signature master key")
	}
	if hid == 0 {
		hid = k.SignHid
	}
	logger.Debugf("deriving signing key for hid %#02x", hid)
	return k.sign.GenerateUserKey(id, hid)
}

// GenerateEncryptKey derives the decryption key of id. A zero hid selects
// EncryptHid.
func (k *KGC) GenerateEncryptKey(id []byte, hid byte) (*EncryptPrivateKey, error) {
	if k.encrypt == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "no encryption master key")
	}
	if hid == 0 {
		hid = k.EncryptHid
	}
	logger.Debugf("deriving encryption key for hid %#02x", hid)
	return k.encrypt.GenerateUserKey(id, hid)
}

// MarshalASN1 encodes ks as an INTEGER.
func (priv *SignMasterPrivateKey) MarshalASN1() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1BigInt(priv.D)
	return b.Bytes()
}

// UnmarshalSignMasterPrivateKeyASN1 parses the output of
// SignMasterPrivateKey.MarshalASN1.
func UnmarshalSignMasterPrivateKeyASN1(der []byte) (*SignMasterPrivateKey, error) {
	d, err := readASN1Integer(der)
	if err != nil {
		return nil, err
	}
	return NewSignMasterKey(d)
}

// MarshalASN1 encodes Ppub-s as a BIT STRING holding the uncompressed point.
func (pub *SignMasterPublicKey) MarshalASN1() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1BitString(pub.Ppub.Marshal())
	return b.Bytes()
}

func UnmarshalSignMasterPublicKeyASN1(der []byte) (*SignMasterPublicKey, error) {
	raw, err := readASN1BitString(der)
	if err != nil {
		return nil, err
	}
	p := new(bn256.G2)
	if err := p.Unmarshal(raw); err != nil || p.IsInfinity() {
		return nil, ErrDecoding
	}
	return &SignMasterPublicKey{Ppub: p}, nil
}

// MarshalASN1 encodes ke as an INTEGER.
func (priv *EncryptMasterPrivateKey) MarshalASN1() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1BigInt(priv.D)
	return b.Bytes()
}

func UnmarshalEncryptMasterPrivateKeyASN1(der []byte) (*EncryptMasterPrivateKey, error) {
	d, err := readASN1Integer(der)
	if err != nil {
		return nil, err
	}
	return NewEncryptMasterKey(d)
}

// MarshalASN1 encodes Ppub-e as a BIT STRING holding the uncompressed point.
func (pub *EncryptMasterPublicKey) MarshalASN1() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1BitString(pub.Ppub.Marshal())
	return b.Bytes()
}

func UnmarshalEncryptMasterPublicKeyASN1(der []byte) (*EncryptMasterPublicKey, error) {
	raw, err := readASN1BitString(der)
	if err != nil {
		return nil, err
	}
	p := new(bn256.G1)
	if err := p.Unmarshal(raw); err != nil || p.IsInfinity() {
		return nil, ErrDecoding
	}
	return &EncryptMasterPublicKey{Ppub: p}, nil
}

// MarshalASN1 encodes the user key together with the context needed to use
// it:
//
//	SEQUENCE { key BIT STRING, master BIT STRING, uid OCTET STRING, hid INTEGER }
func (priv *SignPrivateKey) MarshalASN1() ([]byte, error) {
	return marshalUserKey(priv.D.Marshal(), priv.Master.Ppub.Marshal(), priv.UID, priv.Hid)
}

func UnmarshalSignPrivateKeyASN1(der []byte) (*SignPrivateKey, error) {
	rawKey, rawMaster, uid, hid, err := unmarshalUserKey(der)
	if err != nil {
		return nil, err
	}
	d, ppub := new(bn256.G1), new(bn256.G2)
	if d.Unmarshal(rawKey) != nil || d.IsInfinity() || ppub.Unmarshal(rawMaster) != nil || ppub.IsInfinity() {
		return nil, ErrDecoding
	}
	return &SignPrivateKey{D: d, UID: uid, Hid: hid, Master: &SignMasterPublicKey{Ppub: ppub}}, nil
}

// MarshalASN1 uses the same layout as SignPrivateKey.MarshalASN1.
func (priv *EncryptPrivateKey) MarshalASN1() ([]byte, error) {
	return marshalUserKey(priv.D.Marshal(), priv.Master.Ppub.Marshal(), priv.UID, priv.Hid)
}

func UnmarshalEncryptPrivateKeyASN1(der []byte) (*EncryptPrivateKey, error) {
	rawKey, rawMaster, uid, hid, err := unmarshalUserKey(der)
	if err != nil {
		return nil, err
	}
	d, ppub := new(bn256.G2), new(bn256.G1)
	if d.Unmarshal(rawKey) != nil || d.IsInfinity() || ppub.Unmarshal(rawMaster) != nil || ppub.IsInfinity() {
		return nil, ErrDecoding
	}
	return &EncryptPrivateKey{D: d, UID: uid, Hid: hid, Master: &EncryptMasterPublicKey{Ppub: ppub}}, nil
}

func marshalUserKey(key, master, uid []byte, hid byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BitString(key)
		b.AddASN1BitString(master)
		b.AddASN1OctetString(uid)
		b.AddASN1Int64(int64(hid))
	})
	return b.Bytes()
}

func unmarshalUserKey(der []byte) (key, master, uid []byte, hid byte, err error) {
	var (
		inner cryptobyte.String
		h     int64
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) || !input.Empty() ||
		!inner.ReadASN1BitStringAsBytes(&key) ||
		!inner.ReadASN1BitStringAsBytes(&master) ||
		!inner.ReadASN1Bytes(&uid, asn1.OCTET_STRING) ||
		!inner.ReadASN1Integer(&h) || !inner.Empty() {
		return nil, nil, nil, 0, ErrDecoding
	}
	if h < 0 || h > 0xff || len(uid) == 0 {
		return nil, nil, nil, 0, ErrDecoding
	}
	return key, master, uid, byte(h), nil
}

func readASN1Integer(der []byte) (*big.Int, error) {
	d := new(big.Int)
	input := cryptobyte.String(der)
	if !input.ReadASN1Integer(d) || !input.Empty() {
		return nil, ErrDecoding
	}
	return d, nil
}

func readASN1BitString(der []byte) ([]byte, error) {
	var raw []byte
	input := cryptobyte.String(der)
	if !input.ReadASN1BitStringAsBytes(&raw) || !input.Empty() {
		return nil, ErrDecoding
	}
	return raw, nil
}
