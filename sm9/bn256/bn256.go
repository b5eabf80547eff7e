/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bn256 implements the SM9 BN curve: the Fp12 tower, the groups G1
// over Fp and G2 over the sextic twist, and the R-ate pairing into GT.
//
// Values returned by this package are always normalized, so they can be
// compared, copied with Set and encoded without further work. Scalars are
// reduced modulo Order before use.
package bn256

import (
	"math/big"
)

func reduceScalar(k *big.Int) *big.Int {
	if k.Sign() >= 0 && k.Cmp(Order) < 0 {
		return k
	}
	return new(big.Int).Mod(k, Order)
}

// G1 is an element of the group of points on E(Fp): y² = x³ + 5.
// The zero value is the point at infinity.
type G1 struct {
	p g1Point
}

// Gen1 returns the generator P1.
func Gen1() *G1 {
	e := &G1{}
	e.p.SetAffine(g1GenX, g1GenY)
	return e
}

func (e *G1) String() string {
	if e.IsInfinity() {
		return "bn256.G1(∞)"
	}
	return "bn256.G1(" + e.p.x.String() + ", " + e.p.y.String() + ")"
}

func (e *G1) Set(a *G1) *G1 {
	e.p.Set(&a.p)
	return e
}

func (e *G1) SetInfinity() *G1 {
	e.p.SetInfinity()
	return e
}

// ScalarBaseMult sets e to [k]P1.
func (e *G1) ScalarBaseMult(k *big.Int) *G1 {
	return e.ScalarMult(Gen1(), k)
}

// ScalarMult sets e to [k]a.
func (e *G1) ScalarMult(a *G1, k *big.Int) *G1 {
	e.p.Mul(&a.p, reduceScalar(k))
	e.p.MakeAffine()
	return e
}

func (e *G1) Add(a, b *G1) *G1 {
	e.p.Add(&a.p, &b.p)
	e.p.MakeAffine()
	return e
}

func (e *G1) Double(a *G1) *G1 {
	e.p.Double(&a.p)
	e.p.MakeAffine()
	return e
}

func (e *G1) Neg(a *G1) *G1 {
	e.p.Neg(&a.p)
	return e
}

func (e *G1) IsInfinity() bool {
	return e.p.IsInfinity()
}

// IsOnCurve reports whether e is a finite point satisfying the curve
// equation.
func (e *G1) IsOnCurve() bool {
	return e.p.IsOnCurve(curveB)
}

func (e *G1) Equal(a *G1) bool {
	return e.p.Equal(&a.p)
}

// G2 is an element of the order-N subgroup of E'(Fp2): y² = x³ + 5u.
// The zero value is the point at infinity.
type G2 struct {
	p g2Point
}

// Gen2 returns the generator P2.
func Gen2() *G2 {
	e := &G2{}
	e.p.SetAffine(g2GenX, g2GenY)
	return e
}

func (e *G2) String() string {
	if e.IsInfinity() {
		return "bn256.G2(∞)"
	}
	return "bn256.G2(" + e.p.x.String() + ", " + e.p.y.String() + ")"
}

func (e *G2) Set(a *G2) *G2 {
	e.p.Set(&a.p)
	return e
}

func (e *G2) SetInfinity() *G2 {
	e.p.SetInfinity()
	return e
}

// ScalarBaseMult sets e to [k]P2.
func (e *G2) ScalarBaseMult(k *big.Int) *G2 {
	return e.ScalarMult(Gen2(), k)
}

// ScalarMult sets e to [k]a.
func (e *G2) ScalarMult(a *G2, k *big.Int) *G2 {
	e.p.Mul(&a.p, reduceScalar(k))
	e.p.MakeAffine()
	return e
}

func (e *G2) Add(a, b *G2) *G2 {
	e.p.Add(&a.p, &b.p)
	e.p.MakeAffine()
	return e
}

func (e *G2) Double(a *G2) *G2 {
	e.p.Double(&a.p)
	e.p.MakeAffine()
	return e
}

func (e *G2) Neg(a *G2) *G2 {
	e.p.Neg(&a.p)
	return e
}

func (e *G2) IsInfinity() bool {
	return e.p.IsInfinity()
}

func (e *G2) IsOnCurve() bool {
	return e.p.IsOnCurve(twistB)
}

// inSubgroup reports whether [N]e is the point at infinity.
func (e *G2) inSubgroup() bool {
	return new(g2Point).Mul(&e.p, Order).IsInfinity()
}

func (e *G2) Equal(a *G2) bool {
	return e.p.Equal(&a.p)
}

// GT is an element of the order-N subgroup of Fp12*. Elements are produced
// by Pair and by group operations on its results.
type GT struct {
	p gfP12
}

// Pair computes the R-ate pairing e(g1, g2). If either argument is the point
// at infinity the result is the identity of GT.
func Pair(g1 *G1, g2 *G2) *GT {
	e := &GT{}
	e.p.Set(optimalAte(&g2.p, &g1.p))
	return e
}

func (e *GT) String() string {
	return "bn256.GT" + e.p.String()
}

func (e *GT) Set(a *GT) *GT {
	e.p.Set(&a.p)
	return e
}

func (e *GT) SetOne() *GT {
	e.p.SetOne()
	return e
}

func (e *GT) IsOne() bool {
	return e.p.IsOne()
}

func (e *GT) Equal(a *GT) bool {
	return e.p.Equal(&a.p)
}

func (e *GT) Mul(a, b *GT) *GT {
	e.p.Mul(&a.p, &b.p)
	return e
}

// Exp sets e to a^k.
func (e *GT) Exp(a *GT, k *big.Int) *GT {
	e.p.Exp(&a.p, reduceScalar(k))
	return e
}

// Invert sets e to a⁻¹, which on GT is the p⁶-power Frobenius.
func (e *GT) Invert(a *GT) *GT {
	e.p.FrobeniusP6(&a.p)
	return e
}

// Marshal returns the 384-byte big-endian encoding of e.
func (e *GT) Marshal() []byte {
	out := make([]byte, 12*numBytes)
	e.p.Marshal(out)
	return out
}

// Unmarshal decodes m into e and checks that it has order N.
func (e *GT) Unmarshal(m []byte) error {
	v := &gfP12{}
	if err := v.Unmarshal(m); err != nil {
		return err
	}
	if v.IsZero() || !new(gfP12).Exp(v, Order).IsOne() {
		return ErrDecoding
	}
	e.p.Set(v)
	return nil
}
