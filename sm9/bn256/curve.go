/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

import "math/big"

// fieldElement is the arithmetic a coordinate field offers to curvePoint.
type fieldElement[T any] interface {
	*T
	Set(a *T) *T
	SetZero() *T
	SetOne() *T
	IsZero() bool
	Equal(a *T) bool
	Add(a, b *T) *T
	Sub(a, b *T) *T
	Neg(a *T) *T
	Double(a *T) *T
	Mul(a, b *T) *T
	Square(a *T) *T
	Invert(a *T) (*T, error)
}

// curvePoint is a point on y² = x³ + b in Jacobian coordinates:
// (X, Y, Z) stands for (X/Z², Y/Z³). Z = 0 is the point at infinity.
type curvePoint[T any, PT fieldElement[T]] struct {
	x, y, z T
}

type (
	g1Point = curvePoint[gfP, *gfP]
	g2Point = curvePoint[gfP2, *gfP2]
)

func (c *curvePoint[T, PT]) Set(a *curvePoint[T, PT]) *curvePoint[T, PT] {
	PT(&c.x).Set(&a.x)
	PT(&c.y).Set(&a.y)
	PT(&c.z).Set(&a.z)
	return c
}

// SetAffine sets c to (x, y, 1).
func (c *curvePoint[T, PT]) SetAffine(x, y *T) *curvePoint[T, PT] {
	PT(&c.x).Set(x)
	PT(&c.y).Set(y)
	PT(&c.z).SetOne()
	return c
}

func (c *curvePoint[T, PT]) SetInfinity() *curvePoint[T, PT] {
	PT(&c.x).SetZero()
	PT(&c.y).SetOne()
	PT(&c.z).SetZero()
	return c
}

func (c *curvePoint[T, PT]) IsInfinity() bool {
	return PT(&c.z).IsZero()
}

// IsOnCurve checks Y² = X³ + b·Z⁶. The point at infinity is not on the
// affine curve and is reported as such.
func (c *curvePoint[T, PT]) IsOnCurve(b *T) bool {
	if c.IsInfinity() {
		return false
	}

	var y2, x3, z2, z6, t T
	PT(&y2).Square(&c.y)
	PT(&x3).Square(&c.x)
	PT(&x3).Mul(&x3, &c.x)
	PT(&z2).Square(&c.z)
	PT(&z6).Square(&z2)
	PT(&z6).Mul(&z6, &z2)
	PT(&t).Mul(b, &z6)
	PT(&x3).Add(&x3, &t)

	return PT(&y2).Equal(&x3)
}

// Equal compares two points projectively.
func (c *curvePoint[T, PT]) Equal(a *curvePoint[T, PT]) bool {
	if c.IsInfinity() || a.IsInfinity() {
		return c.IsInfinity() && a.IsInfinity()
	}

	var z1z1, z2z2, u1, u2, s1, s2 T
	PT(&z1z1).Square(&c.z)
	PT(&z2z2).Square(&a.z)
	PT(&u1).Mul(&c.x, &z2z2)
	PT(&u2).Mul(&a.x, &z1z1)
	PT(&s1).Mul(&c.y, &a.z)
	PT(&s1).Mul(&s1, &z2z2)
	PT(&s2).Mul(&a.y, &c.z)
	PT(&s2).Mul(&s2, &z1z1)

	return PT(&u1).Equal(&u2) && PT(&s1).Equal(&s2)
}

// Add sets c to a+b using add-2007-bl.
func (c *curvePoint[T, PT]) Add(a, b *curvePoint[T, PT]) *curvePoint[T, PT] {
	if a.IsInfinity() {
		return c.Set(b)
	}
	if b.IsInfinity() {
		return c.Set(a)
	}

	var z1z1, z2z2, u1, u2, s1, s2, h, r T
	PT(&z1z1).Square(&a.z)
	PT(&z2z2).Square(&b.z)
	PT(&u1).Mul(&a.x, &z2z2)
	PT(&u2).Mul(&b.x, &z1z1)

	PT(&s1).Mul(&a.y, &b.z)
	PT(&s1).Mul(&s1, &z2z2)
	PT(&s2).Mul(&b.y, &a.z)
	PT(&s2).Mul(&s2, &z1z1)

	PT(&h).Sub(&u2, &u1)
	PT(&r).Sub(&s2, &s1)
	if PT(&h).IsZero() {
		if PT(&r).IsZero() {
			return c.Double(a)
		}
		return c.SetInfinity()
	}

	var i, j, v, x3, y3, z3, t T
	PT(&i).Double(&h)
	PT(&i).Square(&i)
	PT(&j).Mul(&h, &i)
	PT(&r).Double(&r)
	PT(&v).Mul(&u1, &i)

	PT(&x3).Square(&r)
	PT(&x3).Sub(&x3, &j)
	PT(&t).Double(&v)
	PT(&x3).Sub(&x3, &t)

	PT(&y3).Sub(&v, &x3)
	PT(&y3).Mul(&y3, &r)
	PT(&t).Mul(&s1, &j)
	PT(&t).Double(&t)
	PT(&y3).Sub(&y3, &t)

	PT(&z3).Add(&a.z, &b.z)
	PT(&z3).Square(&z3)
	PT(&z3).Sub(&z3, &z1z1)
	PT(&z3).Sub(&z3, &z2z2)
	PT(&z3).Mul(&z3, &h)

	PT(&c.x).Set(&x3)
	PT(&c.y).Set(&y3)
	PT(&c.z).Set(&z3)
	return c
}

// Double sets c to 2a using dbl-2009-l.
func (c *curvePoint[T, PT]) Double(a *curvePoint[T, PT]) *curvePoint[T, PT] {
	if a.IsInfinity() {
		return c.SetInfinity()
	}

	var A, B, C, D, E, F, x3, y3, z3, t T
	PT(&A).Square(&a.x)
	PT(&B).Square(&a.y)
	PT(&C).Square(&B)

	PT(&D).Add(&a.x, &B)
	PT(&D).Square(&D)
	PT(&D).Sub(&D, &A)
	PT(&D).Sub(&D, &C)
	PT(&D).Double(&D)

	PT(&E).Double(&A)
	PT(&E).Add(&E, &A)
	PT(&F).Square(&E)

	PT(&x3).Double(&D)
	PT(&x3).Sub(&F, &x3)

	PT(&y3).Sub(&D, &x3)
	PT(&y3).Mul(&y3, &E)
	PT(&t).Double(&C)
	PT(&t).Double(&t)
	PT(&t).Double(&t)
	PT(&y3).Sub(&y3, &t)

	PT(&z3).Mul(&a.y, &a.z)
	PT(&z3).Double(&z3)

	PT(&c.x).Set(&x3)
	PT(&c.y).Set(&y3)
	PT(&c.z).Set(&z3)
	return c
}

func (c *curvePoint[T, PT]) Neg(a *curvePoint[T, PT]) *curvePoint[T, PT] {
	PT(&c.x).Set(&a.x)
	PT(&c.y).Neg(&a.y)
	PT(&c.z).Set(&a.z)
	return c
}

// Mul sets c to [k]a by double-and-add over the big-endian bits of k.
// The caller reduces k modulo the group order.
func (c *curvePoint[T, PT]) Mul(a *curvePoint[T, PT], k *big.Int) *curvePoint[T, PT] {
	sum := new(curvePoint[T, PT]).SetInfinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		sum.Double(sum)
		if k.Bit(i) != 0 {
			sum.Add(sum, a)
		}
	}
	return c.Set(sum)
}

// MakeAffine normalizes c so that Z is 1, or to the canonical infinity.
func (c *curvePoint[T, PT]) MakeAffine() *curvePoint[T, PT] {
	if c.IsInfinity() {
		return c.SetInfinity()
	}
	if PT(&c.z).Equal(one[T, PT]()) {
		return c
	}

	var zInv, zInv2 T
	if _, err := PT(&zInv).Invert(&c.z); err != nil {
		return c.SetInfinity()
	}
	PT(&zInv2).Square(&zInv)

	PT(&c.x).Mul(&c.x, &zInv2)
	PT(&c.y).Mul(&c.y, &zInv2)
	PT(&c.y).Mul(&c.y, &zInv)
	PT(&c.z).SetOne()
	return c
}

func one[T any, PT fieldElement[T]]() *T {
	var e T
	return PT(&e).SetOne()
}
