/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

import "math/big"

// gfP12 implements Fp12 = Fp4[w]/(w³-v). The value is x·w² + y·w + z.
type gfP12 struct {
	x, y, z gfP4
}

func (e *gfP12) String() string {
	return "(" + e.x.String() + ", " + e.y.String() + ", " + e.z.String() + ")"
}

func (e *gfP12) Set(a *gfP12) *gfP12 {
	e.x.Set(&a.x)
	e.y.Set(&a.y)
	e.z.Set(&a.z)
	return e
}

func (e *gfP12) SetZero() *gfP12 {
	e.x.SetZero()
	e.y.SetZero()
	e.z.SetZero()
	return e
}

func (e *gfP12) SetOne() *gfP12 {
	e.x.SetZero()
	e.y.SetZero()
	e.z.SetOne()
	return e
}

func (e *gfP12) IsZero() bool {
	return e.x.IsZero() && e.y.IsZero() && e.z.IsZero()
}

func (e *gfP12) IsOne() bool {
	return e.x.IsZero() && e.y.IsZero() && e.z.IsOne()
}

func (e *gfP12) Equal(a *gfP12) bool {
	return e.x.Equal(&a.x) && e.y.Equal(&a.y) && e.z.Equal(&a.z)
}

func (e *gfP12) Neg(a *gfP12) *gfP12 {
	e.x.Neg(&a.x)
	e.y.Neg(&a.y)
	e.z.Neg(&a.z)
	return e
}

func (e *gfP12) Add(a, b *gfP12) *gfP12 {
	e.x.Add(&a.x, &b.x)
	e.y.Add(&a.y, &b.y)
	e.z.Add(&a.z, &b.z)
	return e
}

func (e *gfP12) Sub(a, b *gfP12) *gfP12 {
	e.x.Sub(&a.x, &b.x)
	e.y.Sub(&a.y, &b.y)
	e.z.Sub(&a.z, &b.z)
	return e
}

func (e *gfP12) Double(a *gfP12) *gfP12 {
	e.x.Double(&a.x)
	e.y.Double(&a.y)
	e.z.Double(&a.z)
	return e
}

// Mul is the three-term Karatsuba product, six Fp4 multiplications.
func (e *gfP12) Mul(a, b *gfP12) *gfP12 {
	t2 := new(gfP4).Mul(&a.x, &b.x)
	t1 := new(gfP4).Mul(&a.y, &b.y)
	t0 := new(gfP4).Mul(&a.z, &b.z)

	s := new(gfP4)
	t := new(gfP4)

	tx := new(gfP4).Mul(s.Add(&a.x, &a.z), t.Add(&b.x, &b.z))
	tx.Add(tx, t1)
	tx.Sub(tx, t2)
	tx.Sub(tx, t0)

	ty := new(gfP4).Mul(s.Add(&a.y, &a.z), t.Add(&b.y, &b.z))
	ty.Sub(ty, t1)
	ty.Sub(ty, t0)
	ty.Add(ty, new(gfP4).MulV(t2))

	tz := new(gfP4).Mul(s.Add(&a.x, &a.y), t.Add(&b.x, &b.y))
	tz.Sub(tz, t2)
	tz.Sub(tz, t1)
	tz.MulV(tz)
	tz.Add(tz, t0)

	e.x.Set(tx)
	e.y.Set(ty)
	e.z.Set(tz)
	return e
}

func (e *gfP12) Square(a *gfP12) *gfP12 {
	xy := new(gfP4).Mul(&a.x, &a.y)
	xz := new(gfP4).Mul(&a.x, &a.z)
	yz := new(gfP4).Mul(&a.y, &a.z)

	tz := new(gfP4).Double(xy)
	tz.MulV(tz)
	tz.Add(tz, new(gfP4).Square(&a.z))

	ty := new(gfP4).Square(&a.x)
	ty.MulV(ty)
	ty.Add(ty, new(gfP4).Double(yz))

	tx := new(gfP4).Square(&a.y)
	tx.Add(tx, new(gfP4).Double(xz))

	e.x.Set(tx)
	e.y.Set(ty)
	e.z.Set(tz)
	return e
}

// Invert computes the adjugate of multiplication by a divided by its
// determinant.
func (e *gfP12) Invert(a *gfP12) (*gfP12, error) {
	// A2 = y² - xz, A1 = v·x² - yz, A0 = z² - v·xy
	a2 := new(gfP4).Square(&a.y)
	a2.Sub(a2, new(gfP4).Mul(&a.x, &a.z))

	a1 := new(gfP4).Square(&a.x)
	a1.MulV(a1)
	a1.Sub(a1, new(gfP4).Mul(&a.y, &a.z))

	a0 := new(gfP4).Mul(&a.x, &a.y)
	a0.MulV(a0)
	a0.Sub(new(gfP4).Square(&a.z), a0)

	det := new(gfP4).Mul(&a.x, a1)
	det.Add(det, new(gfP4).Mul(&a.y, a2))
	det.MulV(det)
	det.Add(det, new(gfP4).Mul(&a.z, a0))

	inv, err := new(gfP4).Invert(det)
	if err != nil {
		return nil, err
	}

	e.x.Mul(a2, inv)
	e.y.Mul(a1, inv)
	e.z.Mul(a0, inv)
	return e, nil
}

func (e *gfP12) Exp(a *gfP12, k *big.Int) *gfP12 {
	sum := new(gfP12).SetOne()
	for i := k.BitLen() - 1; i >= 0; i-- {
		sum.Square(sum)
		if k.Bit(i) != 0 {
			sum.Mul(sum, a)
		}
	}
	return e.Set(sum)
}

// leaves returns the twelve Fp coefficients of e, highest degree first.
func (e *gfP12) leaves() [12]*gfP {
	return [12]*gfP{
		&e.x.x.x, &e.x.x.y, &e.x.y.x, &e.x.y.y,
		&e.y.x.x, &e.y.x.y, &e.y.y.x, &e.y.y.y,
		&e.z.x.x, &e.z.x.y, &e.z.y.x, &e.z.y.y,
	}
}

func (e *gfP12) frobenius(a *gfP12, tbl *[12]gfP) *gfP12 {
	out := &gfP12{}
	src, dst := a.leaves(), out.leaves()
	for i := range src {
		dst[i].Mul(src[i], &tbl[i])
	}
	return e.Set(out)
}

// Frobenius sets e to a^p.
func (e *gfP12) Frobenius(a *gfP12) *gfP12 {
	return e.frobenius(a, frobP1)
}

// FrobeniusP2 sets e to a^(p²).
func (e *gfP12) FrobeniusP2(a *gfP12) *gfP12 {
	return e.frobenius(a, frobP2)
}

// FrobeniusP3 sets e to a^(p³).
func (e *gfP12) FrobeniusP3(a *gfP12) *gfP12 {
	return e.frobenius(a, frobP3)
}

// FrobeniusP6 sets e to a^(p⁶). On the cyclotomic subgroup this is the inverse.
func (e *gfP12) FrobeniusP6(a *gfP12) *gfP12 {
	return e.frobenius(a, frobP6)
}

// Marshal writes the 384-byte encoding, highest degree coefficient first.
func (e *gfP12) Marshal(out []byte) {
	for i, c := range e.leaves() {
		c.Marshal(out[i*numBytes : (i+1)*numBytes])
	}
}

func (e *gfP12) Unmarshal(in []byte) error {
	if len(in) != 12*numBytes {
		return ErrDecoding
	}
	for i, c := range e.leaves() {
		if err := c.Unmarshal(in[i*numBytes : (i+1)*numBytes]); err != nil {
			return err
		}
	}
	return nil
}
