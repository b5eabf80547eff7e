/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

import "math/big"

// gfP2 implements Fp2 = Fp[u]/(u²+2). The value is x·u + y.
type gfP2 struct {
	x, y gfP
}

func (e *gfP2) String() string {
	return "(" + e.x.String() + ", " + e.y.String() + ")"
}

func (e *gfP2) Set(a *gfP2) *gfP2 {
	e.x.Set(&a.x)
	e.y.Set(&a.y)
	return e
}

func (e *gfP2) SetZero() *gfP2 {
	e.x.SetZero()
	e.y.SetZero()
	return e
}

func (e *gfP2) SetOne() *gfP2 {
	e.x.SetZero()
	e.y.SetOne()
	return e
}

func (e *gfP2) IsZero() bool {
	return e.x.IsZero() && e.y.IsZero()
}

func (e *gfP2) IsOne() bool {
	return e.x.IsZero() && e.y.IsOne()
}

func (e *gfP2) Equal(a *gfP2) bool {
	return e.x.Equal(&a.x) && e.y.Equal(&a.y)
}

// Conjugate is also the p-power Frobenius on Fp2.
func (e *gfP2) Conjugate(a *gfP2) *gfP2 {
	e.x.Neg(&a.x)
	e.y.Set(&a.y)
	return e
}

func (e *gfP2) Neg(a *gfP2) *gfP2 {
	e.x.Neg(&a.x)
	e.y.Neg(&a.y)
	return e
}

func (e *gfP2) Add(a, b *gfP2) *gfP2 {
	e.x.Add(&a.x, &b.x)
	e.y.Add(&a.y, &b.y)
	return e
}

func (e *gfP2) Sub(a, b *gfP2) *gfP2 {
	e.x.Sub(&a.x, &b.x)
	e.y.Sub(&a.y, &b.y)
	return e
}

func (e *gfP2) Double(a *gfP2) *gfP2 {
	e.x.Double(&a.x)
	e.y.Double(&a.y)
	return e
}

func (e *gfP2) Triple(a *gfP2) *gfP2 {
	e.x.Triple(&a.x)
	e.y.Triple(&a.y)
	return e
}

// Mul uses Karatsuba: (ax·u+ay)(bx·u+by) with u² = -2.
func (e *gfP2) Mul(a, b *gfP2) *gfP2 {
	t0 := new(gfP).Mul(&a.y, &b.y)
	t1 := new(gfP).Mul(&a.x, &b.x)

	tx := new(gfP).Add(&a.x, &a.y)
	t := new(gfP).Add(&b.x, &b.y)
	tx.Mul(tx, t)
	tx.Sub(tx, t0)
	tx.Sub(tx, t1)

	ty := new(gfP).Double(t1)
	ty.Sub(t0, ty)

	e.x.Set(tx)
	e.y.Set(ty)
	return e
}

// MulScalar multiplies both coefficients by an element of Fp.
func (e *gfP2) MulScalar(a *gfP2, b *gfP) *gfP2 {
	e.x.Mul(&a.x, b)
	e.y.Mul(&a.y, b)
	return e
}

// MulU sets e to a·u.
func (e *gfP2) MulU(a *gfP2) *gfP2 {
	tx := new(gfP).Set(&a.y)
	ty := new(gfP).Double(&a.x)
	ty.Neg(ty)

	e.x.Set(tx)
	e.y.Set(ty)
	return e
}

func (e *gfP2) Square(a *gfP2) *gfP2 {
	// (x·u+y)² = 2xy·u + (y-x)(y+2x) - xy
	xy := new(gfP).Mul(&a.x, &a.y)

	t0 := new(gfP).Sub(&a.y, &a.x)
	t1 := new(gfP).Double(&a.x)
	t1.Add(t1, &a.y)
	ty := new(gfP).Mul(t0, t1)
	ty.Sub(ty, xy)

	e.x.Double(xy)
	e.y.Set(ty)
	return e
}

// Invert uses the norm: (x·u+y)⁻¹ = (-x·u+y)/(y²+2x²).
func (e *gfP2) Invert(a *gfP2) (*gfP2, error) {
	t := new(gfP).Square(&a.x)
	t.Double(t)
	t2 := new(gfP).Square(&a.y)
	t.Add(t, t2)

	inv, err := new(gfP).Invert(t)
	if err != nil {
		return nil, err
	}

	tx := new(gfP).Neg(&a.x)
	tx.Mul(tx, inv)
	ty := new(gfP).Mul(&a.y, inv)

	e.x.Set(tx)
	e.y.Set(ty)
	return e, nil
}

func (e *gfP2) Exp(a *gfP2, k *big.Int) *gfP2 {
	sum := new(gfP2).SetOne()
	for i := k.BitLen() - 1; i >= 0; i-- {
		sum.Square(sum)
		if k.Bit(i) != 0 {
			sum.Mul(sum, a)
		}
	}
	return e.Set(sum)
}

// Sqrt computes a square root through the norm map. With U = y²+2x² and
// w = ±sqrt(U), a root is x/(2s)·u + s where s = sqrt((y+w)/2).
func (e *gfP2) Sqrt(a *gfP2) (*gfP2, error) {
	if a.IsZero() {
		return e.SetZero(), nil
	}

	half, _ := new(gfP).Invert(newGFp(2))

	if a.x.IsZero() {
		if s, err := new(gfP).Sqrt(&a.y); err == nil {
			e.x.SetZero()
			e.y.Set(s)
			return e, nil
		}
		// (s·u)² = -2s², so s² = -y/2.
		t := new(gfP).Neg(&a.y)
		t.Mul(t, half)
		s, err := new(gfP).Sqrt(t)
		if err != nil {
			return nil, ErrNotSquare
		}
		e.x.Set(s)
		e.y.SetZero()
		return e, nil
	}

	norm := new(gfP).Square(&a.x)
	norm.Double(norm)
	norm.Add(norm, new(gfP).Square(&a.y))

	w, err := new(gfP).Sqrt(norm)
	if err != nil {
		return nil, ErrNotSquare
	}

	for _, cand := range []*gfP{w, new(gfP).Neg(w)} {
		v := new(gfP).Add(&a.y, cand)
		v.Mul(v, half)

		s, err := new(gfP).Sqrt(v)
		if err != nil || s.IsZero() {
			continue
		}

		d, _ := new(gfP).Invert(new(gfP).Double(s))
		r := &gfP2{}
		r.x.Mul(&a.x, d)
		r.y.Set(s)

		if new(gfP2).Square(r).Equal(a) {
			return e.Set(r), nil
		}
	}
	return nil, ErrNotSquare
}

// Marshal writes x‖y, 64 bytes.
func (e *gfP2) Marshal(out []byte) {
	e.x.Marshal(out[:numBytes])
	e.y.Marshal(out[numBytes : 2*numBytes])
}

func (e *gfP2) Unmarshal(in []byte) error {
	if len(in) != 2*numBytes {
		return ErrDecoding
	}
	if err := e.x.Unmarshal(in[:numBytes]); err != nil {
		return err
	}
	return e.y.Unmarshal(in[numBytes:])
}
