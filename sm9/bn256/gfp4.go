/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

// gfP4 implements Fp4 = Fp2[v]/(v²-u). The value is x·v + y.
type gfP4 struct {
	x, y gfP2
}

func (e *gfP4) String() string {
	return "(" + e.x.String() + ", " + e.y.String() + ")"
}

func (e *gfP4) Set(a *gfP4) *gfP4 {
	e.x.Set(&a.x)
	e.y.Set(&a.y)
	return e
}

func (e *gfP4) SetZero() *gfP4 {
	e.x.SetZero()
	e.y.SetZero()
	return e
}

func (e *gfP4) SetOne() *gfP4 {
	e.x.SetZero()
	e.y.SetOne()
	return e
}

func (e *gfP4) IsZero() bool {
	return e.x.IsZero() && e.y.IsZero()
}

func (e *gfP4) IsOne() bool {
	return e.x.IsZero() && e.y.IsOne()
}

func (e *gfP4) Equal(a *gfP4) bool {
	return e.x.Equal(&a.x) && e.y.Equal(&a.y)
}

func (e *gfP4) Conjugate(a *gfP4) *gfP4 {
	e.x.Neg(&a.x)
	e.y.Set(&a.y)
	return e
}

func (e *gfP4) Neg(a *gfP4) *gfP4 {
	e.x.Neg(&a.x)
	e.y.Neg(&a.y)
	return e
}

func (e *gfP4) Add(a, b *gfP4) *gfP4 {
	e.x.Add(&a.x, &b.x)
	e.y.Add(&a.y, &b.y)
	return e
}

func (e *gfP4) Sub(a, b *gfP4) *gfP4 {
	e.x.Sub(&a.x, &b.x)
	e.y.Sub(&a.y, &b.y)
	return e
}

func (e *gfP4) Double(a *gfP4) *gfP4 {
	e.x.Double(&a.x)
	e.y.Double(&a.y)
	return e
}

func (e *gfP4) Mul(a, b *gfP4) *gfP4 {
	t0 := new(gfP2).Mul(&a.y, &b.y)
	t1 := new(gfP2).Mul(&a.x, &b.x)

	tx := new(gfP2).Add(&a.x, &a.y)
	t := new(gfP2).Add(&b.x, &b.y)
	tx.Mul(tx, t)
	tx.Sub(tx, t0)
	tx.Sub(tx, t1)

	ty := new(gfP2).MulU(t1)
	ty.Add(ty, t0)

	e.x.Set(tx)
	e.y.Set(ty)
	return e
}

// MulGFp2 multiplies both coefficients by an element of Fp2.
func (e *gfP4) MulGFp2(a *gfP4, b *gfP2) *gfP4 {
	e.x.Mul(&a.x, b)
	e.y.Mul(&a.y, b)
	return e
}

func (e *gfP4) MulScalar(a *gfP4, b *gfP) *gfP4 {
	e.x.MulScalar(&a.x, b)
	e.y.MulScalar(&a.y, b)
	return e
}

// MulV sets e to a·v.
func (e *gfP4) MulV(a *gfP4) *gfP4 {
	tx := new(gfP2).Set(&a.y)
	ty := new(gfP2).MulU(&a.x)

	e.x.Set(tx)
	e.y.Set(ty)
	return e
}

func (e *gfP4) Square(a *gfP4) *gfP4 {
	xy := new(gfP2).Mul(&a.x, &a.y)

	ty := new(gfP2).Square(&a.x)
	ty.MulU(ty)
	ty.Add(ty, new(gfP2).Square(&a.y))

	e.x.Double(xy)
	e.y.Set(ty)
	return e
}

// Invert: (x·v+y)⁻¹ = (-x·v+y)/(y²-u·x²).
func (e *gfP4) Invert(a *gfP4) (*gfP4, error) {
	t := new(gfP2).Square(&a.x)
	t.MulU(t)
	t.Sub(new(gfP2).Square(&a.y), t)

	inv, err := new(gfP2).Invert(t)
	if err != nil {
		return nil, err
	}

	tx := new(gfP2).Neg(&a.x)
	tx.Mul(tx, inv)
	ty := new(gfP2).Mul(&a.y, inv)

	e.x.Set(tx)
	e.y.Set(ty)
	return e, nil
}
