/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

// lineFunctionDouble doubles r in place and returns the tangent line at r
// evaluated at the affine G1 point (xp, yp), scaled by Z3·Z².
func lineFunctionDouble(r *g2Point, xp, yp *gfP) *gfP12 {
	xx := new(gfP2).Square(&r.x)
	yy := new(gfP2).Square(&r.y)
	zz := new(gfP2).Square(&r.z)

	c := new(gfP2).Square(yy)

	d := new(gfP2).Add(&r.x, yy)
	d.Square(d)
	d.Sub(d, xx)
	d.Sub(d, c)
	d.Double(d)

	e := new(gfP2).Triple(xx)
	f := new(gfP2).Square(e)

	x3 := new(gfP2).Double(d)
	x3.Sub(f, x3)

	y3 := new(gfP2).Sub(d, x3)
	y3.Mul(y3, e)
	c8 := new(gfP2).Double(c)
	c8.Double(c8)
	c8.Double(c8)
	y3.Sub(y3, c8)

	z3 := new(gfP2).Mul(&r.y, &r.z)
	z3.Double(z3)

	// c0hi = -yp·Z3·ZZ, c0lo = 2YY - 3XX·X, c2lo = xp·3XX·ZZ
	c0hi := new(gfP2).Mul(z3, zz)
	c0hi.MulScalar(c0hi, new(gfP).Neg(yp))

	xx3 := new(gfP2).Triple(xx)
	c0lo := new(gfP2).Mul(xx3, &r.x)
	c0lo.Sub(new(gfP2).Double(yy), c0lo)

	c2lo := new(gfP2).Mul(xx3, zz)
	c2lo.MulScalar(c2lo, xp)

	r.x.Set(x3)
	r.y.Set(y3)
	r.z.Set(z3)

	return lineValue(c0hi, c0lo, c2lo)
}

// lineFunctionAdd sets r to r+q for an affine q and returns the line through
// r and q evaluated at (xp, yp), scaled by Z3.
func lineFunctionAdd(r *g2Point, xq, yq *gfP2, xp, yp *gfP) *gfP12 {
	zz := new(gfP2).Square(&r.z)
	u2 := new(gfP2).Mul(xq, zz)
	s2 := new(gfP2).Mul(yq, &r.z)
	s2.Mul(s2, zz)

	h := new(gfP2).Sub(u2, &r.x)
	rr := new(gfP2).Sub(s2, &r.y)

	hh := new(gfP2).Square(h)
	hhh := new(gfP2).Mul(h, hh)
	v := new(gfP2).Mul(&r.x, hh)

	x3 := new(gfP2).Square(rr)
	x3.Sub(x3, hhh)
	x3.Sub(x3, new(gfP2).Double(v))

	y3 := new(gfP2).Sub(v, x3)
	y3.Mul(y3, rr)
	y3.Sub(y3, new(gfP2).Mul(&r.y, hhh))

	z3 := new(gfP2).Mul(&r.z, h)

	// c0hi = -yp·Z3, c0lo = yq·Z3 - R·xq, c2lo = xp·R
	c0hi := new(gfP2).MulScalar(z3, new(gfP).Neg(yp))

	c0lo := new(gfP2).Mul(yq, z3)
	c0lo.Sub(c0lo, new(gfP2).Mul(rr, xq))

	c2lo := new(gfP2).MulScalar(rr, xp)

	r.x.Set(x3)
	r.y.Set(y3)
	r.z.Set(z3)

	return lineValue(c0hi, c0lo, c2lo)
}

// lineValue places the line coefficients into Fp12:
// x = c2lo, y = 0, z = c0hi·v + c0lo.
func lineValue(c0hi, c0lo, c2lo *gfP2) *gfP12 {
	l := &gfP12{}
	l.x.y.Set(c2lo)
	l.z.x.Set(c0hi)
	l.z.y.Set(c0lo)
	return l
}

// twistFrobenius computes π(q) and -π²(q) for an affine twist point q.
func twistFrobenius(xq, yq *gfP2) (q1x, q1y, q2x, q2y *gfP2) {
	q1x = new(gfP2).Conjugate(xq)
	q1x.MulScalar(q1x, twistFrobX)
	q1y = new(gfP2).Conjugate(yq)
	q1y.MulScalar(q1y, twistFrobY)

	q2x = new(gfP2).MulScalar(xq, twistFrob2X)
	q2y = new(gfP2).Set(yq)
	return
}

// miller evaluates the R-ate Miller loop f_{6t+2,Q}(P) together with the
// two Frobenius correction lines. Both inputs must be affine and finite.
func miller(q *g2Point, p *g1Point) *gfP12 {
	xp, yp := &p.x, &p.y
	xq, yq := &q.x, &q.y

	r := new(g2Point).SetAffine(xq, yq)
	f := new(gfP12).SetOne()

	for i := sixUPlus2.BitLen() - 2; i >= 0; i-- {
		l := lineFunctionDouble(r, xp, yp)
		f.Square(f)
		f.Mul(f, l)

		if sixUPlus2.Bit(i) == 1 {
			l = lineFunctionAdd(r, xq, yq, xp, yp)
			f.Mul(f, l)
		}
	}

	q1x, q1y, q2x, q2y := twistFrobenius(xq, yq)

	l := lineFunctionAdd(r, q1x, q1y, xp, yp)
	f.Mul(f, l)

	l = lineFunctionAdd(r, q2x, q2y, xp, yp)
	f.Mul(f, l)

	return f
}

// finalExponentiation computes f^((p¹²-1)/N). The easy part is
// (p⁶-1)(p²+1); the hard part is written in terms of t with Frobenius maps.
func finalExponentiation(in *gfP12) *gfP12 {
	f := new(gfP12).Set(in)

	inv, err := new(gfP12).Invert(f)
	if err != nil {
		return new(gfP12).SetOne()
	}
	f.FrobeniusP6(f)
	f.Mul(f, inv)

	t := new(gfP12).FrobeniusP2(f)
	f.Mul(t, f)

	ft := new(gfP12).Exp(f, u)
	ft2 := new(gfP12).Exp(ft, u)
	ft3 := new(gfP12).Exp(ft2, u)

	fp := new(gfP12).Frobenius(f)
	fp2 := new(gfP12).FrobeniusP2(f)
	fp3 := new(gfP12).FrobeniusP3(f)

	ftp := new(gfP12).Frobenius(ft)
	ft2p := new(gfP12).Frobenius(ft2)
	ft3p := new(gfP12).Frobenius(ft3)
	ft2p2 := new(gfP12).FrobeniusP2(ft2)

	y6 := new(gfP12).Mul(ft3, ft3p)
	y6.Exp(y6, big36)

	y5 := new(gfP12).Exp(ft2, big30)

	y4 := new(gfP12).Mul(ft2p, ft)
	y4.Exp(y4, big18)

	y3 := new(gfP12).Exp(ftp, big12)
	y2 := new(gfP12).Exp(ft2p2, big6)
	y1 := new(gfP12).Square(f)

	y0 := new(gfP12).Mul(fp, fp2)
	y0.Mul(y0, fp3)

	den := new(gfP12).Mul(y6, y5)
	den.Mul(den, y4)
	den.Mul(den, y3)
	den.Mul(den, y1)
	if _, err := den.Invert(den); err != nil {
		return new(gfP12).SetOne()
	}

	out := new(gfP12).Mul(y2, y0)
	return out.Mul(out, den)
}

func optimalAte(a *g2Point, b *g1Point) *gfP12 {
	if a.IsInfinity() || b.IsInfinity() {
		return new(gfP12).SetOne()
	}
	q := new(g2Point).Set(a).MakeAffine()
	p := new(g1Point).Set(b).MakeAffine()
	return finalExponentiation(miller(q, p))
}
