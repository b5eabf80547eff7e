/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randGFp(t *testing.T) *gfP {
	n, err := rand.Int(rand.Reader, P)
	require.NoError(t, err)
	return new(gfP).SetBig(n)
}

func randGFp2(t *testing.T) *gfP2 {
	e := &gfP2{}
	e.x.Set(randGFp(t))
	e.y.Set(randGFp(t))
	return e
}

func randGFp4(t *testing.T) *gfP4 {
	e := &gfP4{}
	e.x.Set(randGFp2(t))
	e.y.Set(randGFp2(t))
	return e
}

func randGFp12(t *testing.T) *gfP12 {
	e := &gfP12{}
	e.x.Set(randGFp4(t))
	e.y.Set(randGFp4(t))
	e.z.Set(randGFp4(t))
	return e
}

func TestGFpArithmetic(t *testing.T) {
	t.Parallel()

	a, b := randGFp(t), randGFp(t)

	sum := new(gfP).Add(a, b)
	assert.True(t, new(gfP).Sub(sum, b).Equal(a))

	assert.True(t, new(gfP).Add(a, new(gfP).Neg(a)).IsZero())

	inv, err := new(gfP).Invert(a)
	require.NoError(t, err)
	assert.True(t, new(gfP).Mul(a, inv).IsOne())

	// Fermat inversion agrees with the extended Euclidean one.
	fermat := new(gfP).Exp(a, new(big.Int).Sub(P, big.NewInt(2)))
	assert.True(t, fermat.Equal(inv))

	_, err = new(gfP).Invert(&gfP{})
	assert.Equal(t, ErrDivisionByZero, err)
}

func TestGFpSqrt(t *testing.T) {
	t.Parallel()

	for i := 0; i < 8; i++ {
		a := randGFp(t)
		sq := new(gfP).Square(a)

		r, err := new(gfP).Sqrt(sq)
		require.NoError(t, err)
		assert.True(t, new(gfP).Square(r).Equal(sq))
	}

	// 2 is a non-residue for p ≡ 5 (mod 8).
	_, err := new(gfP).Sqrt(newGFp(2))
	assert.Equal(t, ErrNotSquare, err)
}

func TestGFpMarshal(t *testing.T) {
	t.Parallel()

	a := randGFp(t)
	buf := make([]byte, numBytes)
	a.Marshal(buf)

	b := &gfP{}
	require.NoError(t, b.Unmarshal(buf))
	assert.True(t, a.Equal(b))

	pBytes := make([]byte, numBytes)
	P.FillBytes(pBytes)
	assert.Equal(t, ErrDecoding, b.Unmarshal(pBytes))
	assert.Equal(t, ErrDecoding, b.Unmarshal(buf[1:]))
}

func TestGFp2Arithmetic(t *testing.T) {
	t.Parallel()

	a, b := randGFp2(t), randGFp2(t)

	sum := new(gfP2).Add(a, b)
	assert.True(t, new(gfP2).Sub(sum, b).Equal(a))

	inv, err := new(gfP2).Invert(a)
	require.NoError(t, err)
	assert.True(t, new(gfP2).Mul(a, inv).IsOne())

	assert.True(t, new(gfP2).Square(a).Equal(new(gfP2).Mul(a, a)))

	// u² = -2
	uu := &gfP2{}
	uu.x.SetOne()
	uu.Square(uu)
	assert.True(t, uu.Equal(&gfP2{y: *newGFp(-2)}))

	// Conjugation is the Frobenius map.
	assert.True(t, new(gfP2).Exp(a, P).Equal(new(gfP2).Conjugate(a)))

	_, err = new(gfP2).Invert(&gfP2{})
	assert.Equal(t, ErrDivisionByZero, err)
}

func TestGFp2Sqrt(t *testing.T) {
	t.Parallel()

	for i := 0; i < 4; i++ {
		a := randGFp2(t)
		sq := new(gfP2).Square(a)

		r, err := new(gfP2).Sqrt(sq)
		require.NoError(t, err)
		assert.True(t, new(gfP2).Square(r).Equal(sq))
	}

	pure := &gfP2{}
	pure.x.Set(randGFp(t))
	sq := new(gfP2).Square(pure)
	r, err := new(gfP2).Sqrt(sq)
	require.NoError(t, err)
	assert.True(t, new(gfP2).Square(r).Equal(sq))
}

func TestGFp4Arithmetic(t *testing.T) {
	t.Parallel()

	a, b := randGFp4(t), randGFp4(t)

	sum := new(gfP4).Add(a, b)
	assert.True(t, new(gfP4).Sub(sum, b).Equal(a))

	inv, err := new(gfP4).Invert(a)
	require.NoError(t, err)
	assert.True(t, new(gfP4).Mul(a, inv).IsOne())

	assert.True(t, new(gfP4).Square(a).Equal(new(gfP4).Mul(a, a)))

	v := &gfP4{}
	v.x.SetOne()
	assert.True(t, new(gfP4).MulV(a).Equal(new(gfP4).Mul(a, v)))

	_, err = new(gfP4).Invert(&gfP4{})
	assert.Equal(t, ErrDivisionByZero, err)
}

func TestGFp12Arithmetic(t *testing.T) {
	t.Parallel()

	a, b, c := randGFp12(t), randGFp12(t), randGFp12(t)

	sum := new(gfP12).Add(a, b)
	assert.True(t, new(gfP12).Sub(sum, b).Equal(a))

	inv, err := new(gfP12).Invert(a)
	require.NoError(t, err)
	assert.True(t, new(gfP12).Mul(a, inv).IsOne())

	assert.True(t, new(gfP12).Square(a).Equal(new(gfP12).Mul(a, a)))

	// (a·b)·c = a·(b·c)
	l := new(gfP12).Mul(a, b)
	l.Mul(l, c)
	r := new(gfP12).Mul(b, c)
	r.Mul(a, r)
	assert.True(t, l.Equal(r))

	// w³ = v
	w := &gfP12{}
	w.y.SetOne()
	w3 := new(gfP12).Square(w)
	w3.Mul(w3, w)
	v := &gfP12{}
	v.z.x.SetOne()
	assert.True(t, w3.Equal(v))

	_, err = new(gfP12).Invert(&gfP12{})
	assert.Equal(t, ErrDivisionByZero, err)
}

func TestGFp12Frobenius(t *testing.T) {
	t.Parallel()

	a := randGFp12(t)

	f1 := new(gfP12).Frobenius(a)
	assert.True(t, f1.Equal(new(gfP12).Exp(a, P)))

	f2 := new(gfP12).Frobenius(f1)
	assert.True(t, f2.Equal(new(gfP12).FrobeniusP2(a)))

	f3 := new(gfP12).Frobenius(f2)
	assert.True(t, f3.Equal(new(gfP12).FrobeniusP3(a)))

	f6 := new(gfP12).FrobeniusP3(f3)
	assert.True(t, f6.Equal(new(gfP12).FrobeniusP6(a)))
}

func TestGFp12Marshal(t *testing.T) {
	t.Parallel()

	a := randGFp12(t)
	buf := make([]byte, 12*numBytes)
	a.Marshal(buf)

	b := &gfP12{}
	require.NoError(t, b.Unmarshal(buf))
	assert.True(t, a.Equal(b))

	// The highest-degree coefficient is written first.
	leading := make([]byte, numBytes)
	a.x.x.x.Marshal(leading)
	assert.Equal(t, leading, buf[:numBytes])
}
