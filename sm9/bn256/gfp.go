/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrDivisionByZero is returned when the additive identity is inverted.
	ErrDivisionByZero = errors.New("bn256: division by zero")
	// ErrNotSquare is returned when a square root is requested for a
	// quadratic non-residue.
	ErrNotSquare = errors.New("bn256: element is not a square")
	// ErrDecoding is returned for malformed field or point encodings.
	ErrDecoding = errors.New("bn256: malformed encoding")
)

// gfP is an element of the base field Fp. The value is kept in [0, p).
type gfP struct {
	n big.Int
}

func newGFp(x int64) *gfP {
	e := &gfP{}
	e.n.SetInt64(x)
	return e.reduce()
}

func gfPFromHex(s string) *gfP {
	e := &gfP{}
	if _, ok := e.n.SetString(s, 16); !ok {
		panic("bn256: invalid field constant " + s)
	}
	return e.reduce()
}

func (e *gfP) String() string {
	return "0x" + e.n.Text(16)
}

func (e *gfP) reduce() *gfP {
	if e.n.Sign() < 0 || e.n.Cmp(P) >= 0 {
		e.n.Mod(&e.n, P)
	}
	return e
}

func (e *gfP) Set(a *gfP) *gfP {
	e.n.Set(&a.n)
	return e
}

// SetBig sets e to x mod p.
func (e *gfP) SetBig(x *big.Int) *gfP {
	e.n.Set(x)
	return e.reduce()
}

func (e *gfP) Big() *big.Int {
	return new(big.Int).Set(&e.n)
}

func (e *gfP) SetZero() *gfP {
	e.n.SetInt64(0)
	return e
}

func (e *gfP) SetOne() *gfP {
	e.n.SetInt64(1)
	return e
}

func (e *gfP) IsZero() bool {
	return e.n.Sign() == 0
}

func (e *gfP) IsOne() bool {
	return e.n.IsInt64() && e.n.Int64() == 1
}

func (e *gfP) Equal(a *gfP) bool {
	return e.n.Cmp(&a.n) == 0
}

func (e *gfP) Add(a, b *gfP) *gfP {
	e.n.Add(&a.n, &b.n)
	if e.n.Cmp(P) >= 0 {
		e.n.Sub(&e.n, P)
	}
	return e
}

func (e *gfP) Sub(a, b *gfP) *gfP {
	e.n.Sub(&a.n, &b.n)
	if e.n.Sign() < 0 {
		e.n.Add(&e.n, P)
	}
	return e
}

func (e *gfP) Neg(a *gfP) *gfP {
	if a.n.Sign() == 0 {
		e.n.SetInt64(0)
		return e
	}
	e.n.Sub(P, &a.n)
	return e
}

func (e *gfP) Double(a *gfP) *gfP {
	return e.Add(a, a)
}

func (e *gfP) Triple(a *gfP) *gfP {
	t := new(gfP).Double(a)
	return e.Add(t, a)
}

func (e *gfP) Mul(a, b *gfP) *gfP {
	e.n.Mul(&a.n, &b.n)
	e.n.Mod(&e.n, P)
	return e
}

func (e *gfP) Square(a *gfP) *gfP {
	return e.Mul(a, a)
}

// Invert sets e to a⁻¹. The additive identity has no inverse.
func (e *gfP) Invert(a *gfP) (*gfP, error) {
	if a.IsZero() {
		return nil, ErrDivisionByZero
	}
	e.n.ModInverse(&a.n, P)
	return e, nil
}

func (e *gfP) Exp(a *gfP, k *big.Int) *gfP {
	e.n.Exp(&a.n, k, P)
	return e
}

// Sqrt sets e to a square root of a. p ≡ 5 (mod 8), so with u = (p-5)/8:
// z = a^(2u+1) is ±1 for a residue, giving y = a^(u+1) when z = 1 and
// y = 2a(4a)^u when z = -1.
func (e *gfP) Sqrt(a *gfP) (*gfP, error) {
	if a.IsZero() {
		return e.SetZero(), nil
	}

	z := new(gfP).Exp(a, sqrtExp2u1)
	y := new(gfP)
	switch {
	case z.IsOne():
		y.Exp(a, sqrtExpU1)
	case z.Equal(minusOne):
		four := new(gfP).Double(a)
		four.Double(four)
		y.Exp(four, sqrtExpU)
		y.Mul(y, a)
		y.Double(y)
	default:
		return nil, ErrNotSquare
	}

	if !new(gfP).Square(y).Equal(a) {
		return nil, ErrNotSquare
	}
	return e.Set(y), nil
}

// Marshal writes the 32-byte big-endian encoding of e into out.
func (e *gfP) Marshal(out []byte) {
	e.n.FillBytes(out[:numBytes])
}

// Unmarshal decodes a 32-byte big-endian value and rejects values >= p.
func (e *gfP) Unmarshal(in []byte) error {
	if len(in) != numBytes {
		return ErrDecoding
	}
	e.n.SetBytes(in)
	if e.n.Cmp(P) >= 0 {
		return ErrDecoding
	}
	return nil
}
