/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

// PointForm selects the byte encoding of a curve point.
type PointForm byte

const (
	// Infinity is the one-byte encoding of the point at infinity.
	Infinity PointForm = 0x00
	// Compressed carries x and the parity of y in the prefix (0x02/0x03).
	Compressed PointForm = 0x02
	// Uncompressed carries x‖y after a 0x04 prefix.
	Uncompressed PointForm = 0x04
	// Hybrid carries x‖y and the parity of y in the prefix (0x06/0x07).
	Hybrid PointForm = 0x06
)

func (f PointForm) String() string {
	switch f {
	case Infinity:
		return "INFINITY"
	case Compressed:
		return "COMPRESSED"
	case Uncompressed:
		return "UNCOMPRESSED"
	case Hybrid:
		return "HYBRID"
	default:
		return "UNKNOWN"
	}
}

func encodePoint(form PointForm, odd bool, coordLen int, writeX, writeY func([]byte)) []byte {
	switch form {
	case Compressed:
		out := make([]byte, 1+coordLen)
		out[0] = byte(Compressed)
		if odd {
			out[0] |= 1
		}
		writeX(out[1:])
		return out
	case Hybrid:
		out := make([]byte, 1+2*coordLen)
		out[0] = byte(Hybrid)
		if odd {
			out[0] |= 1
		}
		writeX(out[1 : 1+coordLen])
		writeY(out[1+coordLen:])
		return out
	default:
		out := make([]byte, 1+2*coordLen)
		out[0] = byte(Uncompressed)
		writeX(out[1 : 1+coordLen])
		writeY(out[1+coordLen:])
		return out
	}
}

// Marshal encodes e in uncompressed form.
func (e *G1) Marshal() []byte {
	return e.MarshalForm(Uncompressed)
}

// MarshalForm encodes e in the given form. The point at infinity always
// encodes as the single byte 0x00.
func (e *G1) MarshalForm(form PointForm) []byte {
	if e.IsInfinity() {
		return []byte{byte(Infinity)}
	}
	a := new(g1Point).Set(&e.p).MakeAffine()
	return encodePoint(form, a.y.n.Bit(0) == 1, numBytes, a.x.Marshal, a.y.Marshal)
}

// Unmarshal decodes any supported form into e. The prefix must belong to the
// closed set of forms and the point must lie on the curve.
func (e *G1) Unmarshal(m []byte) error {
	if len(m) == 0 {
		return ErrDecoding
	}

	x, y := &gfP{}, &gfP{}
	switch prefix := m[0]; prefix {
	case byte(Infinity):
		if len(m) != 1 {
			return ErrDecoding
		}
		e.p.SetInfinity()
		return nil

	case 0x02, 0x03:
		if len(m) != 1+numBytes {
			return ErrDecoding
		}
		if err := x.Unmarshal(m[1:]); err != nil {
			return err
		}
		rhs := new(gfP).Square(x)
		rhs.Mul(rhs, x)
		rhs.Add(rhs, curveB)
		if _, err := y.Sqrt(rhs); err != nil {
			return ErrDecoding
		}
		if y.n.Bit(0) != uint(prefix&1) {
			y.Neg(y)
		}

	case 0x04, 0x06, 0x07:
		if len(m) != 1+2*numBytes {
			return ErrDecoding
		}
		if err := x.Unmarshal(m[1 : 1+numBytes]); err != nil {
			return err
		}
		if err := y.Unmarshal(m[1+numBytes:]); err != nil {
			return err
		}
		if prefix != 0x04 && y.n.Bit(0) != uint(prefix&1) {
			return ErrDecoding
		}

	default:
		return ErrDecoding
	}

	p := new(g1Point).SetAffine(x, y)
	if !p.IsOnCurve(curveB) {
		return ErrDecoding
	}
	e.p.Set(p)
	return nil
}

// Marshal encodes e in uncompressed form: 0x04‖x‖y with each Fp2 coordinate
// written as its u coefficient followed by its constant term.
func (e *G2) Marshal() []byte {
	return e.MarshalForm(Uncompressed)
}

// MarshalForm encodes e in the given form. The parity bit is taken from the
// constant term of y.
func (e *G2) MarshalForm(form PointForm) []byte {
	if e.IsInfinity() {
		return []byte{byte(Infinity)}
	}
	a := new(g2Point).Set(&e.p).MakeAffine()
	return encodePoint(form, a.y.y.n.Bit(0) == 1, 2*numBytes, a.x.Marshal, a.y.Marshal)
}

// Unmarshal decodes any supported form into e. Besides the curve equation the
// point must have order N.
func (e *G2) Unmarshal(m []byte) error {
	if len(m) == 0 {
		return ErrDecoding
	}

	x, y := &gfP2{}, &gfP2{}
	switch prefix := m[0]; prefix {
	case byte(Infinity):
		if len(m) != 1 {
			return ErrDecoding
		}
		e.p.SetInfinity()
		return nil

	case 0x02, 0x03:
		if len(m) != 1+2*numBytes {
			return ErrDecoding
		}
		if err := x.Unmarshal(m[1:]); err != nil {
			return err
		}
		rhs := new(gfP2).Square(x)
		rhs.Mul(rhs, x)
		rhs.Add(rhs, twistB)
		if _, err := y.Sqrt(rhs); err != nil {
			return ErrDecoding
		}
		if y.y.n.Bit(0) != uint(prefix&1) {
			y.Neg(y)
		}

	case 0x04, 0x06, 0x07:
		if len(m) != 1+4*numBytes {
			return ErrDecoding
		}
		if err := x.Unmarshal(m[1 : 1+2*numBytes]); err != nil {
			return err
		}
		if err := y.Unmarshal(m[1+2*numBytes:]); err != nil {
			return err
		}
		if prefix != 0x04 && y.y.n.Bit(0) != uint(prefix&1) {
			return ErrDecoding
		}

	default:
		return ErrDecoding
	}

	p := &G2{}
	p.p.SetAffine(x, y)
	if !p.IsOnCurve() || !p.inSubgroup() {
		return ErrDecoding
	}
	e.p.Set(&p.p)
	return nil
}
