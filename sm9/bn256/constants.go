/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bn256

import (
	"math/big"
	"strings"
)

func bigFromHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bn256: invalid constant " + s)
	}
	return n
}

const numBytes = 32

var (
	// P is the characteristic of the base field.
	P = bigFromHex("B640000002A3A6F1D603AB4FF58EC74521F2934B1A7AEEDBE56F9B27E351457D")

	// Order is the prime order N of G1, G2 and GT.
	Order = bigFromHex("B640000002A3A6F1D603AB4FF58EC74449F2934B18EA8BEEE56EE19CD69ECF25")

	// u is the BN parameter t of the curve family.
	u = bigFromHex("600000000058F98A")

	// sixUPlus2 drives the Miller loop.
	sixUPlus2 = new(big.Int).Add(new(big.Int).Mul(big.NewInt(6), u), big.NewInt(2))
)

var (
	sqrtExpU   = new(big.Int).Rsh(P, 3)
	sqrtExpU1  = new(big.Int).Add(sqrtExpU, big.NewInt(1))
	sqrtExp2u1 = new(big.Int).Add(new(big.Int).Lsh(sqrtExpU, 1), big.NewInt(1))

	minusOne = new(gfP).Neg(newGFp(1))

	big6  = big.NewInt(6)
	big12 = big.NewInt(12)
	big18 = big.NewInt(18)
	big30 = big.NewInt(30)
	big36 = big.NewInt(36)
)

// curveB is the coefficient of y² = x³ + b on E(Fp); twistB = b·u on E'(Fp2).
var (
	curveB = newGFp(5)
	twistB = &gfP2{x: *newGFp(5)}
)

// Generators of G1 and G2.
var (
	g1GenX = gfPFromHex("93DE051D62BF718FF5ED0704487D01D6E1E4086909DC3280E8C4E4817C66DDDD")
	g1GenY = gfPFromHex("21FE8DDA4F21E607631065125C395BBC1C1C00CBFA6024350C464CD70A3EA616")

	g2GenX = &gfP2{
		x: *gfPFromHex("85AEF3D078640C98597B6027B441A01FF1DD2C190F5E93C454806C11D8806141"),
		y: *gfPFromHex("3722755292130B08D2AAB97FD34EC120EE265948D19C17ABF9B7213BAF82D65B"),
	}
	g2GenY = &gfP2{
		x: *gfPFromHex("17509B092E845C1266BA0D262CBEE6ED0736A96FA347C8BD856DC76B84EBEB96"),
		y: *gfPFromHex("A7CF28D519BE3DA65F3170153D278FF247EFBA98A71A08116215BBA5C999A7C7"),
	}
)

// Coefficients of the p-power Frobenius on the twist: π(x, y) = (x̄·c1x, ȳ·c1y)
// and the x multiplier of π² followed by negation.
var (
	twistFrobX  = gfPFromHex("B640000002A3A6F0E303AB4FF2EB2052A9F02115CAEF75E70F738991676AF24A")
	twistFrobY  = gfPFromHex("49DB721A269967C4E0A8DEBC0783182F82555233139E9D63EFBD7B54092C756C")
	twistFrob2X = gfPFromHex("B640000002A3A6F0E303AB4FF2EB2052A9F02115CAEF75E70F738991676AF249")
)

// Fp12 Frobenius tables. Entry i multiplies the i-th Fp coefficient of an
// element in x.x.x, x.x.y, x.y.x, ... , z.y.y order.
var (
	frobWords = map[string]*gfP{
		"w0": newGFp(1),
		"w1": gfPFromHex("3F23EA58E5720BDB843C6CFA9C08674947C5C86E0DDD04EDA91D8354377B698B"),
		"w2": gfPFromHex("F300000002A3A6F2780272354F8B78F4D5FC11967BE65334"),
		"w3": gfPFromHex("6C648DE5DC0A3F2CF55ACC93EE0BAF159F9D411806DC5177F5B21FD3DA24D011"),
		"w4": gfPFromHex("F300000002A3A6F2780272354F8B78F4D5FC11967BE65333"),
		"w5": gfPFromHex("2D40A38CF6983351711E5F99520347CC57D778A9F8FF4C8A4C949C7FA2A96686"),
	}

	frobP1 = frobTable("-w5 w5 -w2 w2 -w4 w4 -w1 w1 -w3 w3 -w0 w0")
	frobP2 = frobTable("-w4 -w4 w4 w4 -w2 -w2 w2 w2 -w0 -w0 w0 w0")
	frobP3 = frobTable("-w3 w3 w0 -w0 -w0 w0 -w3 w3 w3 -w3 -w0 w0")
	frobP6 = frobTable("-w0 -w0 w0 w0 w0 w0 -w0 -w0 -w0 -w0 w0 w0")
)

func frobTable(spec string) *[12]gfP {
	words := strings.Fields(spec)
	if len(words) != 12 {
		panic("bn256: frobenius table needs 12 entries")
	}

	tbl := new([12]gfP)
	for i, w := range words {
		neg := strings.HasPrefix(w, "-")
		c, ok := frobWords[strings.TrimPrefix(w, "-")]
		if !ok {
			panic("bn256: unknown frobenius constant " + w)
		}
		if neg {
			tbl[i].Neg(c)
		} else {
			tbl[i].Set(c)
		}
	}
	return tbl
}
