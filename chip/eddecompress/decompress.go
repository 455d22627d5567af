// Package eddecompress implements the Edwards25519 point-decompression
// precompile chip (spec.md §4.5): recovering the x coordinate of a curve
// point from its compressed (y, sign) representation.
//
// © 2025 arena-cache authors. MIT License.
package eddecompress

import (
	"encoding/binary"
	"errors"

	"filippo.io/edwards25519/field"
)

// ErrNotOnCurve is returned when the witnessed y coordinate has no matching
// x on the curve (spec.md §4.5 Failure): u/v is not a quadratic residue.
var ErrNotOnCurve = errors.New("eddecompress: y does not correspond to a curve point")

// curveD returns the Edwards25519 curve constant d = -121665/121666, derived
// directly from the curve equation's small integer coefficients rather than
// a baked-in 32-byte literal, so the constant's provenance stays legible.
func curveD() *field.Element {
	num := new(field.Element).Negate(smallElement(121665))
	den := new(field.Element).Invert(smallElement(121666))
	return new(field.Element).Multiply(num, den)
}

func smallElement(v uint64) *field.Element {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:8], v)
	e, err := new(field.Element).SetBytes(buf[:])
	if err != nil {
		panic("eddecompress: invalid small-constant encoding: " + err.Error())
	}
	return e
}

// Decompress recovers x from a compressed point (yBytes, sign): the
// syscall-side reference algorithm spec.md §4.5 step 4 describes.
//
//  1. y = reduce(yBytes)
//  2. u = y^2 - 1, v = d*y^2 + 1
//  3. x = sqrt(u/v); fail if u/v is not a square
//  4. negate x if its sign bit disagrees with the witnessed sign bit
func Decompress(yBytes [32]byte, sign bool) (xBytes [32]byte, err error) {
	y, err := new(field.Element).SetBytes(yBytes[:])
	if err != nil {
		return xBytes, err
	}

	one := smallElement(1)
	y2 := new(field.Element).Square(y)
	u := new(field.Element).Subtract(y2, one)
	v := new(field.Element).Multiply(curveD(), y2)
	v.Add(v, one)

	x := new(field.Element)
	_, wasSquare := x.SqrtRatio(u, v)
	if wasSquare == 0 {
		return xBytes, ErrNotOnCurve
	}

	if x.IsNegative() == 1 != sign {
		x.Negate(x)
	}

	copy(xBytes[:], x.Bytes())
	return xBytes, nil
}
