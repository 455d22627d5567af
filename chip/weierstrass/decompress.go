// Package weierstrass implements the short-Weierstrass point-decompression
// precompile chip (spec.md §4.6), generic over the two curves the pack
// wires it to: secp256k1 and BLS12-381's G1 base field. Dispatch on curve is
// the closed-sum-type pattern spec.md §4.8 calls for (internal/fieldparams):
// an unrecognised discriminant panics, since the chip constructs the curve
// at build time, never from guest-controlled data.
//
// © 2025 arena-cache authors. MIT License.
package weierstrass

import (
	"errors"
	"fmt"

	bls12381fp "github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/zkfabric/airtrace/internal/fieldparams"
)

// ErrNotOnCurve is returned when x^3+b is not a quadratic residue in the
// curve's base field, i.e. x does not correspond to any curve point
// (spec.md §4.6 Failure).
var ErrNotOnCurve = errors.New("weierstrass: x does not correspond to a curve point")

// Decompress recovers y from x and a target parity bit (spec.md §4.6 step
// 4): y = sqrt(x^3+b), negated if its parity disagrees with isOdd. xBytes is
// big-endian, curve-width.
func Decompress(curve fieldparams.CurveID, xBytes []byte, isOdd bool) ([]byte, error) {
	switch curve {
	case fieldparams.CurveSecp256k1:
		return decompressSecp256k1(xBytes, isOdd)
	case fieldparams.CurveBLS12381G1:
		return decompressBLS12381(xBytes, isOdd)
	default:
		panic(fmt.Errorf("weierstrass: %w: curve id %d", fieldparams.ErrUnknownDiscriminant, curve))
	}
}

// secp256k1's curve equation is y^2 = x^3 + 7.
func decompressSecp256k1(xBytes []byte, isOdd bool) ([]byte, error) {
	var xArr [32]byte
	copy(xArr[32-len(xBytes):], xBytes)

	var x secp256k1.FieldVal
	x.SetByteSlice(xArr[:])

	var x2, x3, b, rhs secp256k1.FieldVal
	x2.SquareVal(&x)
	x3.Mul2(&x2, &x)
	b.SetInt(7)
	rhs.Add2(&x3, &b)
	rhs.Normalize()

	var y secp256k1.FieldVal
	y.Set(&rhs)
	y.Sqrt()
	y.Normalize()

	var check secp256k1.FieldVal
	check.SquareVal(&y)
	check.Normalize()
	if !check.Equals(&rhs) {
		return nil, ErrNotOnCurve
	}

	if y.IsOdd() != isOdd {
		y.Negate(1)
		y.Normalize()
	}

	var out [32]byte
	y.PutBytes(&out)
	return out[:], nil
}

// BLS12-381's G1 curve equation is y^2 = x^3 + 4.
func decompressBLS12381(xBytes []byte, isOdd bool) ([]byte, error) {
	var x bls12381fp.Element
	x.SetBytes(xBytes)

	var x2, x3, b, rhs bls12381fp.Element
	x2.Square(&x)
	x3.Mul(&x2, &x)
	b.SetUint64(4)
	rhs.Add(&x3, &b)

	var y bls12381fp.Element
	if y.Sqrt(&rhs) == nil {
		return nil, ErrNotOnCurve
	}

	outBytes := y.Bytes()
	wasOdd := outBytes[len(outBytes)-1]&1 == 1
	if wasOdd != isOdd {
		y.Neg(&y)
		outBytes = y.Bytes()
	}
	return outBytes[:], nil
}
