// Package fieldops supplies the three field-operation gadgets spec.md §4.4.2
// declares but treats as external building blocks ("FieldOpCols",
// "FieldSqrtCols", "FieldRangeCols"): concrete limb-based witness-column
// populators and evaluators. chip/fieldsub calls into FieldOpCols;
// FieldSqrtCols and FieldRangeCols are not used by any chip (chip/weierstrass
// computes its square roots with the curve libraries directly), only by
// this package's tests. SPEC_FULL.md §5.4 is explicit that these need
// working code, not stubs, to be exercised and tested — but the actual
// polynomial identities a STARK prover would check over them stay a
// documented surface here, not a soundness proof (the prover is out of
// scope, spec.md §1).
//
// Field elements are represented in memory/records as a little-endian
// sequence of 32-bit words (fieldparams.CurveID.NbLimbs of them); witness
// columns split each word into two 16-bit limbs so every limb fits well
// inside the Baby Bear field with room for a prover's range/carry checks.
//
// © 2025 arena-cache authors. MIT License.
package fieldops

import (
	"fmt"
	"math/big"

	"github.com/zkfabric/airtrace/internal/fieldparams"
)

// Operation selects which field operation a FieldOpCols witnesses.
type Operation uint8

const (
	OpAdd Operation = iota
	OpSub
	OpMul
)

func (op Operation) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	default:
		return "unknown"
	}
}

var (
	secp256k1Modulus, _  = new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)
	bls12381FpModulus, _ = new(big.Int).SetString("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab", 16)
)

// ModulusFor returns curve's base-field modulus. Panics on an unrecognised
// discriminant, per the closed-sum-type dispatch rule (spec.md §4.8).
func ModulusFor(curve fieldparams.CurveID) *big.Int {
	switch curve {
	case fieldparams.CurveSecp256k1:
		return new(big.Int).Set(secp256k1Modulus)
	case fieldparams.CurveBLS12381G1:
		return new(big.Int).Set(bls12381FpModulus)
	default:
		panic(fmt.Errorf("fieldops: %w: curve id %d", fieldparams.ErrUnknownDiscriminant, curve))
	}
}

// wordsToBig interprets words as the little-endian 32-bit-word encoding of a
// field element (spec.md §3: memory is word-granular).
func wordsToBig(words []uint32) *big.Int {
	v := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		v.Lsh(v, 32)
		v.Or(v, new(big.Int).SetUint64(uint64(words[i])))
	}
	return v
}

// bigToWords decomposes v into nbWords little-endian 32-bit words, truncating
// (panicking would be wrong here: callers first reduce mod the field
// modulus, so v always fits).
func bigToWords(v *big.Int, nbWords int) []uint32 {
	out := make([]uint32, nbWords)
	mask := new(big.Int).SetUint64(0xFFFFFFFF)
	tmp := new(big.Int).Set(v)
	for i := 0; i < nbWords; i++ {
		word := new(big.Int).And(tmp, mask)
		out[i] = uint32(word.Uint64())
		tmp.Rsh(tmp, 32)
	}
	return out
}
