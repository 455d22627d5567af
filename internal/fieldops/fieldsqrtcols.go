package fieldops

import (
	"math/big"

	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/internal/fieldparams"
	"github.com/zkfabric/airtrace/record"
)

// FieldSqrtCols witnesses a square root of value in curve's base field
// (spec.md §4.6: recovering y from y^2 = x^3+b). Both secp256k1's and
// BLS12-381's base-field moduli are 3 mod 4, so the witness is computed with
// the standard Tonelli-Shanks shortcut for that case: candidate =
// value^((p+1)/4) mod p, verified by squaring.
type FieldSqrtCols struct {
	Result []babybear.Element
}

// NewFieldSqrtCols allocates an empty FieldSqrtCols sized for curve.
func NewFieldSqrtCols(curve fieldparams.CurveID) FieldSqrtCols {
	return FieldSqrtCols{Result: make([]babybear.Element, curve.NbLimbs()*2)}
}

// Populate computes a square root of value (words, little-endian 32-bit) in
// curve's base field. ok is false when value is not a quadratic residue, in
// which case Result is left as the zero element (spec.md §4.6 Failure: the
// chip itself decides how to surface this, e.g. via exit_code).
func (cols *FieldSqrtCols) Populate(curve fieldparams.CurveID, value []uint32, shard record.Shard, lookups record.ByteLookupMap) (ok bool) {
	modulus := ModulusFor(curve)
	v := wordsToBig(value)
	v.Mod(v, modulus)

	root, ok := sqrtMod3(modulus, v)
	if !ok {
		return false
	}

	words := bigToWords(root, curve.NbLimbs())
	populateLimbs(cols.Result, words, shard, lookups)
	return true
}

// sqrtMod3 computes a square root of v modulo a prime p with p mod 4 == 3,
// the case both curves' base fields fall into.
func sqrtMod3(p, v *big.Int) (*big.Int, bool) {
	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Rsh(exp, 2) // (p+1)/4

	candidate := new(big.Int).Exp(v, exp, p)
	check := new(big.Int).Mul(candidate, candidate)
	check.Mod(check, p)
	if check.Cmp(v) != 0 {
		return nil, false
	}
	return candidate, true
}

// ResultWords reassembles cols.Result's 16-bit limbs back into 32-bit words.
func (cols FieldSqrtCols) ResultWords() []uint32 {
	words := make([]uint32, len(cols.Result)/2)
	for i := range words {
		lo := uint32(cols.Result[2*i].Uint64())
		hi := uint32(cols.Result[2*i+1].Uint64())
		words[i] = lo | (hi << 16)
	}
	return words
}
