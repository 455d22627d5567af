package fieldops

import (
	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/internal/fieldparams"
)

// FieldRangeCols witnesses that a field element's word encoding represents a
// value strictly less than the curve's modulus (spec.md §4.4.2: chips must
// range-check that decoded coordinates are canonical, not merely
// same-width). LtModulus is the single boolean the row carries; the
// byte-level comparison that produces it happens once, in Populate, using
// plain big.Int arithmetic — a real prover would instead build this out of a
// borrow-chain of limb comparisons, which is exactly the kind of detail left
// to the out-of-scope STARK backend (spec.md §1).
type FieldRangeCols struct {
	LtModulus babybear.Element
}

// Populate sets cols.LtModulus from value and curve's modulus.
func (cols *FieldRangeCols) Populate(curve fieldparams.CurveID, value []uint32) {
	v := wordsToBig(value)
	cols.LtModulus = babybear.FromBool(v.Cmp(ModulusFor(curve)) < 0)
}

// Eval checks LtModulus is boolean-shaped and, when required is true (the
// row claims a canonical value), that it is exactly one.
func (cols FieldRangeCols) Eval(assertBool func(babybear.Element), assertZero func(babybear.Element), required bool) {
	assertBool(cols.LtModulus)
	if required {
		assertZero(babybear.One().Sub(cols.LtModulus))
	}
}
