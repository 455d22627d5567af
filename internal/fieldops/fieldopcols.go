package fieldops

import (
	"math/big"

	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/internal/fieldparams"
	"github.com/zkfabric/airtrace/record"
)

// FieldOpCols witnesses `a OP b mod modulus` for one of the curve's base
// field operations (spec.md §4.4.2, §4.7). Result is stored as 16-bit limbs,
// two per 32-bit memory word, so every limb stays far below the Baby Bear
// modulus. Carry records, for subtraction, whether the unreduced a-b
// required adding the modulus back in (the only "borrow" a single-limb
// field subtraction can produce once performed on the full big integer
// rather than limb-by-limb).
type FieldOpCols struct {
	Op     Operation
	Result []babybear.Element
	Carry  babybear.Element
}

// NewFieldOpCols allocates an empty FieldOpCols sized for curve.
func NewFieldOpCols(curve fieldparams.CurveID, op Operation) FieldOpCols {
	return FieldOpCols{Op: op, Result: make([]babybear.Element, curve.NbLimbs()*2)}
}

// Populate computes (a op b) mod modulus for curve's field, writes the
// little-endian 16-bit limb decomposition into cols.Result, and records one
// byte-range lookup per byte of every limb into lookups (spec.md §4.3: byte
// lookups are a side effect of column population).
func (cols *FieldOpCols) Populate(curve fieldparams.CurveID, a, b []uint32, shard record.Shard, lookups record.ByteLookupMap) {
	modulus := ModulusFor(curve)
	av, bv := wordsToBig(a), wordsToBig(b)

	var result big.Int
	switch cols.Op {
	case OpAdd:
		result.Add(av, bv)
		result.Mod(&result, modulus)
	case OpSub:
		result.Sub(av, bv)
		if result.Sign() < 0 {
			result.Add(&result, modulus)
			cols.Carry = babybear.One()
		} else {
			cols.Carry = babybear.Zero()
		}
	case OpMul:
		result.Mul(av, bv)
		result.Mod(&result, modulus)
	}

	words := bigToWords(&result, curve.NbLimbs())
	populateLimbs(cols.Result, words, shard, lookups)
}

// populateLimbs splits words (32-bit, little-endian) into 16-bit limb
// columns and byte-range-checks every underlying byte.
func populateLimbs(dst []babybear.Element, words []uint32, shard record.Shard, lookups record.ByteLookupMap) {
	for i, w := range words {
		lo := uint16(w)
		hi := uint16(w >> 16)
		dst[2*i] = babybear.FromUint64(uint64(lo))
		dst[2*i+1] = babybear.FromUint64(uint64(hi))
		for _, b := range [4]byte{byte(lo), byte(lo >> 8), byte(hi), byte(hi >> 8)} {
			if lookups != nil {
				lookups.AddByteLookupEvent(record.ByteLookupEvent{Shard: shard, Op: record.ByteOpU8Range, B1: b})
			}
		}
	}
}

// ResultWords reassembles cols.Result's 16-bit limbs back into 32-bit words.
func (cols FieldOpCols) ResultWords() []uint32 {
	words := make([]uint32, len(cols.Result)/2)
	for i := range words {
		lo := uint32(cols.Result[2*i].Uint64())
		hi := uint32(cols.Result[2*i+1].Uint64())
		words[i] = lo | (hi << 16)
	}
	return words
}

// Eval checks only that Carry is boolean. It does not check that each limb
// fits in 16 bits (a range-table property) or the arithmetic identity
// against a and b; no chip in this repository calls it, and chip/fieldsub's
// Eval instead recomputes the operation and compares the result limbs.
func (cols FieldOpCols) Eval(assertBool func(babybear.Element)) {
	assertBool(cols.Carry)
}
