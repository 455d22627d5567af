// Package fieldsub implements the BLS12-381 base-field subtraction
// precompile chip (spec.md §4.7): p = p - q (mod the BLS12-381 Fp modulus),
// reading q at clk and writing the result back over p's memory at clk+1.
//
// © 2025 arena-cache authors. MIT License.
package fieldsub

import (
	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/internal/fieldops"
	"github.com/zkfabric/airtrace/internal/fieldparams"
	"github.com/zkfabric/airtrace/record"
)

var curve = fieldparams.CurveBLS12381G1 // BLS12-381 G1's base field is Fp.

const nbWords = 12 // 384 bits / 32

const (
	colIsReal = 0
	colShard  = 1
	colClk    = 2
	colPPtr   = 3
	colQPtr   = 4
	colP      = 5              // nbWords columns: p's pre-image limbs
	colQ      = colP + nbWords // nbWords columns: q's pre-image limbs
	colResult = colQ + nbWords // 2*nbWords columns: FieldOpCols.Result (16-bit limbs)
	colCarry  = colResult + 2*nbWords
	colPMem   = colCarry + 1                                 // nbWords * MemoryAccessColsWidth: writes at clk+1
	colQMem   = colPMem + nbWords*chip.MemoryAccessColsWidth // nbWords * MemoryAccessColsWidth: reads at clk
	width     = colQMem + nbWords*chip.MemoryAccessColsWidth
)

// Chip subtracts BLS12-381 base-field elements (spec.md §4.7).
type Chip struct{}

// New returns an Fp-subtraction chip.
func New() *Chip { return &Chip{} }

func (c *Chip) Name() string { return "Bls12381FpSub" }

func (c *Chip) Width() int { return width }

func (c *Chip) Included(shard *record.ExecutionRecord) bool {
	return len(shard.Bls12381FpSubEvents) > 0
}

// GenerateTrace lays out one row per Bls12381FpSubEvent: p's and q's
// pre-image limbs, the FieldOpCols witnessing p-q mod the field modulus, and
// the memory-access columns for q's read (at clk) and p's write (at
// clk+1, spec.md §4.7's "write offset" edge case).
func (c *Chip) GenerateTrace(input, output *record.ExecutionRecord) (*chip.RowMajorMatrix, error) {
	m := chip.NewRowMajorMatrix(width)

	for _, ev := range input.Bls12381FpSubEvents {
		row := make([]babybear.Element, width)
		row[colIsReal] = babybear.One()
		row[colShard] = babybear.FromUint64(uint64(ev.Shard))
		row[colClk] = babybear.FromUint64(uint64(ev.Clk))
		row[colPPtr] = babybear.FromUint64(uint64(ev.PPtr))
		row[colQPtr] = babybear.FromUint64(uint64(ev.QPtr))

		for i, w := range ev.P {
			row[colP+i] = babybear.FromUint64(uint64(w))
		}
		for i, w := range ev.Q {
			row[colQ+i] = babybear.FromUint64(uint64(w))
		}

		opCols := fieldops.NewFieldOpCols(curve, fieldops.OpSub)
		opCols.Populate(curve, ev.P, ev.Q, ev.Shard, output.ByteLookups)
		copy(row[colResult:colResult+2*nbWords], opCols.Result)
		row[colCarry] = opCols.Carry

		for i, mr := range ev.PMemRecords {
			var cols chip.MemoryAccessCols
			chip.PopulateMemoryAccess(&cols, mr, output.ByteLookups)
			cols.WriteTo(row, colPMem+i*chip.MemoryAccessColsWidth)
		}
		for i, mr := range ev.QMemRecords {
			var cols chip.MemoryAccessCols
			chip.PopulateMemoryAccess(&cols, mr, output.ByteLookups)
			cols.WriteTo(row, colQMem+i*chip.MemoryAccessColsWidth)
		}

		m.AppendRow(row)
	}

	m.PadToPowerOfTwo(func() []babybear.Element {
		return make([]babybear.Element, width)
	})
	return m, nil
}

// wordBytes decomposes a 32-bit word into the little-endian byte-wise form
// MemoryAccessCols.Value uses, so a single-column word witness (colP/colQ)
// can be checked against a memory-access block.
func wordBytes(w uint32) [4]babybear.Element {
	var out [4]babybear.Element
	for i := 0; i < 4; i++ {
		out[i] = babybear.FromUint64(uint64(byte(w >> (8 * i))))
	}
	return out
}

// Eval checks that row's witnessed result matches p-q mod the field modulus
// and that the write clk is exactly the read clk plus one, gated by
// is_real (spec.md §4.7, §8 property 4); ties both memory-access blocks to
// the row's limb columns and services the Fp-subtract syscall once per row.
func (c *Chip) Eval(b chip.AirBuilder, row []babybear.Element) {
	isReal := row[colIsReal]
	b.AssertBool(isReal)
	gated := b.When(isReal)
	gated.AssertBool(row[colCarry])

	shardElem := row[colShard]
	clkElem := row[colClk]
	clkPlusOne := clkElem.Add(babybear.One())
	pPtr := uint32(row[colPPtr].Uint64())
	qPtr := uint32(row[colQPtr].Uint64())

	b.ReceiveSyscall(shardElem, clkElem,
		babybear.FromUint64(uint64(fieldparams.SyscallBLS12381FpSub)),
		row[colPPtr], row[colQPtr], isReal)

	// QMemRecords reads q at clk; bind each word's witnessed value to the
	// q pre-image column it was populated from.
	for i := 0; i < nbWords; i++ {
		cols := chip.ReadMemoryAccessCols(row, colQMem+i*chip.MemoryAccessColsWidth)
		value := wordBytes(uint32(row[colQ+i].Uint64()))
		gated.EvalMemoryAccess(cols, shardElem, clkElem, qPtr+uint32(4*i), value, true)
	}

	if isReal.IsZero() {
		return
	}

	p := make([]uint32, nbWords)
	q := make([]uint32, nbWords)
	for i := 0; i < nbWords; i++ {
		p[i] = uint32(row[colP+i].Uint64())
		q[i] = uint32(row[colQ+i].Uint64())
	}

	opCols := fieldops.NewFieldOpCols(curve, fieldops.OpSub)
	opCols.Populate(curve, p, q, 0, nil)
	for i, want := range opCols.Result {
		gated.AssertEq(want, row[colResult+i])
	}
	gated.AssertEq(opCols.Carry, row[colCarry])

	// PMemRecords writes the result at clk+1: bind each word's witnessed
	// value to the same result just checked against the recomputed
	// subtraction, at the write-offset clk.
	resultWords := opCols.ResultWords()
	for i := 0; i < nbWords; i++ {
		cols := chip.ReadMemoryAccessCols(row, colPMem+i*chip.MemoryAccessColsWidth)
		value := wordBytes(resultWords[i])
		gated.EvalMemoryAccess(cols, shardElem, clkPlusOne, pPtr+uint32(4*i), value, false)
	}
}
