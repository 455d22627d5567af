package weierstrass

// chip.go implements chip.MachineAir for short-Weierstrass decompression
// (spec.md §4.4, §4.6), generic over fieldparams.CurveID. Row width depends
// on the curve's coordinate width (32 bytes for secp256k1, 48 for
// BLS12-381), computed once at construction into a layout the chip reuses
// for both GenerateTrace and Eval.
//
// © 2025 arena-cache authors. MIT License.

import (
	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/internal/fieldparams"
	"github.com/zkfabric/airtrace/record"
)

type layout struct {
	nbWords, bytesLen                             int
	colIsReal, colShard, colClk, colPtr, colIsOdd int
	colX, colY, colXMem, colYMem                  int
	width                                          int
}

func newLayout(curve fieldparams.CurveID) layout {
	nbWords := curve.NbLimbs()
	bytesLen := nbWords * 4

	l := layout{nbWords: nbWords, bytesLen: bytesLen}
	l.colIsReal, l.colShard, l.colClk, l.colPtr, l.colIsOdd = 0, 1, 2, 3, 4
	l.colX = 5
	l.colY = l.colX + bytesLen
	l.colXMem = l.colY + bytesLen
	l.colYMem = l.colXMem + nbWords*chip.MemoryAccessColsWidth
	l.width = l.colYMem + nbWords*chip.MemoryAccessColsWidth
	return l
}

// Chip decompresses short-Weierstrass points for one curve (spec.md §4.6).
type Chip struct {
	Curve fieldparams.CurveID
	lay   layout
}

// New returns a Weierstrass decompression chip specialised to curve.
func New(curve fieldparams.CurveID) *Chip {
	return &Chip{Curve: curve, lay: newLayout(curve)}
}

func (c *Chip) Name() string { return "WeierstrassDecompress_" + c.Curve.String() }

func (c *Chip) Width() int { return c.lay.width }

func (c *Chip) events(shard *record.ExecutionRecord) []record.WeierstrassDecompressEvent {
	switch c.Curve {
	case fieldparams.CurveSecp256k1:
		return shard.Secp256k1DecompressEvents
	case fieldparams.CurveBLS12381G1:
		return shard.Bls12381G1DecompressEvents
	default:
		panic(fieldparams.ErrUnknownDiscriminant)
	}
}

func (c *Chip) Included(shard *record.ExecutionRecord) bool {
	return len(c.events(shard)) > 0
}

// syscallID returns the precompile entry point this curve's decompression
// chip services (spec.md §4.4.2).
func (c *Chip) syscallID() fieldparams.SyscallID {
	switch c.Curve {
	case fieldparams.CurveSecp256k1:
		return fieldparams.SyscallSecp256k1Decompress
	case fieldparams.CurveBLS12381G1:
		return fieldparams.SyscallBLS12381Decompress
	default:
		panic(fieldparams.ErrUnknownDiscriminant)
	}
}

// GenerateTrace lays out one row per decompression event, padding with
// all-zero (is_real=0) rows up to the next power of two.
func (c *Chip) GenerateTrace(input, output *record.ExecutionRecord) (*chip.RowMajorMatrix, error) {
	l := c.lay
	m := chip.NewRowMajorMatrix(l.width)

	for _, ev := range c.events(input) {
		row := make([]babybear.Element, l.width)
		row[l.colIsReal] = babybear.One()
		row[l.colShard] = babybear.FromUint64(uint64(ev.Shard))
		row[l.colClk] = babybear.FromUint64(uint64(ev.Clk))
		row[l.colPtr] = babybear.FromUint64(uint64(ev.Ptr))
		row[l.colIsOdd] = babybear.FromBool(ev.IsOdd)

		for i, b := range ev.XBytes {
			row[l.colX+i] = babybear.FromUint64(uint64(b))
		}
		for i, b := range ev.DecompressedYBytes {
			row[l.colY+i] = babybear.FromUint64(uint64(b))
		}

		for i, mr := range ev.XMemRecords {
			var cols chip.MemoryAccessCols
			chip.PopulateMemoryAccess(&cols, mr, output.ByteLookups)
			cols.WriteTo(row, l.colXMem+i*chip.MemoryAccessColsWidth)
		}
		for i, mr := range ev.YMemRecords {
			var cols chip.MemoryAccessCols
			chip.PopulateMemoryAccess(&cols, mr, output.ByteLookups)
			cols.WriteTo(row, l.colYMem+i*chip.MemoryAccessColsWidth)
		}

		m.AppendRow(row)
	}

	m.PadToPowerOfTwo(func() []babybear.Element {
		return make([]babybear.Element, l.width)
	})
	return m, nil
}

// Eval checks that row's witnessed y actually decompresses from its
// witnessed x and parity bit (spec.md §8 property 4), gated by is_real; ties
// both memory-access blocks to the row's coordinate columns and services the
// curve's decompression syscall once per row (spec.md §4.4.2).
func (c *Chip) Eval(b chip.AirBuilder, row []babybear.Element) {
	l := c.lay
	isReal := row[l.colIsReal]
	b.AssertBool(isReal)
	gated := b.When(isReal)
	gated.AssertBool(row[l.colIsOdd])

	shardElem := row[l.colShard]
	clkElem := row[l.colClk]
	clkPlusOne := clkElem.Add(babybear.One())
	ptr := uint32(row[l.colPtr].Uint64())

	b.ReceiveSyscall(shardElem, clkElem,
		babybear.FromUint64(uint64(c.syscallID())),
		row[l.colPtr], row[l.colIsOdd], isReal)

	// XMemRecords reads the compressed x at ptr+bytesLen..ptr+2*bytesLen (the
	// high half of the slot); bind each word's witnessed value to the x
	// coordinate columns it was populated from.
	for i := 0; i < l.nbWords; i++ {
		cols := chip.ReadMemoryAccessCols(row, l.colXMem+i*chip.MemoryAccessColsWidth)
		value := [4]babybear.Element{row[l.colX+4*i], row[l.colX+4*i+1], row[l.colX+4*i+2], row[l.colX+4*i+3]}
		gated.EvalMemoryAccess(cols, shardElem, clkElem, ptr+uint32(l.bytesLen)+uint32(4*i), value, true)
	}

	if isReal.IsZero() {
		return
	}

	xBytes := make([]byte, l.bytesLen)
	yBytes := make([]byte, l.bytesLen)
	for i := 0; i < l.bytesLen; i++ {
		xBytes[i] = byte(row[l.colX+i].Uint64())
		yBytes[i] = byte(row[l.colY+i].Uint64())
	}

	want, err := Decompress(c.Curve, xBytes, !row[l.colIsOdd].IsZero())
	if err != nil {
		panic("weierstrass: Eval: witnessed x is not a valid curve point: " + err.Error())
	}
	for i := range want {
		gated.AssertEq(babybear.FromUint64(uint64(want[i])), babybear.FromUint64(uint64(yBytes[i])))
	}

	// YMemRecords writes the decompressed y at ptr..ptr+bytesLen (the low
	// half of the slot) one clk after the x read; bind each word's witnessed
	// value to the same y columns just checked against want.
	for i := 0; i < l.nbWords; i++ {
		cols := chip.ReadMemoryAccessCols(row, l.colYMem+i*chip.MemoryAccessColsWidth)
		value := [4]babybear.Element{row[l.colY+4*i], row[l.colY+4*i+1], row[l.colY+4*i+2], row[l.colY+4*i+3]}
		gated.EvalMemoryAccess(cols, shardElem, clkPlusOne, ptr+uint32(4*i), value, false)
	}
}
