package chip

// memoryaccess.go implements MemoryAccessCols (spec.md §4.4.2, §6): the
// column group every chip uses to witness one memory read or write inside a
// row. Populating it is one of the two places spec.md calls out as emitting
// byte-lookup side effects (the other being field-operation columns, see
// internal/fieldops): every touched byte is range-checked by recording a
// ByteOpU8Range lookup for it.
//
// © 2025 arena-cache authors. MIT License.

import (
	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/record"
)

// MemoryAccessCols witnesses one MemoryRecord: the word's bytes (for a read,
// NewValue's bytes; for a write, both PrevValue's and NewValue's), plus the
// clk the access happened at.
type MemoryAccessCols struct {
	Clk       babybear.Element
	Value     [4]babybear.Element
	PrevValue [4]babybear.Element
	IsWrite   babybear.Element
}

// PopulateMemoryAccess fills cols from rec and records one byte-range lookup
// per touched byte into lookups (spec.md §4.3: "generated as a side effect of
// column population").
func PopulateMemoryAccess(cols *MemoryAccessCols, rec record.MemoryRecord, lookups record.ByteLookupMap) {
	cols.Clk = babybear.FromUint64(uint64(rec.Clk))
	cols.IsWrite = babybear.FromBool(!rec.IsRead())

	for i := 0; i < 4; i++ {
		b := byte(rec.NewValue >> (8 * i))
		cols.Value[i] = babybear.FromUint64(uint64(b))
		lookups.AddByteLookupEvent(record.ByteLookupEvent{Shard: rec.Shard, Op: record.ByteOpU8Range, B1: b})
	}

	if rec.IsRead() {
		cols.PrevValue = cols.Value
		return
	}
	for i := 0; i < 4; i++ {
		b := byte(rec.PrevValue >> (8 * i))
		cols.PrevValue[i] = babybear.FromUint64(uint64(b))
		lookups.AddByteLookupEvent(record.ByteLookupEvent{Shard: rec.Shard, Op: record.ByteOpU8Range, B1: b})
	}
}

// Word reassembles the little-endian byte columns back into a uint32, for
// tests and for chips that need the witnessed value as a scalar.
func (cols MemoryAccessCols) Word() uint32 {
	var w uint32
	for i := 3; i >= 0; i-- {
		w = (w << 8) | uint32(cols.Value[i].Uint64())
	}
	return w
}

// MemoryAccessColsWidth is the number of babybear.Element cells one
// MemoryAccessCols occupies inside a flat row (spec.md §4.4.2: chips lay out
// memory-access witnesses as a fixed-width column group repeated once per
// word touched).
const MemoryAccessColsWidth = 10

// WriteTo writes cols into row starting at offset, the layout every chip's
// GenerateTrace uses to pack its fixed number of memory accesses into one
// flat row alongside its other columns.
func (cols MemoryAccessCols) WriteTo(row []babybear.Element, offset int) {
	row[offset] = cols.Clk
	copy(row[offset+1:offset+5], cols.Value[:])
	copy(row[offset+5:offset+9], cols.PrevValue[:])
	row[offset+9] = cols.IsWrite
}

// ReadMemoryAccessCols is WriteTo's inverse, used by Eval to recover the
// witnessed access from a row it is given.
func ReadMemoryAccessCols(row []babybear.Element, offset int) MemoryAccessCols {
	var cols MemoryAccessCols
	cols.Clk = row[offset]
	copy(cols.Value[:], row[offset+1:offset+5])
	copy(cols.PrevValue[:], row[offset+5:offset+9])
	cols.IsWrite = row[offset+9]
	return cols
}

// assertConsistentWith is the Eval-side counterpart of PopulateMemoryAccess:
// it checks that the witnessed clk and bytes match what the caller expects
// this row's memory access to be (spec.md §8 property 4).
func (cols MemoryAccessCols) assertConsistentWith(b *DebugAirBuilder, shard, clk babybear.Element, addr uint32, value [4]babybear.Element, isRead bool) {
	b.AssertEq(cols.Clk, clk)
	b.AssertBool(cols.IsWrite)
	if isRead {
		b.AssertZero(cols.IsWrite)
	}
	for i := 0; i < 4; i++ {
		b.AssertEq(cols.Value[i], value[i])
	}
}
