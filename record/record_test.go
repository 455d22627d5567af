package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestProgram() *Program {
	return &Program{Instructions: []uint32{0x13, 0x13}, EntryPC: 0}
}

func TestAppendMergesEveryStream(t *testing.T) {
	prog := newTestProgram()
	r := New(0, prog)
	r.CPUEvents = []CPUEvent{{Shard: 1, Clk: 0, PC: 0, NextPC: 4}}
	r.AluEvents[AluAdd] = []AluEvent{{Shard: 1, Op: AluAdd, A: 1, B: 1, C: 2}}
	r.ByteLookups.AddByteLookupEvent(ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1})
	r.NeedsNonceColumns = true

	other := New(0, prog)
	other.CPUEvents = []CPUEvent{{Shard: 1, Clk: 1, PC: 4, NextPC: 8}}
	other.AluEvents[AluAdd] = []AluEvent{{Shard: 1, Op: AluAdd, A: 2, B: 2, C: 4}}
	other.ByteLookups.AddByteLookupEvent(ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1})
	other.EdDecompressEvents = []EdDecompressEvent{{Shard: 1, Ptr: 100}}

	r.Append(other)

	require.Len(t, r.CPUEvents, 2)
	require.Len(t, r.AluEvents[AluAdd], 2)
	require.Len(t, r.EdDecompressEvents, 1)
	require.Equal(t, uint64(2), r.ByteLookups[1][ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1}])
	require.True(t, r.NeedsNonceColumns)
}

func TestAppendOnNilOtherIsNoop(t *testing.T) {
	r := New(0, newTestProgram())
	r.CPUEvents = []CPUEvent{{Shard: 1}}
	r.Append(nil)
	require.Len(t, r.CPUEvents, 1)
}

func TestStatsReportsStreamLengths(t *testing.T) {
	r := New(0, newTestProgram())
	r.CPUEvents = make([]CPUEvent, 3)
	r.AluEvents[AluAdd] = make([]AluEvent, 2)

	stats := r.Stats()
	require.Equal(t, 3, stats["cpu_events"])
	require.Equal(t, 2, stats["alu_events_add"])
}

func TestPublicValuesFieldElementsLayout(t *testing.T) {
	r := New(0, newTestProgram())
	r.PublicValues.Shard = 7
	r.PublicValues.StartPC = 100
	r.PublicValues.NextPC = 104
	r.PublicValues.ExitCode = 0
	r.PublicValues.CommittedValueDigest[0] = 0xAB

	words := r.PublicValuesFieldElements()
	require.Len(t, words, 20)
	require.Equal(t, uint32(0xAB000000), words[0])
	require.Equal(t, uint32(7), words[16])
	require.Equal(t, uint32(100), words[17])
	require.Equal(t, uint32(104), words[18])
}
