package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildCPUEvents creates nShards contiguous shards of eventsPerShard CPU
// events each, with PC/NextPC chained so StartPC[i] == NextPC[i-1].
func buildCPUEvents(nShards, eventsPerShard int) []CPUEvent {
	var events []CPUEvent
	pc := uint32(0)
	for s := 1; s <= nShards; s++ {
		for i := 0; i < eventsPerShard; i++ {
			events = append(events, CPUEvent{
				Shard:  Shard(s),
				Clk:    uint32(i),
				PC:     pc,
				NextPC: pc + 4,
			})
			pc += 4
		}
	}
	return events
}

func TestShardSingleCPUEventProducesOneShard(t *testing.T) {
	r := New(0, newTestProgram())
	r.CPUEvents = []CPUEvent{{Shard: 1, PC: 0, NextPC: 4}}

	shards := r.Shard(DefaultShardingConfig())
	require.Len(t, shards, 1)
	require.Equal(t, uint32(1), shards[0].PublicValues.Shard)
}

func TestShardPanicsOnEmptyCPUEvents(t *testing.T) {
	r := New(0, newTestProgram())
	require.Panics(t, func() { r.Shard(DefaultShardingConfig()) })
}

func TestShardConcatenationAndContinuity(t *testing.T) {
	// spec.md §8 property 2.
	r := New(0, newTestProgram())
	r.CPUEvents = buildCPUEvents(4, 10)
	original := append([]CPUEvent(nil), r.CPUEvents...)

	shards := r.Shard(DefaultShardingConfig())
	require.Len(t, shards, 4)

	var concatenated []CPUEvent
	for i, sh := range shards {
		concatenated = append(concatenated, sh.CPUEvents...)
		if i > 0 {
			require.Equal(t, shards[i-1].PublicValues.NextPC, sh.PublicValues.StartPC)
			require.Greater(t, sh.PublicValues.Shard, shards[i-1].PublicValues.Shard)
		}
	}
	require.Equal(t, original, concatenated)
}

func TestShardEmptyALUStreamsYieldEmptySections(t *testing.T) {
	r := New(0, newTestProgram())
	r.CPUEvents = buildCPUEvents(2, 5)

	shards := r.Shard(DefaultShardingConfig())
	for _, sh := range shards {
		require.Empty(t, sh.AluEvents[AluAdd])
	}
}

func TestShardALUChunkZipPairing(t *testing.T) {
	// Concrete scenario, spec.md §8: two shards of 100 CPU events each and
	// ALU length 300: all 200 add events land in the first shard; second
	// shard has empty add stream.
	r := New(0, newTestProgram())
	r.CPUEvents = buildCPUEvents(2, 100)
	addEvents := make([]AluEvent, 200)
	for i := range addEvents {
		addEvents[i] = AluEvent{Op: AluAdd, A: uint32(i)}
	}
	r.AluEvents[AluAdd] = addEvents

	cfg := DefaultShardingConfig(WithAluLen(AluAdd, 300))
	shards := r.Shard(cfg)
	require.Len(t, shards, 2)
	require.Len(t, shards[0].AluEvents[AluAdd], 200)
	require.Empty(t, shards[1].AluEvents[AluAdd])
}

func TestShardALUChunkZipDropsExcessChunks(t *testing.T) {
	// More chunks than CPU shards: excess is dropped, not wrapped around.
	r := New(0, newTestProgram())
	r.CPUEvents = buildCPUEvents(2, 10)
	addEvents := make([]AluEvent, 30)
	r.AluEvents[AluAdd] = addEvents

	cfg := DefaultShardingConfig(WithAluLen(AluAdd, 10)) // -> 3 chunks, 2 shards
	shards := r.Shard(cfg)
	require.Len(t, shards[0].AluEvents[AluAdd], 10)
	require.Len(t, shards[1].AluEvents[AluAdd], 10)
	// Third chunk (events 20-29) is dropped entirely -- not appended anywhere.
	total := len(shards[0].AluEvents[AluAdd]) + len(shards[1].AluEvents[AluAdd])
	require.Equal(t, 20, total)
}

func TestShardSingleShardPrecompilePlacement(t *testing.T) {
	r := New(0, newTestProgram())
	r.CPUEvents = buildCPUEvents(3, 5)
	r.EdDecompressEvents = []EdDecompressEvent{{Ptr: 64}}
	r.ShaCompressEvents = []ShaCompressEvent{{WPtr: 128}}

	shards := r.Shard(DefaultShardingConfig())
	require.Len(t, shards[0].EdDecompressEvents, 1)
	require.Len(t, shards[0].ShaCompressEvents, 1)
	for _, sh := range shards[1:] {
		require.Empty(t, sh.EdDecompressEvents)
		require.Empty(t, sh.ShaCompressEvents)
	}
}

func TestShardMemoryBoundaryPlacement(t *testing.T) {
	r := New(0, newTestProgram())
	r.CPUEvents = buildCPUEvents(3, 5)
	r.MemoryInitializeEvents = []MemoryInitializeEvent{{Addr: 0}}
	r.MemoryFinalizeEvents = []MemoryFinalizeEvent{{Addr: 0, Value: 42}}

	shards := r.Shard(DefaultShardingConfig())
	last := shards[len(shards)-1]
	require.Len(t, last.MemoryInitializeEvents, 1)
	require.Len(t, last.MemoryFinalizeEvents, 1)
	for _, sh := range shards[:len(shards)-1] {
		require.Empty(t, sh.MemoryInitializeEvents)
		require.Empty(t, sh.MemoryFinalizeEvents)
	}
}

func TestShardByteLookupSumInvariance(t *testing.T) {
	// spec.md §8 property 3: total multiplicity is preserved by sharding.
	r := New(0, newTestProgram())
	r.CPUEvents = buildCPUEvents(3, 4)
	r.ByteLookups.AddByteLookupEvent(ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1})
	r.ByteLookups.AddByteLookupEvent(ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1})
	r.ByteLookups.AddByteLookupEvent(ByteLookupEvent{Shard: 2, Op: ByteOpOr, B1: 2})
	r.ByteLookups.AddByteLookupEvent(ByteLookupEvent{Shard: 3, Op: ByteOpXor, B1: 3})

	before := r.ByteLookups.TotalMultiplicity()
	shards := r.Shard(DefaultShardingConfig())

	var after uint64
	for _, sh := range shards {
		after += sh.ByteLookups.TotalMultiplicity()
	}
	require.Equal(t, before, after)

	// Each shard's byte-lookup submap is keyed only by that shard's id
	// (spec.md §3 invariant).
	for _, sh := range shards {
		for shardKey := range sh.ByteLookups {
			require.Equal(t, sh.PublicValues.Shard, shardKey)
		}
	}
}
