package tracepipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/chip/eddecompress"
	"github.com/zkfabric/airtrace/chip/fieldsub"
	"github.com/zkfabric/airtrace/chip/weierstrass"
	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/internal/fieldparams"
	"github.com/zkfabric/airtrace/record"
)

func edIdentityEvent(shard record.Shard, ptr uint32) record.EdDecompressEvent {
	ev := record.EdDecompressEvent{Shard: shard, Clk: 0, Ptr: ptr, Sign: false}
	ev.YBytes[0] = 1
	for i := range ev.XMemRecords {
		ev.XMemRecords[i] = record.MemoryRecord{Shard: shard, Clk: 1, Addr: ptr + uint32(4*i)}
	}
	for i := range ev.YMemRecords {
		ev.YMemRecords[i] = record.MemoryRecord{Shard: shard, Clk: 0, Addr: ptr + 32 + uint32(4*i), PrevValue: 1, NewValue: 1}
	}
	return ev
}

func fpSubEvent(shard record.Shard, pPtr, qPtr uint32, pVal, qVal uint32) record.Bls12381FpSubEvent {
	const nbWords = 12
	p := make([]uint32, nbWords)
	q := make([]uint32, nbWords)
	p[0], q[0] = pVal, qVal
	ev := record.Bls12381FpSubEvent{
		Shard: shard, Clk: 10, PPtr: pPtr, QPtr: qPtr, P: p, Q: q,
		PMemRecords: make([]record.MemoryRecord, nbWords),
		QMemRecords: make([]record.MemoryRecord, nbWords),
	}
	for i := range ev.PMemRecords {
		ev.PMemRecords[i] = record.MemoryRecord{Shard: shard, Clk: 11, Addr: pPtr + uint32(4*i), PrevValue: p[i]}
	}
	for i := range ev.QMemRecords {
		ev.QMemRecords[i] = record.MemoryRecord{Shard: shard, Clk: 10, Addr: qPtr + uint32(4*i), PrevValue: q[i], NewValue: q[i]}
	}
	return ev
}

func TestGenerateShardRunsOnlyIncludedChips(t *testing.T) {
	p := New(eddecompress.New(), weierstrass.New(fieldparams.CurveBLS12381G1), fieldsub.New())

	shard := record.New(1, nil)
	shard.EdDecompressEvents = []record.EdDecompressEvent{edIdentityEvent(1, 0)}

	result, err := p.GenerateShard(context.Background(), shard)
	require.NoError(t, err)
	require.Len(t, result.Traces, 1)
	require.Contains(t, result.Traces, "EdDecompress")
}

func TestGenerateShardMergesByteLookupsFromConcurrentChips(t *testing.T) {
	p := New(eddecompress.New(), fieldsub.New())

	shard := record.New(1, nil)
	shard.EdDecompressEvents = []record.EdDecompressEvent{
		edIdentityEvent(1, 0),
		edIdentityEvent(1, 64),
	}
	shard.Bls12381FpSubEvents = []record.Bls12381FpSubEvent{
		fpSubEvent(1, 200, 300, 10, 3),
	}

	result, err := p.GenerateShard(context.Background(), shard)
	require.NoError(t, err)
	require.Len(t, result.Traces, 2)

	// Running each chip sequentially into its own scratch record and
	// summing must match the pipeline's concurrently-merged total: no
	// lookups lost or double-counted across the mutex-guarded reduce.
	edScratch := record.New(1, nil)
	_, err = eddecompress.New().GenerateTrace(shard, edScratch)
	require.NoError(t, err)
	fpScratch := record.New(1, nil)
	_, err = fieldsub.New().GenerateTrace(shard, fpScratch)
	require.NoError(t, err)

	want := edScratch.ByteLookups.TotalMultiplicity() + fpScratch.ByteLookups.TotalMultiplicity()
	require.Equal(t, want, result.ByteLookups.TotalMultiplicity())
	require.NotZero(t, want)
}

func TestGenerateShardEmptyShardProducesNoTraces(t *testing.T) {
	p := New(eddecompress.New(), weierstrass.New(fieldparams.CurveBLS12381G1), fieldsub.New())
	shard := record.New(1, nil)

	result, err := p.GenerateShard(context.Background(), shard)
	require.NoError(t, err)
	require.Empty(t, result.Traces)
	require.Zero(t, result.ByteLookups.TotalMultiplicity())
}

// failingChip always reports itself included and fails GenerateTrace, to
// exercise the pipeline's error propagation (no real chip ever fails).
type failingChip struct{}

func (failingChip) Name() string  { return "Failing" }
func (failingChip) Width() int    { return 1 }
func (failingChip) Included(*record.ExecutionRecord) bool { return true }
func (failingChip) GenerateTrace(_, _ *record.ExecutionRecord) (*chip.RowMajorMatrix, error) {
	return nil, errors.New("boom")
}
func (failingChip) Eval(chip.AirBuilder, []babybear.Element) {}

func TestGenerateShardPropagatesChipError(t *testing.T) {
	p := New(failingChip{}, eddecompress.New())
	shard := record.New(1, nil)
	shard.EdDecompressEvents = []record.EdDecompressEvent{edIdentityEvent(1, 0)}

	_, err := p.GenerateShard(context.Background(), shard)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failing")
}
