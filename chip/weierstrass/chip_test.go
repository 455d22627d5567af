package weierstrass

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/internal/fieldparams"
	"github.com/zkfabric/airtrace/record"
)

// bls12381ZeroEvent builds a decompression event for x=0 (always valid on
// BLS12-381 G1, see decompress_test.go), with y set to the witnessed root.
func bls12381ZeroEvent(t *testing.T, shard record.Shard) record.WeierstrassDecompressEvent {
	t.Helper()
	nbWords := fieldparams.CurveBLS12381G1.NbLimbs()
	xBytes := make([]byte, nbWords*4)

	yBytes, err := Decompress(fieldparams.CurveBLS12381G1, xBytes, false)
	require.NoError(t, err)

	ev := record.WeierstrassDecompressEvent{
		Shard:              shard,
		Clk:                0,
		Ptr:                0,
		IsOdd:              false,
		XBytes:             xBytes,
		DecompressedYBytes: yBytes,
		XMemRecords:        make([]record.MemoryRecord, nbWords),
		YMemRecords:        make([]record.MemoryRecord, nbWords),
	}
	// XMemRecords reads x from the slot's high half at clk; YMemRecords writes
	// the decompressed y into the low half at clk+1, so Eval's memory-access
	// binding needs NewValue to carry the real witnessed word on both sides.
	for i := range ev.XMemRecords {
		ev.XMemRecords[i] = record.MemoryRecord{Shard: shard, Clk: 0, Addr: uint32(4*nbWords + 4*i)}
	}
	for i := range ev.YMemRecords {
		w := littleEndianWord(yBytes[4*i : 4*i+4])
		ev.YMemRecords[i] = record.MemoryRecord{Shard: shard, Clk: 1, Addr: uint32(4 * i), PrevValue: 0, NewValue: w}
	}
	return ev
}

func littleEndianWord(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func TestChipIncludedDispatchesByCurve(t *testing.T) {
	c := New(fieldparams.CurveBLS12381G1)
	empty := record.New(1, nil)
	require.False(t, c.Included(empty))

	withEvent := record.New(1, nil)
	withEvent.Bls12381G1DecompressEvents = []record.WeierstrassDecompressEvent{bls12381ZeroEvent(t, 1)}
	require.True(t, c.Included(withEvent))

	// secp256k1-only events don't count toward the BLS12-381 chip.
	other := record.New(1, nil)
	other.Secp256k1DecompressEvents = []record.WeierstrassDecompressEvent{bls12381ZeroEvent(t, 1)}
	require.False(t, c.Included(other))
}

func TestChipGenerateTraceAndEval(t *testing.T) {
	c := New(fieldparams.CurveBLS12381G1)
	input := record.New(1, nil)
	input.Bls12381G1DecompressEvents = []record.WeierstrassDecompressEvent{
		bls12381ZeroEvent(t, 1),
		bls12381ZeroEvent(t, 1),
		bls12381ZeroEvent(t, 1),
	}
	output := record.New(1, nil)

	m, err := c.GenerateTrace(input, output)
	require.NoError(t, err)
	require.Equal(t, 4, m.NumRows())
	require.True(t, m.Get(3, c.lay.colIsReal).IsZero())

	b := chip.NewDebugAirBuilder()
	for i := 0; i < m.NumRows(); i++ {
		row := m.Row(i)
		require.NotPanics(t, func() { c.Eval(b, row) })
	}
}

func TestChipEvalRejectsTamperedY(t *testing.T) {
	c := New(fieldparams.CurveBLS12381G1)
	input := record.New(1, nil)
	ev := bls12381ZeroEvent(t, 1)
	ev.DecompressedYBytes[len(ev.DecompressedYBytes)-1] ^= 0xFF
	input.Bls12381G1DecompressEvents = []record.WeierstrassDecompressEvent{ev}
	output := record.New(1, nil)

	m, err := c.GenerateTrace(input, output)
	require.NoError(t, err)

	b := chip.NewDebugAirBuilder()
	require.Panics(t, func() { c.Eval(b, m.Row(0)) })
}

func TestChipWidthScalesWithCurve(t *testing.T) {
	secp := New(fieldparams.CurveSecp256k1)
	bls := New(fieldparams.CurveBLS12381G1)
	require.Less(t, secp.Width(), bls.Width())
}
