package fieldops

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkfabric/airtrace/internal/fieldparams"
	"github.com/zkfabric/airtrace/record"
)

func TestFieldOpColsSubtraction(t *testing.T) {
	cols := NewFieldOpCols(fieldparams.CurveBLS12381G1, OpSub)
	lookups := record.NewByteLookupMap()

	p := make([]uint32, fieldparams.CurveBLS12381G1.NbLimbs())
	p[0] = 10
	q := make([]uint32, fieldparams.CurveBLS12381G1.NbLimbs())
	q[0] = 3

	cols.Populate(fieldparams.CurveBLS12381G1, p, q, 1, lookups)

	got := cols.ResultWords()
	require.Equal(t, uint32(7), got[0])
	require.True(t, cols.Carry.IsZero())
	require.NotZero(t, lookups.TotalMultiplicity())
}

func TestFieldOpColsSubtractionWraps(t *testing.T) {
	cols := NewFieldOpCols(fieldparams.CurveSecp256k1, OpSub)
	lookups := record.NewByteLookupMap()

	p := make([]uint32, fieldparams.CurveSecp256k1.NbLimbs())
	p[0] = 3
	q := make([]uint32, fieldparams.CurveSecp256k1.NbLimbs())
	q[0] = 10

	cols.Populate(fieldparams.CurveSecp256k1, p, q, 1, lookups)

	modulus := ModulusFor(fieldparams.CurveSecp256k1)
	expected := new(big.Int).Sub(big.NewInt(3), big.NewInt(10))
	expected.Add(expected, modulus)
	require.Equal(t, 0, expected.Cmp(wordsToBig(cols.ResultWords())))
	require.Equal(t, uint64(1), cols.Carry.Uint64())
}

func TestFieldOpColsAddAndMul(t *testing.T) {
	lookups := record.NewByteLookupMap()
	p := []uint32{5, 0, 0, 0, 0, 0, 0, 0}
	q := []uint32{7, 0, 0, 0, 0, 0, 0, 0}

	add := NewFieldOpCols(fieldparams.CurveSecp256k1, OpAdd)
	add.Populate(fieldparams.CurveSecp256k1, p, q, 1, lookups)
	require.Equal(t, uint32(12), add.ResultWords()[0])

	mul := NewFieldOpCols(fieldparams.CurveSecp256k1, OpMul)
	mul.Populate(fieldparams.CurveSecp256k1, p, q, 1, lookups)
	require.Equal(t, uint32(35), mul.ResultWords()[0])
}

func TestFieldSqrtColsRoundTrip(t *testing.T) {
	lookups := record.NewByteLookupMap()
	value := []uint32{16, 0, 0, 0, 0, 0, 0, 0} // 16 is a perfect square mod p

	cols := NewFieldSqrtCols(fieldparams.CurveSecp256k1)
	ok := cols.Populate(fieldparams.CurveSecp256k1, value, 1, lookups)
	require.True(t, ok)

	root := wordsToBig(cols.ResultWords())
	square := new(big.Int).Mul(root, root)
	square.Mod(square, ModulusFor(fieldparams.CurveSecp256k1))
	require.Equal(t, uint32(16), bigToWords(square, 1)[0])
}

func TestFieldRangeColsDetectsOutOfRange(t *testing.T) {
	var cols FieldRangeCols
	small := []uint32{1, 0, 0, 0, 0, 0, 0, 0}
	cols.Populate(fieldparams.CurveSecp256k1, small)
	require.Equal(t, uint64(1), cols.LtModulus.Uint64())

	tooLarge := make([]uint32, fieldparams.CurveSecp256k1.NbLimbs())
	for i := range tooLarge {
		tooLarge[i] = 0xFFFFFFFF
	}
	cols.Populate(fieldparams.CurveSecp256k1, tooLarge)
	require.Equal(t, uint64(0), cols.LtModulus.Uint64())
}
