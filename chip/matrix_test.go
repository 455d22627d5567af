package chip

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkfabric/airtrace/internal/babybear"
)

func TestRowMajorMatrixAppendAndAccess(t *testing.T) {
	m := NewRowMajorMatrix(3)
	m.AppendRow([]babybear.Element{babybear.FromUint64(1), babybear.FromUint64(2), babybear.FromUint64(3)})
	m.AppendRow([]babybear.Element{babybear.FromUint64(4), babybear.FromUint64(5), babybear.FromUint64(6)})

	require.Equal(t, 2, m.NumRows())
	require.Equal(t, babybear.FromUint64(5), m.Get(1, 1))

	m.Set(0, 0, babybear.FromUint64(99))
	require.Equal(t, babybear.FromUint64(99), m.Row(0)[0])
}

func TestRowMajorMatrixAppendRowWrongWidthPanics(t *testing.T) {
	m := NewRowMajorMatrix(2)
	require.Panics(t, func() {
		m.AppendRow([]babybear.Element{babybear.One()})
	})
}

func TestRowMajorMatrixPadToPowerOfTwo(t *testing.T) {
	m := NewRowMajorMatrix(2)
	for i := 0; i < 5; i++ {
		m.AppendRow([]babybear.Element{babybear.One(), babybear.Zero()})
	}
	require.Equal(t, 5, m.NumRows())

	dummy := func() []babybear.Element { return []babybear.Element{babybear.Zero(), babybear.Zero()} }
	m.PadToPowerOfTwo(dummy)
	require.Equal(t, 8, m.NumRows())
	require.True(t, m.Get(7, 0).IsZero())
}

func TestRowMajorMatrixPadAlreadyPowerOfTwoIsNoop(t *testing.T) {
	m := NewRowMajorMatrix(1)
	m.AppendRow([]babybear.Element{babybear.One()})
	m.AppendRow([]babybear.Element{babybear.One()})
	m.PadToPowerOfTwo(func() []babybear.Element { return []babybear.Element{babybear.Zero()} })
	require.Equal(t, 2, m.NumRows())
}

func TestRowMajorMatrixPadFromZeroRows(t *testing.T) {
	m := NewRowMajorMatrix(1)
	m.PadToPowerOfTwo(func() []babybear.Element { return []babybear.Element{babybear.Zero()} })
	require.Equal(t, 1, m.NumRows())
}
