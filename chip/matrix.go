package chip

// matrix.go implements RowMajorMatrix (spec.md §4.4, SPEC_FULL.md §5.4): the
// dense, flat trace-matrix type every chip's GenerateTrace returns. Values
// are stored row-major in one contiguous slice rather than [][]Element,
// mirroring the teacher's "dense, aligned, slice-backed" instinct
// (pkg/cache.go's packed 48-byte entry) applied to trace rows instead of
// cache entries.
//
// © 2025 arena-cache authors. MIT License.

import "github.com/zkfabric/airtrace/internal/babybear"

// RowMajorMatrix is a width-columns-wide, row-major flat buffer of field
// elements. Row i occupies values[i*width : i*width+width].
type RowMajorMatrix struct {
	values []babybear.Element
	width  int
}

// NewRowMajorMatrix allocates a matrix with zero rows and the given column
// width. Width is fixed at construction: every chip's Width() is constant
// per spec.md §4.4.1.
func NewRowMajorMatrix(width int) *RowMajorMatrix {
	if width <= 0 {
		panic("chip: RowMajorMatrix width must be positive")
	}
	return &RowMajorMatrix{width: width}
}

// Width returns the fixed column count.
func (m *RowMajorMatrix) Width() int { return m.width }

// NumRows returns the current row count.
func (m *RowMajorMatrix) NumRows() int {
	if m.width == 0 {
		return 0
	}
	return len(m.values) / m.width
}

// AppendRow appends row to the matrix, copying its contents. row must have
// exactly Width() elements.
func (m *RowMajorMatrix) AppendRow(row []babybear.Element) {
	if len(row) != m.width {
		panic("chip: AppendRow: row length does not match matrix width")
	}
	m.values = append(m.values, row...)
}

// Row returns a mutable view of row i's backing elements. Callers may write
// through it to change columns in place; the chips' GenerateTrace methods
// instead build each row as a separate slice and pass it to AppendRow.
func (m *RowMajorMatrix) Row(i int) []babybear.Element {
	lo := i * m.width
	return m.values[lo : lo+m.width]
}

// Get/Set address a single cell by (row, col).
func (m *RowMajorMatrix) Get(row, col int) babybear.Element {
	return m.values[row*m.width+col]
}

func (m *RowMajorMatrix) Set(row, col int, v babybear.Element) {
	m.values[row*m.width+col] = v
}

// PadToPowerOfTwo grows the matrix up to the next power of two rows (leaving
// it unchanged if its row count already is one; a zero-row matrix grows to
// one row), filling each new row by calling dummyRow, which must
// return a width-length, constraint-satisfying row (spec.md §4.4.2: "padding
// rows satisfy all constraints trivially, e.g. is_real = 0").
func (m *RowMajorMatrix) PadToPowerOfTwo(dummyRow func() []babybear.Element) {
	target := nextPowerOfTwo(m.NumRows())
	for m.NumRows() < target {
		m.AppendRow(dummyRow())
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
