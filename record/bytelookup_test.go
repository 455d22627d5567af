package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteLookupMapAddAndMerge(t *testing.T) {
	m := NewByteLookupMap()
	e := ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1, B2: 2}

	m.AddByteLookupEvent(e)
	m.AddByteLookupEvent(e)
	require.Equal(t, uint64(2), m[1][e])

	other := NewByteLookupMap()
	other.AddByteLookupEvent(e)
	other.AddByteLookupEvent(ByteLookupEvent{Shard: 2, Op: ByteOpXor, B1: 9})

	m.Merge(other)
	require.Equal(t, uint64(3), m[1][e], "overlapping keys must sum multiplicities")
	require.Len(t, m[2], 1, "new keys must be adopted outright")
}

func TestByteLookupMapMergeIsAssociativeAndCommutative(t *testing.T) {
	// spec.md §8 property 1: append is associative and commutative over
	// disjoint byte-lookup keys; overlapping keys sum.
	a := NewByteLookupMap()
	a.AddByteLookupEvent(ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1})
	b := NewByteLookupMap()
	b.AddByteLookupEvent(ByteLookupEvent{Shard: 1, Op: ByteOpOr, B1: 2})
	c := NewByteLookupMap()
	c.AddByteLookupEvent(ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1})

	left := NewByteLookupMap()
	left.Merge(a)
	left.Merge(b)
	left.Merge(c)

	right := NewByteLookupMap()
	right.Merge(c)
	right.Merge(a)
	right.Merge(b)

	require.Equal(t, left.TotalMultiplicity(), right.TotalMultiplicity())
	require.Equal(t, uint64(2), left[1][ByteLookupEvent{Shard: 1, Op: ByteOpAnd, B1: 1}])
}

func TestByteLookupMapOrdered(t *testing.T) {
	m := NewByteLookupMap()
	m.AddByteLookupEvent(ByteLookupEvent{Shard: 3, Op: ByteOpAnd})
	m.AddByteLookupEvent(ByteLookupEvent{Shard: 1, Op: ByteOpOr})
	m.AddByteLookupEvent(ByteLookupEvent{Shard: 2, Op: ByteOpXor})

	ordered := m.Ordered()
	require.Len(t, ordered, 3)
	require.Equal(t, Shard(1), ordered[0].Shard)
	require.Equal(t, Shard(2), ordered[1].Shard)
	require.Equal(t, Shard(3), ordered[2].Shard)
}
