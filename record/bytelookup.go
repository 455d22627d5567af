package record

// bytelookup.go implements the byte-lookup recorder (spec.md §4.3): a
// mapping shard -> (event -> multiplicity) accumulating the multiplicity of
// small-value lookups generated as a side effect of column population.
//
// The wire-format tuple (spec.md §6) is fixed-width and comparable, so it can
// be used directly as a Go map key — no hashing indirection is needed, unlike
// the teacher's maphash-based shard index (pkg/cache.go), because the key
// domain here is small and bounded (bytes), not an arbitrary user type.
//
// © 2025 arena-cache authors. MIT License.

// ByteOpcode is the byte-lookup operation selector (spec.md §6: `op:u8`).
type ByteOpcode uint8

const (
	ByteOpAnd ByteOpcode = iota
	ByteOpOr
	ByteOpXor
	ByteOpSll
	ByteOpU8Range
	ByteOpShrCarry
	ByteOpLtu
	ByteOpMsb
	ByteOpRange
)

// ByteLookupEvent is the small-domain tuple used as an argument to the byte
// lookup table: (shard, op, b1, b2, c1, c2) (spec.md §3, §6).
type ByteLookupEvent struct {
	Shard Shard
	Op    ByteOpcode
	B1    uint8
	B2    uint8
	C1    uint8
	C2    uint8
}

// Recorder is the narrow interface column-population helpers use to record
// byte-lookup events without depending on ByteLookupMap's full surface
// (spec.md §5.3). ByteLookupMap satisfies it; a tracepipe stage accumulating
// into a local, chip-owned map before a mutex-guarded merge only needs this.
type Recorder interface {
	AddByteLookupEvent(e ByteLookupEvent)
	AddByteLookupEvents(es []ByteLookupEvent)
}

// ByteLookupMap is `shard -> (event -> multiplicity)`. Multiplicities are
// strictly positive; zero entries are never stored (spec.md §3 invariant).
type ByteLookupMap map[Shard]map[ByteLookupEvent]uint64

// NewByteLookupMap returns an empty map, ready for AddByteLookupEvent.
func NewByteLookupMap() ByteLookupMap { return make(ByteLookupMap) }

// AddByteLookupEvent increments byte_lookups[event.Shard][event] by one;
// absent keys default to zero before the increment (spec.md §4.3).
func (m ByteLookupMap) AddByteLookupEvent(e ByteLookupEvent) {
	shardMap, ok := m[e.Shard]
	if !ok {
		shardMap = make(map[ByteLookupEvent]uint64, 64)
		m[e.Shard] = shardMap
	}
	shardMap[e]++
}

// AddByteLookupEvents is the iterator form of AddByteLookupEvent.
func (m ByteLookupMap) AddByteLookupEvents(es []ByteLookupEvent) {
	for _, e := range es {
		m.AddByteLookupEvent(e)
	}
}

// Merge sums multiplicities for duplicated keys and adopts new keys outright
// — the commutative-multiset merge ExecutionRecord.Append relies on
// (spec.md §4.1, §8 property 1) and that a chip's parallel row population
// relies on when reducing per-event local buffers into the output record
// (spec.md §5, §9).
func (m ByteLookupMap) Merge(other ByteLookupMap) {
	for shard, events := range other {
		dst, ok := m[shard]
		if !ok {
			dst = make(map[ByteLookupEvent]uint64, len(events))
			m[shard] = dst
		}
		for e, mult := range events {
			dst[e] += mult
		}
	}
}

// TotalMultiplicity sums every multiplicity across every shard — used by the
// byte-lookup sum-invariance property test (spec.md §8 property 3).
func (m ByteLookupMap) TotalMultiplicity() uint64 {
	var total uint64
	for _, events := range m {
		for _, mult := range events {
			total += mult
		}
	}
	return total
}

// ShardByteLookups pairs a shard id with its event multiplicities, the unit
// of the ordered-by-shard serialisable sequence spec.md §6 describes.
type ShardByteLookups struct {
	Shard  Shard
	Events map[ByteLookupEvent]uint64
}

// Ordered returns the map as a sequence sorted by ascending shard id, the
// wire format named in spec.md §6.
func (m ByteLookupMap) Ordered() []ShardByteLookups {
	out := make([]ShardByteLookups, 0, len(m))
	for shard, events := range m {
		out = append(out, ShardByteLookups{Shard: shard, Events: events})
	}
	// Insertion-sort is sufficient: shard counts per record are small
	// (bounded by ShardingConfig capacities), and this runs once per
	// serialisation, never on a hot path.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Shard < out[j-1].Shard; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
