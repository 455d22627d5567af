package record

// record.go implements ExecutionRecord (spec.md §4.1): the in-memory event
// log produced during execution. It owns every parallel event stream named
// in §3/§4, the per-shard byte-lookup multiplicity map, memory-boundary
// events and aggregate public values.
//
// ExecutionRecord deliberately holds plain slices/maps rather than the
// teacher's lock-free, arena-backed shard structures (pkg/cache.go):
// execution (event emission) is single-threaded by contract (spec.md §5), so
// there is no concurrent-mutation problem here to engineer around. Sharding
// (§4.2) is sequential too; only trace generation (§4.4) runs concurrently,
// downstream in internal/tracepipe.
//
// © 2025 arena-cache authors. MIT License.

import "encoding/binary"

// ExecutionRecord owns every event stream contributed by one linear
// execution slice (spec.md §3, §4.1).
type ExecutionRecord struct {
	Index   uint32
	Program *Program

	CPUEvents []CPUEvent

	// AluEvents is keyed by family (spec.md §3's "segregated by operational
	// category") so ShardingConfig can look up a distinct chunk length per
	// family (spec.md §4.2 Step B).
	AluEvents map[AluOp][]AluEvent

	EdAddEvents        []EdAddEvent
	EdDecompressEvents []EdDecompressEvent

	Secp256k1AddEvents        []Secp256k1AddEvent
	Secp256k1DoubleEvents     []Secp256k1DoubleEvent
	Secp256k1DecompressEvents []WeierstrassDecompressEvent

	Bn254AddEvents    []Bn254AddEvent
	Bn254DoubleEvents []Bn254DoubleEvent

	Bls12381G1AddEvents        []Bls12381G1AddEvent
	Bls12381G1DoubleEvents     []Bls12381G1DoubleEvent
	Bls12381G1DecompressEvents []WeierstrassDecompressEvent
	Bls12381G2AddEvents        []Bls12381G2AddEvent
	Bls12381G2DoubleEvents     []Bls12381G2DoubleEvent

	Bls12381FpAddEvents  []Bls12381FpAddEvent
	Bls12381FpSubEvents  []Bls12381FpSubEvent
	Bls12381FpMulEvents  []Bls12381FpMulEvent
	Bls12381Fp2AddEvents []Bls12381Fp2AddEvent
	Bls12381Fp2SubEvents []Bls12381Fp2SubEvent
	Bls12381Fp2MulEvents []Bls12381Fp2MulEvent

	ShaExtendEvents        []ShaExtendEvent
	ShaCompressEvents      []ShaCompressEvent
	KeccakPermuteEvents    []KeccakPermuteEvent
	Blake3CompressInnerEvents []Blake3CompressInnerEvent

	MemoryInitializeEvents []MemoryInitializeEvent
	MemoryFinalizeEvents   []MemoryFinalizeEvent

	ByteLookups ByteLookupMap

	PublicValues PublicValues

	// NeedsNonceColumns mirrors original_source/core/src/runtime/record.rs's
	// lazily-populated nonce witness flag (SPEC_FULL.md §5.1). No chip in
	// this repository reads it (none of the three exemplars is an ALU chip);
	// it is only carried along: Append ORs it in and Shard copies it into
	// every output shard.
	NeedsNonceColumns bool
}

// New returns an empty record with a shared, read-only program reference
// (spec.md §4.1).
func New(index uint32, program *Program) *ExecutionRecord {
	return &ExecutionRecord{
		Index:       index,
		Program:     program,
		AluEvents:   make(map[AluOp][]AluEvent),
		ByteLookups: NewByteLookupMap(),
	}
}

// Append moves every stream of other into r; byte-lookup maps are merged by
// summing multiplicities for duplicated keys and adopting new keys outright.
// No ordering reshuffle is performed (spec.md §4.1).
func (r *ExecutionRecord) Append(other *ExecutionRecord) {
	if other == nil {
		return
	}

	r.CPUEvents = append(r.CPUEvents, other.CPUEvents...)

	for op, events := range other.AluEvents {
		r.AluEvents[op] = append(r.AluEvents[op], events...)
	}

	r.EdAddEvents = append(r.EdAddEvents, other.EdAddEvents...)
	r.EdDecompressEvents = append(r.EdDecompressEvents, other.EdDecompressEvents...)

	r.Secp256k1AddEvents = append(r.Secp256k1AddEvents, other.Secp256k1AddEvents...)
	r.Secp256k1DoubleEvents = append(r.Secp256k1DoubleEvents, other.Secp256k1DoubleEvents...)
	r.Secp256k1DecompressEvents = append(r.Secp256k1DecompressEvents, other.Secp256k1DecompressEvents...)

	r.Bn254AddEvents = append(r.Bn254AddEvents, other.Bn254AddEvents...)
	r.Bn254DoubleEvents = append(r.Bn254DoubleEvents, other.Bn254DoubleEvents...)

	r.Bls12381G1AddEvents = append(r.Bls12381G1AddEvents, other.Bls12381G1AddEvents...)
	r.Bls12381G1DoubleEvents = append(r.Bls12381G1DoubleEvents, other.Bls12381G1DoubleEvents...)
	r.Bls12381G1DecompressEvents = append(r.Bls12381G1DecompressEvents, other.Bls12381G1DecompressEvents...)
	r.Bls12381G2AddEvents = append(r.Bls12381G2AddEvents, other.Bls12381G2AddEvents...)
	r.Bls12381G2DoubleEvents = append(r.Bls12381G2DoubleEvents, other.Bls12381G2DoubleEvents...)

	r.Bls12381FpAddEvents = append(r.Bls12381FpAddEvents, other.Bls12381FpAddEvents...)
	r.Bls12381FpSubEvents = append(r.Bls12381FpSubEvents, other.Bls12381FpSubEvents...)
	r.Bls12381FpMulEvents = append(r.Bls12381FpMulEvents, other.Bls12381FpMulEvents...)
	r.Bls12381Fp2AddEvents = append(r.Bls12381Fp2AddEvents, other.Bls12381Fp2AddEvents...)
	r.Bls12381Fp2SubEvents = append(r.Bls12381Fp2SubEvents, other.Bls12381Fp2SubEvents...)
	r.Bls12381Fp2MulEvents = append(r.Bls12381Fp2MulEvents, other.Bls12381Fp2MulEvents...)

	r.ShaExtendEvents = append(r.ShaExtendEvents, other.ShaExtendEvents...)
	r.ShaCompressEvents = append(r.ShaCompressEvents, other.ShaCompressEvents...)
	r.KeccakPermuteEvents = append(r.KeccakPermuteEvents, other.KeccakPermuteEvents...)
	r.Blake3CompressInnerEvents = append(r.Blake3CompressInnerEvents, other.Blake3CompressInnerEvents...)

	r.MemoryInitializeEvents = append(r.MemoryInitializeEvents, other.MemoryInitializeEvents...)
	r.MemoryFinalizeEvents = append(r.MemoryFinalizeEvents, other.MemoryFinalizeEvents...)

	r.ByteLookups.Merge(other.ByteLookups)

	r.NeedsNonceColumns = r.NeedsNonceColumns || other.NeedsNonceColumns
}

// Stats returns the length of each stream, for diagnostics only (spec.md
// §4.1).
func (r *ExecutionRecord) Stats() map[string]int {
	stats := map[string]int{
		"cpu_events":                    len(r.CPUEvents),
		"ed_add_events":                 len(r.EdAddEvents),
		"ed_decompress_events":          len(r.EdDecompressEvents),
		"secp256k1_add_events":          len(r.Secp256k1AddEvents),
		"secp256k1_double_events":       len(r.Secp256k1DoubleEvents),
		"secp256k1_decompress_events":   len(r.Secp256k1DecompressEvents),
		"bn254_add_events":              len(r.Bn254AddEvents),
		"bn254_double_events":           len(r.Bn254DoubleEvents),
		"bls12381_g1_add_events":        len(r.Bls12381G1AddEvents),
		"bls12381_g1_double_events":     len(r.Bls12381G1DoubleEvents),
		"bls12381_g1_decompress_events": len(r.Bls12381G1DecompressEvents),
		"bls12381_g2_add_events":        len(r.Bls12381G2AddEvents),
		"bls12381_g2_double_events":     len(r.Bls12381G2DoubleEvents),
		"bls12381_fp_add_events":        len(r.Bls12381FpAddEvents),
		"bls12381_fp_sub_events":        len(r.Bls12381FpSubEvents),
		"bls12381_fp_mul_events":        len(r.Bls12381FpMulEvents),
		"bls12381_fp2_add_events":       len(r.Bls12381Fp2AddEvents),
		"bls12381_fp2_sub_events":       len(r.Bls12381Fp2SubEvents),
		"bls12381_fp2_mul_events":       len(r.Bls12381Fp2MulEvents),
		"sha_extend_events":             len(r.ShaExtendEvents),
		"sha_compress_events":           len(r.ShaCompressEvents),
		"keccak_permute_events":         len(r.KeccakPermuteEvents),
		"blake3_compress_inner_events":  len(r.Blake3CompressInnerEvents),
		"memory_initialize_events":      len(r.MemoryInitializeEvents),
		"memory_finalize_events":        len(r.MemoryFinalizeEvents),
	}
	for op, events := range r.AluEvents {
		stats["alu_events_"+aluOpName(op)] = len(events)
	}
	return stats
}

func aluOpName(op AluOp) string {
	switch op {
	case AluAdd:
		return "add"
	case AluMulLow:
		return "mul_low"
	case AluMulHigh:
		return "mul_high"
	case AluSub:
		return "sub"
	case AluBitwise:
		return "bitwise"
	case AluShiftLeft:
		return "shift_left"
	case AluShiftRight:
		return "shift_right"
	case AluDivRem:
		return "divrem"
	case AluLt:
		return "lt"
	default:
		return "unknown"
	}
}

// PublicValuesFieldElements flattens PublicValues into the word encoding
// spec.md §6 names for the prover (20 BabyBear-sized uint32 words: two
// 32-byte digests as 8 words apiece, then shard/start_pc/next_pc/exit_code).
func (r *ExecutionRecord) PublicValuesFieldElements() []uint32 {
	out := make([]uint32, 0, 20)
	out = append(out, bytesToWords(r.PublicValues.CommittedValueDigest[:])...)
	out = append(out, bytesToWords(r.PublicValues.DeferredProofsDigest[:])...)
	out = append(out,
		r.PublicValues.Shard,
		r.PublicValues.StartPC,
		r.PublicValues.NextPC,
		r.PublicValues.ExitCode,
	)
	return out
}

func bytesToWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(b[i*4 : i*4+4])
	}
	return words
}
