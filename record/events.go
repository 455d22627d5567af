package record

// events.go declares every event family named in spec.md §3/§4: the
// strongly-typed per-opcode and per-precompile structs that carry everything
// a single instruction or precompile invocation contributed to the trace.
// Each family is an ordered, append-only stream living on ExecutionRecord.
//
// © 2025 arena-cache authors. MIT License.

// Shard is the monotonically increasing identifier the interpreter attaches
// to every event (spec.md §3).
type Shard = uint32

// Clk is the interpreter-assigned logical timestamp distinguishing memory
// accesses within a shard (spec.md §3).
type Clk = uint32

// MemoryRecord is the evidence the (out-of-scope) memory subsystem supplies
// per word touched: (shard, clk, address, previous_value, new_value). A read
// has PrevValue == NewValue; a write may differ (spec.md §3, §6).
type MemoryRecord struct {
	Shard     Shard
	Clk       Clk
	Addr      uint32
	PrevValue uint32
	NewValue  uint32
}

// IsRead reports whether this record documents a read (no value change).
func (m MemoryRecord) IsRead() bool { return m.PrevValue == m.NewValue }

// CPUEvent is recorded once per executed instruction.
type CPUEvent struct {
	Shard    Shard
	Clk      Clk
	PC       uint32
	NextPC   uint32
	ExitCode uint32
}

// AluOp names the ALU families spec.md §3 enumerates, with mul split into
// low and high halves (nine values in all). The same AluEvent struct is
// reused for every family; ExecutionRecord keeps one slice per AluOp so
// sharding (spec.md §4.2 Step B) can chunk each independently.
type AluOp uint8

const (
	AluAdd AluOp = iota
	AluMulLow
	AluMulHigh
	AluSub
	AluBitwise
	AluShiftLeft
	AluShiftRight
	AluDivRem
	AluLt
)

// AluEvent carries one ALU instruction's operands and result.
type AluEvent struct {
	Shard Shard
	Clk   Clk
	Op    AluOp
	A     uint32
	B     uint32
	C     uint32
}

// Ed25519 precompile events.

type EdAddEvent struct {
	Shard       Shard
	Clk         Clk
	P, Q        uint32 // pointers
	PMemRecords [16]MemoryRecord
	QMemRecords [16]MemoryRecord
}

// EdDecompressEvent is the exemplar event for §4.5: recovering x from a
// compressed Edwards25519 point (y, sign).
type EdDecompressEvent struct {
	Shard               Shard
	Clk                 Clk
	Ptr                 uint32
	Sign                bool
	YBytes              [32]byte
	DecompressedXBytes  [32]byte
	XMemRecords         [8]MemoryRecord // writes at ptr..ptr+32
	YMemRecords         [8]MemoryRecord // reads at ptr+32..ptr+64
}

// secp256k1 precompile events.

type Secp256k1AddEvent struct {
	Shard                   Shard
	Clk                     Clk
	P, Q                    uint32
	PMemRecords, QMemRecords [16]MemoryRecord
}

type Secp256k1DoubleEvent struct {
	Shard       Shard
	Clk         Clk
	P           uint32
	PMemRecords [16]MemoryRecord
}

// WeierstrassDecompressEvent is the shared event type of both
// ExecutionRecord.Secp256k1DecompressEvents and
// ExecutionRecord.Bls12381G1DecompressEvents (spec.md §4.6): the chip that
// processes them is generic over CurveID (internal/fieldparams), so both
// streams carry the same field layout.
type WeierstrassDecompressEvent struct {
	Shard        Shard
	Clk          Clk
	Ptr          uint32
	IsOdd        bool
	XBytes       []byte // big-endian coordinate bytes, curve-width
	DecompressedYBytes []byte
	XMemRecords  []MemoryRecord
	YMemRecords  []MemoryRecord
}

// bn254 precompile events.

type Bn254AddEvent struct {
	Shard                    Shard
	Clk                      Clk
	P, Q                     uint32
	PMemRecords, QMemRecords [16]MemoryRecord
}

type Bn254DoubleEvent struct {
	Shard       Shard
	Clk         Clk
	P           uint32
	PMemRecords [16]MemoryRecord
}

// BLS12-381 G1/G2 precompile events.

type Bls12381G1AddEvent struct {
	Shard                    Shard
	Clk                      Clk
	P, Q                     uint32
	PMemRecords, QMemRecords []MemoryRecord
}

type Bls12381G1DoubleEvent struct {
	Shard       Shard
	Clk         Clk
	P           uint32
	PMemRecords []MemoryRecord
}

type Bls12381G2AddEvent struct {
	Shard                    Shard
	Clk                      Clk
	P, Q                     uint32
	PMemRecords, QMemRecords []MemoryRecord
}

type Bls12381G2DoubleEvent struct {
	Shard       Shard
	Clk         Clk
	P           uint32
	PMemRecords []MemoryRecord
}

// BLS12-381 Fp/Fp2 field-operation precompile events.

type Bls12381FpAddEvent struct {
	Shard                    Shard
	Clk                      Clk
	PPtr, QPtr               uint32
	PMemRecords, QMemRecords []MemoryRecord
}

// Bls12381FpSubEvent is the exemplar event for §4.7.
type Bls12381FpSubEvent struct {
	Shard       Shard
	Clk         Clk
	PPtr        uint32
	QPtr        uint32
	P           []uint32 // pre-image limbs, read at clk
	Q           []uint32 // pre-image limbs, read at clk
	PMemRecords []MemoryRecord // write at pptr, clk+1
	QMemRecords []MemoryRecord // read at qptr, clk
}

type Bls12381FpMulEvent struct {
	Shard                    Shard
	Clk                      Clk
	PPtr, QPtr               uint32
	PMemRecords, QMemRecords []MemoryRecord
}

type Bls12381Fp2AddEvent struct {
	Shard                    Shard
	Clk                      Clk
	PPtr, QPtr               uint32
	PMemRecords, QMemRecords []MemoryRecord
}

type Bls12381Fp2SubEvent struct {
	Shard                    Shard
	Clk                      Clk
	PPtr, QPtr               uint32
	PMemRecords, QMemRecords []MemoryRecord
}

type Bls12381Fp2MulEvent struct {
	Shard                    Shard
	Clk                      Clk
	PPtr, QPtr               uint32
	PMemRecords, QMemRecords []MemoryRecord
}

// Hash-function precompile events. Only the shapes needed to carry them
// through sharding (spec.md §4.2: Keccak in Step C, SHA-256 and Blake3 in
// Step D) are modelled; their chips are out
// of scope (spec.md §1 names three exemplars only).

type ShaExtendEvent struct {
	Shard       Shard
	Clk         Clk
	Ptr         uint32
	MemRecords  []MemoryRecord
}

type ShaCompressEvent struct {
	Shard       Shard
	Clk         Clk
	WPtr, HPtr  uint32
	MemRecords  []MemoryRecord
}

type KeccakPermuteEvent struct {
	Shard      Shard
	Clk        Clk
	StatePtr   uint32
	PreState   [25]uint64
	MemRecords []MemoryRecord
}

type Blake3CompressInnerEvent struct {
	Shard      Shard
	Clk        Clk
	Ptr        uint32
	MemRecords []MemoryRecord
}

// MemoryInitializeEvent and MemoryFinalizeEvent are recorded once per
// distinct memory address touched across the whole execution (spec.md §3).
type MemoryInitializeEvent struct {
	Shard Shard
	Clk   Clk
	Addr  uint32
	Value uint32
}

type MemoryFinalizeEvent struct {
	Shard Shard
	Clk   Clk
	Addr  uint32
	Value uint32
}

// PublicValues is the per-shard data exposed outside the proof (spec.md §3,
// §6): committed digest, deferred-proofs digest, shard id, pc boundaries and
// exit code.
type PublicValues struct {
	CommittedValueDigest [32]byte
	DeferredProofsDigest [32]byte
	Shard                uint32
	StartPC              uint32
	NextPC               uint32
	ExitCode             uint32
}
