package record

// shard.go implements ExecutionRecord.Shard (spec.md §4.2): the rule that
// splits one execution record into a sequence of bounded sub-records with
// well-defined public-value continuity.
//
// Step A partitions CPU events into contiguous per-shard slices. Steps B/C
// distribute bulk event families across the resulting shards in fixed-size
// chunks, one chunk per shard (not round-robin) — spec.md §9 flags this
// "chunk-zip" pairing as a possibly-latent assumption; this implementation
// preserves the source's exact behaviour (excess chunks dropped) per
// SPEC_FULL.md §5.2's decision, but makes the drop observable via logging
// and metrics instead of silently discarding data.
//
// © 2025 arena-cache authors. MIT License.

import "go.uber.org/zap"

// ShardMetrics is the metrics sink the sharder reports to; PromShardMetrics
// (metrics.go) implements it and noopShardMetrics is the default. Keeping it
// as its own small interface lets record stay independent of the rest of the
// metrics surface, the same separation the teacher draws between
// metricsSink and the wider Cache type (pkg/metrics.go).
type ShardMetrics interface {
	IncDroppedChunks(family string, n int)
	ObserveShardsProduced(n int)
}

type noopShardMetrics struct{}

func (noopShardMetrics) IncDroppedChunks(string, int)  {}
func (noopShardMetrics) ObserveShardsProduced(int)     {}

// Sharder bundles the optional ambient dependencies (logger, metrics) used
// while sharding. A zero-value Sharder is safe to use: both fields fall back
// to no-ops, mirroring pkg/config.go's `logger: zap.NewNop()` default.
type Sharder struct {
	Logger  *zap.Logger
	Metrics ShardMetrics
}

// NewSharder constructs a Sharder with sane no-op defaults.
func NewSharder() *Sharder {
	return &Sharder{Logger: zap.NewNop(), Metrics: noopShardMetrics{}}
}

func (s *Sharder) logger() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Sharder) metrics() ShardMetrics {
	if s == nil || s.Metrics == nil {
		return noopShardMetrics{}
	}
	return s.Metrics
}

// Shard splits r into bounded sub-records per cfg using default (no-op)
// logging/metrics. Requires at least one CPU event (spec.md §4.1 Failure);
// an empty CPU-event stream is a programmer error and panics.
func (r *ExecutionRecord) Shard(cfg ShardingConfig) []*ExecutionRecord {
	return NewSharder().Shard(r, cfg)
}

// Shard performs the full sharding algorithm (spec.md §4.2, Steps A-E) using
// s's logger/metrics for diagnostics.
func (s *Sharder) Shard(r *ExecutionRecord, cfg ShardingConfig) []*ExecutionRecord {
	if len(r.CPUEvents) == 0 {
		panic("record: Shard requires at least one CPU event (spec.md §4.1)")
	}

	shards := shardByCPUEvents(r)

	// Step B: ALU distribution, one family at a time.
	for op, events := range r.AluEvents {
		chunkLen := cfg.AluLen[op]
		if chunkLen <= 0 {
			chunkLen = cfg.ShardSize
		}
		chunkAndZip(s.logger(), s.metrics(), aluOpName(op), events, chunkLen, shards,
			func(out *ExecutionRecord, chunk []AluEvent) { out.AluEvents[op] = chunk })
	}

	// Step C: bulk precompile distribution.
	chunkAndZip(s.logger(), s.metrics(), "keccak_permute", r.KeccakPermuteEvents, cfg.KeccakPermuteLen, shards,
		func(out *ExecutionRecord, chunk []KeccakPermuteEvent) { out.KeccakPermuteEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "secp256k1_add", r.Secp256k1AddEvents, cfg.Secp256k1AddLen, shards,
		func(out *ExecutionRecord, chunk []Secp256k1AddEvent) { out.Secp256k1AddEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "secp256k1_double", r.Secp256k1DoubleEvents, cfg.Secp256k1DoubleLen, shards,
		func(out *ExecutionRecord, chunk []Secp256k1DoubleEvent) { out.Secp256k1DoubleEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bn254_add", r.Bn254AddEvents, cfg.Bn254AddLen, shards,
		func(out *ExecutionRecord, chunk []Bn254AddEvent) { out.Bn254AddEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bn254_double", r.Bn254DoubleEvents, cfg.Bn254DoubleLen, shards,
		func(out *ExecutionRecord, chunk []Bn254DoubleEvent) { out.Bn254DoubleEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bls12381_g1_add", r.Bls12381G1AddEvents, cfg.Bls12381G1AddLen, shards,
		func(out *ExecutionRecord, chunk []Bls12381G1AddEvent) { out.Bls12381G1AddEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bls12381_g1_double", r.Bls12381G1DoubleEvents, cfg.Bls12381G1DoubleLen, shards,
		func(out *ExecutionRecord, chunk []Bls12381G1DoubleEvent) { out.Bls12381G1DoubleEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bls12381_fp_add", r.Bls12381FpAddEvents, cfg.Bls12381FpAddLen, shards,
		func(out *ExecutionRecord, chunk []Bls12381FpAddEvent) { out.Bls12381FpAddEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bls12381_fp_sub", r.Bls12381FpSubEvents, cfg.Bls12381FpSubLen, shards,
		func(out *ExecutionRecord, chunk []Bls12381FpSubEvent) { out.Bls12381FpSubEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bls12381_fp_mul", r.Bls12381FpMulEvents, cfg.Bls12381FpMulLen, shards,
		func(out *ExecutionRecord, chunk []Bls12381FpMulEvent) { out.Bls12381FpMulEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bls12381_fp2_add", r.Bls12381Fp2AddEvents, cfg.Bls12381Fp2AddLen, shards,
		func(out *ExecutionRecord, chunk []Bls12381Fp2AddEvent) { out.Bls12381Fp2AddEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bls12381_fp2_sub", r.Bls12381Fp2SubEvents, cfg.Bls12381Fp2SubLen, shards,
		func(out *ExecutionRecord, chunk []Bls12381Fp2SubEvent) { out.Bls12381Fp2SubEvents = chunk })
	chunkAndZip(s.logger(), s.metrics(), "bls12381_fp2_mul", r.Bls12381Fp2MulEvents, cfg.Bls12381Fp2MulLen, shards,
		func(out *ExecutionRecord, chunk []Bls12381Fp2MulEvent) { out.Bls12381Fp2MulEvents = chunk })

	// Step D: single-shard precompile placement -- moved wholesale into the
	// first output shard (rare enough that sharding overhead outweighs
	// parallelism, spec.md §4.2).
	first := shards[0]
	first.ShaExtendEvents = r.ShaExtendEvents
	first.ShaCompressEvents = r.ShaCompressEvents
	first.EdAddEvents = r.EdAddEvents
	first.EdDecompressEvents = r.EdDecompressEvents
	first.Secp256k1DecompressEvents = r.Secp256k1DecompressEvents
	first.Bls12381G1DecompressEvents = r.Bls12381G1DecompressEvents
	first.Bls12381G2AddEvents = r.Bls12381G2AddEvents
	first.Bls12381G2DoubleEvents = r.Bls12381G2DoubleEvents
	first.Blake3CompressInnerEvents = r.Blake3CompressInnerEvents

	// Step E: memory boundary placement -- moved wholesale into the last
	// output shard (global boundary witness, spec.md §4.2).
	last := shards[len(shards)-1]
	last.MemoryInitializeEvents = r.MemoryInitializeEvents
	last.MemoryFinalizeEvents = r.MemoryFinalizeEvents

	s.metrics().ObserveShardsProduced(len(shards))
	return shards
}

// shardByCPUEvents implements Step A: scans cpu_events once, opening a new
// output shard whenever cpu_event.Shard changes and closing the final shard
// at end-of-stream.
func shardByCPUEvents(r *ExecutionRecord) []*ExecutionRecord {
	var shards []*ExecutionRecord

	start := 0
	currentID := r.CPUEvents[0].Shard
	for i := 1; i <= len(r.CPUEvents); i++ {
		if i == len(r.CPUEvents) || r.CPUEvents[i].Shard != currentID {
			slice := r.CPUEvents[start:i]
			out := New(currentID, r.Program)
			out.CPUEvents = slice
			out.NeedsNonceColumns = r.NeedsNonceColumns

			out.PublicValues.CommittedValueDigest = r.PublicValues.CommittedValueDigest
			out.PublicValues.DeferredProofsDigest = r.PublicValues.DeferredProofsDigest
			out.PublicValues.Shard = currentID
			out.PublicValues.StartPC = slice[0].PC
			out.PublicValues.NextPC = slice[len(slice)-1].NextPC
			out.PublicValues.ExitCode = slice[len(slice)-1].ExitCode

			if bl, ok := r.ByteLookups[currentID]; ok {
				out.ByteLookups[currentID] = bl
			}

			shards = append(shards, out)

			if i < len(r.CPUEvents) {
				start = i
				currentID = r.CPUEvents[i].Shard
			}
		}
	}
	return shards
}

// chunkAndZip splits items into fixed-size chunks of chunkLen and assigns
// chunk i to shards[i] (1:1 pairing, not round-robin). If there are more
// chunks than shards, the excess is dropped (observably, via logger/metrics)
// exactly as the source's `zip` does; if there are fewer, trailing shards
// simply receive none (their field stays at its zero value).
func chunkAndZip[T any](logger *zap.Logger, metrics ShardMetrics, family string, items []T, chunkLen int, shards []*ExecutionRecord, assign func(out *ExecutionRecord, chunk []T)) {
	if chunkLen <= 0 || len(items) == 0 {
		return
	}

	nChunks := (len(items) + chunkLen - 1) / chunkLen
	n := nChunks
	if n > len(shards) {
		dropped := n - len(shards)
		logger.Warn("sharding: dropping excess chunks beyond CPU-derived shard count",
			zap.String("family", family),
			zap.Int("dropped_chunks", dropped),
			zap.Int("total_chunks", nChunks),
			zap.Int("available_shards", len(shards)),
		)
		metrics.IncDroppedChunks(family, dropped)
		n = len(shards)
	}

	for i := 0; i < n; i++ {
		lo := i * chunkLen
		hi := lo + chunkLen
		if hi > len(items) {
			hi = len(items)
		}
		assign(shards[i], items[lo:hi])
	}
}
