package record

// shardconfig.go declares ShardingConfig, the declarative per-event-kind
// capacity table (spec.md §2, §4.2): default capacity equals the global
// shard size, except field chips which default to 4x shard size. The shape
// follows the teacher's functional-options config (pkg/config.go in
// Voskan/arena-cache): an exported ShardingConfig struct plus ShardingOption
// functions that DefaultShardingConfig applies in order. There is no
// separate validation step; each option ignores a non-positive value.
//
// © 2025 arena-cache authors. MIT License.

import (
	"os"
	"strconv"
)

// shardEnvVar is the one environment variable spec.md §6 allows: an optional
// shard-size override consulted when constructing the default
// ShardingConfig.
const shardEnvVar = "AIRTRACE_SHARD_SIZE"

// defaultShardSize matches the source's default CPU-event capacity per
// shard when no override is supplied.
const defaultShardSize = 1 << 22

// fieldChipMultiplier is why BLS12-381 Fp/Fp2 chips default to 4x shard size
// (spec.md §2): field operations are cheap per-row, so a shard can absorb
// many more of them than CPU events before the matrix becomes the
// bottleneck.
const fieldChipMultiplier = 4

// ShardingConfig is the capacity table consulted by ExecutionRecord.Shard.
// Every chunked family (spec.md §4.2 Steps B/C) has its own length; families
// placed wholesale (Steps D/E) need no entry.
type ShardingConfig struct {
	// ShardSize is the baseline capacity; every Len field below defaults to
	// it unless overridden via an Option.
	ShardSize int

	AluLen map[AluOp]int

	KeccakPermuteLen int

	Secp256k1AddLen    int
	Secp256k1DoubleLen int

	Bn254AddLen    int
	Bn254DoubleLen int

	Bls12381G1AddLen    int
	Bls12381G1DoubleLen int

	Bls12381FpAddLen  int
	Bls12381FpSubLen  int
	Bls12381FpMulLen  int
	Bls12381Fp2AddLen int
	Bls12381Fp2SubLen int
	Bls12381Fp2MulLen int
}

// ShardingOption customises a DefaultShardingConfig() result.
type ShardingOption func(*ShardingConfig)

// WithShardSize overrides the baseline shard size (and, transitively, every
// family capacity that has not been individually overridden yet).
func WithShardSize(n int) ShardingOption {
	return func(c *ShardingConfig) {
		if n <= 0 {
			return
		}
		old := c.ShardSize
		c.ShardSize = n
		for op, l := range c.AluLen {
			if l == old {
				c.AluLen[op] = n
			}
		}
		for _, f := range []*int{&c.KeccakPermuteLen, &c.Secp256k1AddLen, &c.Secp256k1DoubleLen,
			&c.Bn254AddLen, &c.Bn254DoubleLen, &c.Bls12381G1AddLen, &c.Bls12381G1DoubleLen} {
			if *f == old {
				*f = n
			}
		}
		for _, f := range []*int{&c.Bls12381FpAddLen, &c.Bls12381FpSubLen, &c.Bls12381FpMulLen,
			&c.Bls12381Fp2AddLen, &c.Bls12381Fp2SubLen, &c.Bls12381Fp2MulLen} {
			if *f == old*fieldChipMultiplier {
				*f = n * fieldChipMultiplier
			}
		}
	}
}

// WithAluLen overrides the chunk length for a single ALU family.
func WithAluLen(op AluOp, n int) ShardingOption {
	return func(c *ShardingConfig) {
		if n > 0 {
			c.AluLen[op] = n
		}
	}
}

// DefaultShardingConfig builds a ShardingConfig whose baseline shard size is
// defaultShardSize unless AIRTRACE_SHARD_SIZE is set in the environment
// (spec.md §6), then applies opts on top.
func DefaultShardingConfig(opts ...ShardingOption) ShardingConfig {
	size := defaultShardSize
	if v := os.Getenv(shardEnvVar); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}

	cfg := &ShardingConfig{
		ShardSize: size,
		AluLen: map[AluOp]int{
			AluAdd:        size,
			AluMulLow:     size,
			AluMulHigh:    size,
			AluSub:        size,
			AluBitwise:    size,
			AluShiftLeft:  size,
			AluShiftRight: size,
			AluDivRem:     size,
			AluLt:         size,
		},
		KeccakPermuteLen:   size,
		Secp256k1AddLen:    size,
		Secp256k1DoubleLen: size,
		Bn254AddLen:        size,
		Bn254DoubleLen:     size,
		Bls12381G1AddLen:    size,
		Bls12381G1DoubleLen: size,
		Bls12381FpAddLen:  size * fieldChipMultiplier,
		Bls12381FpSubLen:  size * fieldChipMultiplier,
		Bls12381FpMulLen:  size * fieldChipMultiplier,
		Bls12381Fp2AddLen: size * fieldChipMultiplier,
		Bls12381Fp2SubLen: size * fieldChipMultiplier,
		Bls12381Fp2MulLen: size * fieldChipMultiplier,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return *cfg
}
