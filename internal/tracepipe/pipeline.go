// Package tracepipe orchestrates concurrent trace generation across the
// chips registered against one shard (spec.md §4.4, §6). Chips are
// independent of each other by contract: each one only reads its own event
// streams off the input record and writes its own rows, so generating N
// chips' traces for a shard is embarrassingly parallel.
//
// © 2025 arena-cache authors. MIT License.
package tracepipe

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/record"
)

// Pipeline runs a fixed set of chips against one shard at a time.
type Pipeline struct {
	chips   []chip.MachineAir
	metrics Metrics
}

// Option customises a Pipeline constructed by NewWithOptions.
type Option func(*Pipeline)

// WithMetrics attaches a Metrics sink; the default is NoopMetrics{}.
func WithMetrics(m Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New returns a Pipeline that generates traces for every given chip.
func New(chips ...chip.MachineAir) *Pipeline {
	return &Pipeline{chips: chips, metrics: NoopMetrics{}}
}

// NewWithOptions is New plus functional options, kept separate so the common
// no-metrics call site stays a plain variadic chip list.
func NewWithOptions(chips []chip.MachineAir, opts ...Option) *Pipeline {
	p := &Pipeline{chips: chips, metrics: NoopMetrics{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ShardTraces is the result of generating every included chip's trace for
// one shard: each chip's matrix, keyed by name, plus the byte lookups all
// chips recorded as a population side effect.
type ShardTraces struct {
	Shard       uint32
	Traces      map[string]*chip.RowMajorMatrix
	ByteLookups record.ByteLookupMap
}

// GenerateShard runs every chip whose Included(shard) is true concurrently,
// via errgroup. Each chip writes its byte lookups into its own scratch
// record; as soon as that chip's GenerateTrace returns, its lookups are
// merged into the shared map under a single mutex, so no chip ever writes
// the shared map while generating (spec.md §6). A chip that returns an error aborts the remaining
// chips' results but does not cancel their already-running goroutines'
// side effects from being discarded; the first error is returned.
func (p *Pipeline) GenerateShard(ctx context.Context, shard *record.ExecutionRecord) (*ShardTraces, error) {
	result := &ShardTraces{
		Shard:       shard.Index,
		Traces:      make(map[string]*chip.RowMajorMatrix, len(p.chips)),
		ByteLookups: record.NewByteLookupMap(),
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for _, c := range p.chips {
		c := c
		if !c.Included(shard) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			// Each chip accumulates its own byte lookups into a scratch
			// record rather than shard.ByteLookups directly, so concurrent
			// chips never touch the same map (spec.md §6).
			scratch := record.New(shard.Index, shard.Program)
			matrix, err := c.GenerateTrace(shard, scratch)
			if err != nil {
				return fmt.Errorf("tracepipe: chip %q: %w", c.Name(), err)
			}

			mu.Lock()
			result.Traces[c.Name()] = matrix
			result.ByteLookups.Merge(scratch.ByteLookups)
			mu.Unlock()

			p.metrics.ObserveChipRows(c.Name(), matrix.NumRows())
			p.metrics.ObserveByteLookupsRecorded(c.Name(), scratch.ByteLookups.TotalMultiplicity())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
