package main

// main.go implements the airtrace-inspect CLI: given a chip name and shard
// index, it prints that chip's trace statistics, serving a memoized trace
// from internal/diskcache where possible and regenerating from a recorded
// JSON ExecutionRecord on a cache miss (spec.md §6 recompute-on-miss story).
//
// Unlike arena-cache-inspect, which polls a remote process over HTTP, this
// inspector reads a local, durable cache directly: trace generation has no
// "live process" to poll, only shards and the chips that already ran against
// them.
//
// © 2025 arena-cache authors. MIT License.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/internal/diskcache"
	"github.com/zkfabric/airtrace/record"
)

func main() {
	opts, err := parseFlags()
	if err != nil {
		fatal(err)
	}
	if opts.version {
		fmt.Println(version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if err := inspect(ctx, opts); err != nil {
		fatal(err)
	}
}

func inspect(ctx context.Context, opts *options) error {
	c, err := diskcache.Open(opts.cacheDir)
	if err != nil {
		return err
	}
	defer c.Close()

	chipImpl, err := resolveChip(opts.chipName)
	if err != nil {
		return err
	}

	key := diskcache.Key{Shard: uint32(opts.shard), Chip: opts.chipName}
	entry, err := c.GetOrCompute(ctx, key, func(context.Context) (*diskcache.Entry, error) {
		return regenerate(opts, chipImpl)
	})
	if err != nil {
		return err
	}

	stats := struct {
		Shard       uint   `json:"shard"`
		Chip        string `json:"chip"`
		Width       int    `json:"width"`
		NumRows     int    `json:"num_rows"`
		Multiplicity uint64 `json:"byte_lookup_multiplicity"`
	}{
		Shard:        opts.shard,
		Chip:         opts.chipName,
		Width:        entry.Matrix.Width(),
		NumRows:      entry.Matrix.NumRows(),
		Multiplicity: entry.ByteLookups.TotalMultiplicity(),
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	fmt.Printf("shard:     %d\n", stats.Shard)
	fmt.Printf("chip:      %s\n", stats.Chip)
	fmt.Printf("width:     %d\n", stats.Width)
	fmt.Printf("rows:      %d\n", stats.NumRows)
	fmt.Printf("lookups:   %d\n", stats.Multiplicity)
	return nil
}

// regenerate reads a JSON-encoded ExecutionRecord from opts.recordPath and
// runs chipImpl.GenerateTrace against it. This cache is meant to be
// populated by a real trace-generation run (internal/tracepipe); -record
// exists only so the inspector can reproduce a miss for ad-hoc debugging
// without standing up the full pipeline.
func regenerate(opts *options, chipImpl chip.MachineAir) (*diskcache.Entry, error) {
	if opts.recordPath == "" {
		return nil, fmt.Errorf("no cached trace for shard %d chip %q; run trace generation first or pass -record", opts.shard, opts.chipName)
	}

	f, err := os.Open(opts.recordPath)
	if err != nil {
		return nil, fmt.Errorf("airtrace-inspect: open record: %w", err)
	}
	defer f.Close()

	input := record.New(uint32(opts.shard), nil)
	if err := json.NewDecoder(f).Decode(input); err != nil {
		return nil, fmt.Errorf("airtrace-inspect: decode record: %w", err)
	}
	if input.AluEvents == nil {
		input.AluEvents = make(map[record.AluOp][]record.AluEvent)
	}
	if input.ByteLookups == nil {
		input.ByteLookups = record.NewByteLookupMap()
	}

	output := record.New(uint32(opts.shard), nil)
	matrix, err := chipImpl.GenerateTrace(input, output)
	if err != nil {
		return nil, fmt.Errorf("airtrace-inspect: generate trace: %w", err)
	}
	return &diskcache.Entry{Matrix: matrix, ByteLookups: output.ByteLookups}, nil
}
