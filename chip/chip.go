// Package chip declares the precompile trace-generation contract (spec.md
// §4.4): the interface every chip (chip/eddecompress, chip/weierstrass,
// chip/fieldsub) implements, plus the shared row-matrix and constraint-
// builder types those chips populate and evaluate against.
//
// © 2025 arena-cache authors. MIT License.
package chip

import (
	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/record"
)

// MachineAir is the general precompile contract (spec.md §4.4.1): a chip
// names itself, declares a fixed row width, decides whether it has any work
// to do for a given shard, turns that shard's events into a padded trace
// matrix (recording byte lookups as a side effect), and can evaluate its own
// row/transition constraints against an AirBuilder.
type MachineAir interface {
	// Name identifies the chip for logging, metrics and diagnostics.
	Name() string

	// Width is the chip's fixed column count.
	Width() int

	// Included reports whether shard contains any event this chip acts on.
	// A chip with no matching events is skipped entirely (spec.md §4.4.1).
	Included(shard *record.ExecutionRecord) bool

	// GenerateTrace turns input's relevant event stream into a trace matrix,
	// padded to the next power of two with constraint-satisfying dummy rows,
	// and accumulates any byte lookups produced along the way into output's
	// byte-lookup map (spec.md §4.4.2).
	GenerateTrace(input, output *record.ExecutionRecord) (*RowMajorMatrix, error)

	// Eval checks every row/transition constraint this chip's trace must
	// satisfy for one concrete row, via b (spec.md §4.4.2, §8 property 4). A
	// real prover's builder carries its own row window; DebugAirBuilder has
	// none, so chips are given the row explicitly here.
	Eval(b AirBuilder, row []babybear.Element)
}
