package chip

// air.go declares AirBuilder (spec.md §4.4, SPEC_FULL.md §5.4): the local
// stand-in for the out-of-scope STARK prover's constraint system. A real
// prover's AirBuilder accumulates symbolic polynomial constraints over a
// trace's current/next rows; since the prover itself is out of scope here,
// DebugAirBuilder instead evaluates every assertion immediately against
// concrete babybear.Element values from one already-populated row, which is
// exactly what spec.md §8 property 4 ("every row a chip emits, including
// padding rows, satisfies Eval") needs to be testable.
//
// © 2025 arena-cache authors. MIT License.

import (
	"fmt"

	"github.com/zkfabric/airtrace/internal/babybear"
)

// AirBuilder is the constraint-recording surface a chip's Eval method is
// given. Implementations may panic-on-violation (DebugAirBuilder, tests) or
// accumulate symbolic constraints (a real prover, out of scope here).
type AirBuilder interface {
	// AssertZero records the constraint that v must equal zero.
	AssertZero(v babybear.Element)
	// AssertBool records that v must be 0 or 1.
	AssertBool(v babybear.Element)
	// AssertEq records that a must equal b.
	AssertEq(a, b babybear.Element)
	// When returns a sub-builder whose assertions are only enforced when
	// cond is nonzero (the "is_real"-gated constraint pattern every chip
	// uses to make padding rows vacuously valid).
	When(cond babybear.Element) AirBuilder
	// WhenNe returns a sub-builder whose assertions are only enforced when
	// a != b.
	WhenNe(a, b babybear.Element) AirBuilder
	// EvalMemoryAccess records the constraints a memory-access column must
	// satisfy relative to the clk/addr/value it claims to witness.
	EvalMemoryAccess(cols MemoryAccessCols, shard, clk babybear.Element, addr uint32, value [4]babybear.Element, isRead bool)
	// ReceiveSyscall records that this row claims to service one syscall
	// invocation at (shard, clk, syscallID, arg1, arg2), gated by isReal.
	ReceiveSyscall(shard, clk, syscallID, arg1, arg2, isReal babybear.Element)
}

// DebugAirBuilder is a concrete AirBuilder that evaluates every assertion
// immediately, panicking with a descriptive message on the first violation.
// It carries a single active gate (the conjunction of every When/WhenNe
// condition on the path that produced it); a disabled gate turns every
// assertion into a no-op, exactly as a padding row's is_real=0 must.
type DebugAirBuilder struct {
	gateOpen bool
	context  string
}

// NewDebugAirBuilder returns a builder whose gate starts open (top-level row
// evaluation).
func NewDebugAirBuilder() *DebugAirBuilder {
	return &DebugAirBuilder{gateOpen: true, context: "row"}
}

func (b *DebugAirBuilder) AssertZero(v babybear.Element) {
	if !b.gateOpen {
		return
	}
	if !v.IsZero() {
		panic(fmt.Sprintf("chip: constraint violated in %s: expected zero, got %d", b.context, v.Uint64()))
	}
}

func (b *DebugAirBuilder) AssertBool(v babybear.Element) {
	if !b.gateOpen {
		return
	}
	if !v.IsBool() {
		panic(fmt.Sprintf("chip: constraint violated in %s: expected boolean column, got %d", b.context, v.Uint64()))
	}
}

func (b *DebugAirBuilder) AssertEq(a, b2 babybear.Element) {
	if !b.gateOpen {
		return
	}
	if !a.Equal(b2) {
		panic(fmt.Sprintf("chip: constraint violated in %s: expected %d == %d", b.context, a.Uint64(), b2.Uint64()))
	}
}

func (b *DebugAirBuilder) When(cond babybear.Element) AirBuilder {
	return &DebugAirBuilder{gateOpen: b.gateOpen && !cond.IsZero(), context: b.context + "/when"}
}

func (b *DebugAirBuilder) WhenNe(a, c babybear.Element) AirBuilder {
	return &DebugAirBuilder{gateOpen: b.gateOpen && !a.Equal(c), context: b.context + "/when_ne"}
}

func (b *DebugAirBuilder) EvalMemoryAccess(cols MemoryAccessCols, shard, clk babybear.Element, addr uint32, value [4]babybear.Element, isRead bool) {
	if !b.gateOpen {
		return
	}
	cols.assertConsistentWith(b, shard, clk, addr, value, isRead)
}

func (b *DebugAirBuilder) ReceiveSyscall(shard, clk, syscallID, arg1, arg2, isReal babybear.Element) {
	if !b.gateOpen {
		return
	}
	b.AssertBool(isReal)
}
