package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smokesugar/minic/internal/ssa"
)

// TestBuilderScenarioA is spec.md's Scenario A: straight-line arithmetic,
// folded entirely by the analyzer, printed after immediate folding.
func TestBuilderScenarioA(t *testing.T) {
	fn := buildAndFold(t, `{ x : i32 = 1 + 2 * 3; return x; }`)

	blocks := fn.Blocks()
	require.Len(t, blocks, 2)
	require.Equal(t, "bb.0", blocks[0].String())
	require.Equal(t, "bb.1", blocks[1].String())

	instrs := blocks[0].Instructions()
	require.Len(t, instrs, 3)
	require.Equal(t, ssa.OpStore, instrs[0].Op)
	require.Equal(t, int64(7), instrs[0].Arg1.Integer)
	require.Equal(t, ssa.OpLoad, instrs[1].Op)
	require.Equal(t, ssa.OpRet, instrs[2].Op)
	require.Equal(t, instrs[1].Dest, instrs[2].Arg0.Reg)

	require.Empty(t, blocks[1].Instructions())
}

// TestBuilderScenarioF is spec.md's Scenario F: a constant comparison
// folded to a literal by the analyzer, then inlined by immediate folding.
func TestBuilderScenarioF(t *testing.T) {
	fn := buildAndFold(t, `{ return 3 < 5; }`)

	blocks := fn.Blocks()
	require.Len(t, blocks, 2)

	instrs := blocks[0].Instructions()
	require.Len(t, instrs, 1)
	require.Equal(t, ssa.OpRet, instrs[0].Op)
	require.Equal(t, ssa.ValueInteger, instrs[0].Arg0.Kind)
	require.Equal(t, int64(1), instrs[0].Arg0.Integer)
}

// TestBuilderScenarioD is spec.md's Scenario D: an early return inside an
// if with no else leaves a dead placeholder block after each ret, and the
// trailing block after the top-level return is unreachable.
func TestBuilderScenarioD(t *testing.T) {
	fn := build(t, `{ if 1 { return 42; } return 0; }`)

	var rets int
	for _, b := range fn.Blocks() {
		for _, in := range b.Instructions() {
			if in.Op == ssa.OpRet {
				rets++
			}
		}
	}
	require.Equal(t, 2, rets)

	reachable := reachableBlocks(fn)
	require.Contains(t, reachable, fn.EntryBlock().ID)
}

// TestBuilderPendingBlockAbsorption exercises the placeholder-absorption
// rule directly: an if with an empty then-body places two blocks back to
// back before any instruction is emitted for either.
func TestBuilderPendingBlockAbsorption(t *testing.T) {
	fn := build(t, `{ if 1 {} return 0; }`)

	entry := fn.EntryBlock()
	succs := entry.Successors()
	require.Len(t, succs, 2)
	thenBlk, endBlk := succs[0], succs[1]

	// thenBlk's body is empty, so its own successor is derived from its
	// absorbed start instruction rather than list adjacency; it must fall
	// through to the same block the else arm targets directly.
	require.Empty(t, thenBlk.Instructions())
	thenSuccs := thenBlk.Successors()
	require.Len(t, thenSuccs, 1)
	require.Equal(t, endBlk.ID, thenSuccs[0].ID)
}

func reachableBlocks(fn *ssa.Function) map[int]bool {
	seen := map[int]bool{}
	var visit func(b *ssa.BasicBlock)
	visit = func(b *ssa.BasicBlock) {
		if seen[b.ID] {
			return
		}
		seen[b.ID] = true
		for _, s := range b.Successors() {
			visit(s)
		}
	}
	visit(fn.EntryBlock())
	return seen
}
