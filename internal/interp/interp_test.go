package interp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smokesugar/minic/internal/interp"
	"github.com/smokesugar/minic/internal/parser"
	"github.com/smokesugar/minic/internal/sema"
	"github.com/smokesugar/minic/internal/ssa"
)

// run lexes, parses, analyzes, lowers, folds, and promotes src, then
// interprets the result, mirroring the full pipeline cmd/minic's `run`
// subcommand drives.
func run(t *testing.T, src string) int64 {
	t.Helper()
	n, err := parser.New(src).Parse()
	require.NoError(t, err)
	require.NoError(t, sema.New().Analyze(n))

	fn := ssa.NewBuilder().Build(n)
	ssa.FoldImmediates(fn)
	ssa.PromoteToSSA(fn)

	v, err := interp.Run(fn)
	require.NoError(t, err)
	return v
}

func TestScenarioA(t *testing.T) {
	require.Equal(t, int64(7), run(t, `{ x : i32 = 1 + 2 * 3; return x; }`))
}

func TestScenarioB(t *testing.T) {
	require.Equal(t, int64(10), run(t, `{ x : i32 = 0; if 1 { x = 10; } else { x = 20; } return x; }`))
	require.Equal(t, int64(20), run(t, `{ x : i32 = 0; if 0 { x = 10; } else { x = 20; } return x; }`))
}

func TestScenarioC(t *testing.T) {
	src := `{ i : i32 = 0; s : i32 = 0; while i < 10 { s = s + i; i = i + 1; } return s; }`
	require.Equal(t, int64(45), run(t, src))
}

func TestScenarioD(t *testing.T) {
	require.Equal(t, int64(42), run(t, `{ if 1 { return 42; } return 0; }`))
	require.Equal(t, int64(0), run(t, `{ if 0 { return 42; } return 0; }`))
}

func TestScenarioE(t *testing.T) {
	require.Equal(t, int64(2), run(t, `{ x : i32 = 1; { x : i32 = 2; return x; } }`))
}

func TestScenarioF(t *testing.T) {
	require.Equal(t, int64(1), run(t, `{ return 3 < 5; }`))
}

func TestCastsAndDivision(t *testing.T) {
	require.Equal(t, int64(3), run(t, `{ return 10 / 3; }`))
	require.Equal(t, int64(-1), run(t, `{ x : i8 = 255 as i8; return x; }`))
}

func TestDivisionByZero(t *testing.T) {
	n, err := parser.New(`{ return 1 / 0; }`).Parse()
	require.NoError(t, err)
	require.NoError(t, sema.New().Analyze(n))

	fn := ssa.NewBuilder().Build(n)
	ssa.FoldImmediates(fn)
	ssa.PromoteToSSA(fn)

	_, err = interp.Run(fn)
	require.Error(t, err)
}
