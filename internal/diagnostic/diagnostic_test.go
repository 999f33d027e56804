package diagnostic_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/smokesugar/minic/internal/diagnostic"
)

type fakeSource struct {
	lines []string
}

func (f fakeSource) Line(n int) string {
	if n-1 < 0 || n-1 >= len(f.lines) {
		return ""
	}
	return f.lines[n-1]
}

func TestReportRendersCaretUnderColumn(t *testing.T) {
	color.NoColor = true // deterministic output regardless of terminal detection
	src := fakeSource{lines: []string{`{ x : i32 = ; return x; }`}}

	var buf bytes.Buffer
	diagnostic.Report(&buf, src, 1, 13, `expected an expression`)

	out := buf.String()
	require.Contains(t, out, "Error: expected an expression")
	require.Contains(t, out, "{ x : i32 = ; return x; }")
	require.Contains(t, out, "^")
}

func TestReportOnUnknownLineOmitsSourceAndCaret(t *testing.T) {
	color.NoColor = true
	src := fakeSource{}

	var buf bytes.Buffer
	diagnostic.Report(&buf, src, 1, 1, "boom")

	require.Equal(t, "Error: boom\n", buf.String())
}
