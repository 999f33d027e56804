package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "prog.mini")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// execCmd runs the root command with args and returns stdout.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := root.Execute()

	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	buf.ReadFrom(r)

	return buf.String(), runErr
}

func TestRunCommandPrintsReturnValue(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `{ x : i32 = 1 + 2 * 3; return x; }`)

	out, err := execCmd(t, "run", path)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestIRCommandPrintsTextualIR(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `{ return 1; }`)

	out, err := execCmd(t, "ir", path)
	require.NoError(t, err)
	require.Contains(t, out, "bb.0:")
	require.Contains(t, out, "ret i32 1")
}

func TestBuildCommandReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `{ x : i32 = ; return x; }`)

	_, err := execCmd(t, "build", path)
	require.Error(t, err)
}

func TestDotCommandWritesGraphvizFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, `{ if 1 { return 1; } return 0; }`)

	_, err := execCmd(t, "dot", "--config", filepath.Join(dir, "missing.yaml"), path)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(".", "prog.dot"))
	require.NoError(t, err)
	require.Contains(t, string(data), "digraph G")
	require.NoError(t, os.Remove(filepath.Join(".", "prog.dot")))
}
