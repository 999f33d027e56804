package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smokesugar/minic/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".minic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("opt_level: fold\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.OptFold, cfg.OptLevel)
	require.Equal(t, config.FormatIR, cfg.Format) // unset field keeps the default
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".minic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [not a scalar\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
