package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperwasp/hybridbfs/config"
)

func TestLoadDefaultsWithNoFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, 15.0, cfg.Alpha)
	require.Equal(t, 18.0, cfg.Beta)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hybridbfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha: 20\nbeta: 10\nheavy_threshold: 1000\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 20.0, cfg.Alpha)
	require.Equal(t, 10.0, cfg.Beta)
	require.EqualValues(t, 1000, cfg.HeavyThreshold)
}

func TestLoadMissingFileIsNotError(t *testing.T) {
	_, err := config.Load("/no/such/hybridbfs.yaml")
	require.NoError(t, err)
}

func TestValidateRejectsNonPositiveAlpha(t *testing.T) {
	cfg := &config.Config{Alpha: 0, Beta: 1, HeavyThreshold: 1}
	require.Error(t, cfg.Validate())
}
