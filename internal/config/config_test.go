package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kegliz/naqc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "naqc.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadAppliesFileOverridesAndDefaultsMissingKeys(t *testing.T) {
	path := writeConfigFile(t, `{
		"placer": {"deepening_factor": 0.5, "use_window": true},
		"codegen": {"parking_offset": 2}
	}`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Placer.DeepeningFactor)
	assert.True(t, cfg.Placer.UseWindow)
	assert.Equal(t, uint(2), cfg.Codegen.ParkingOffset)
	// Missing keys silently default rather than erroring.
	assert.True(t, cfg.Codegen.WarnUnsupportedGates)
}

func TestLoadWarnsOnUnknownKeys(t *testing.T) {
	path := writeConfigFile(t, `{"placer": {"deepening_factor": 0.2, "bogus_key": 1}}`)

	var warned []string
	_, err := config.Load(path, func(key string) { warned = append(warned, key) })
	require.NoError(t, err)
	assert.Contains(t, warned, "placer.bogus_key")
}

func TestPlacerConfigConvertsToAstarParams(t *testing.T) {
	cfg := config.Default()
	cfg.Placer.DeepeningFactor = 0.3
	params := cfg.Placer.ToAstarParams()
	assert.Equal(t, 0.3, params.DeepeningFactor)
}
