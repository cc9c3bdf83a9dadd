package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "id", cfg.Model.IDAttribute)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "nested_models", cfg.Metrics.Namespace)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("MODEL_ID_ATTRIBUTE", "_id")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "_id", cfg.Model.IDAttribute)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nMETRICS_NAMESPACE=replay\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("LOG_LEVEL")
		_ = os.Unsetenv("METRICS_NAMESPACE")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "replay", cfg.Metrics.Namespace)
}
