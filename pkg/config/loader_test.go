package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene-validator.yaml")
	err := os.WriteFile(path, []byte(`
inventory_dir: /etc/scene-validator/inventory
registry_path: /data/core.entity_registry
rate_limits:
  max_global_per_min: 40
`), 0o644)
	require.NoError(t, err)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	require.Equal(t, "/etc/scene-validator/inventory", cfg.InventoryDir)
	require.Equal(t, 40, cfg.RateLimits.MaxGlobalPerMin)
	// Unset fields fall back to built-in defaults.
	require.Equal(t, 5, cfg.RateLimits.MaxScenePerMin)
	require.Equal(t, 5, cfg.Breaker.FailureThreshold)
}

func TestInitializeExpandsEnvVars(t *testing.T) {
	t.Setenv("SCENE_INVENTORY_DIR", "/env/inventory")

	dir := t.TempDir()
	path := filepath.Join(dir, "scene-validator.yaml")
	err := os.WriteFile(path, []byte(`
inventory_dir: ${SCENE_INVENTORY_DIR}
registry_path: /data/core.entity_registry
`), 0o644)
	require.NoError(t, err)

	cfg, err := Initialize(path)
	require.NoError(t, err)
	require.Equal(t, "/env/inventory", cfg.InventoryDir)
}

func TestInitializeRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene-validator.yaml")
	err := os.WriteFile(path, []byte(`
inventory_dir: ""
registry_path: /data/core.entity_registry
`), 0o644)
	require.NoError(t, err)

	_, err = Initialize(path)
	require.Error(t, err)
}

func TestInitializeMissingFile(t *testing.T) {
	_, err := Initialize(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
