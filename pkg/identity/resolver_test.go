package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryJSON = `{
  "data": {
    "entities": [
      {"entity_id": "light.kitchen_sink", "unique_id": "00:11:22:33:44:55-light-rid-1", "platform": "hue"},
      {"entity_id": "light.kitchen_island", "unique_id": "rid-2", "platform": "hue"},
      {"entity_id": "sensor.kitchen_motion", "unique_id": "rid-3", "platform": "hue_motion"},
      {"entity_id": "", "unique_id": "rid-4", "platform": "hue"}
    ]
  }
}`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "core.entity_registry")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveExactMatch(t *testing.T) {
	m, err := Load(writeRegistry(t, registryJSON))
	require.NoError(t, err)

	entity, ok := m.Resolve("rid-2")
	require.True(t, ok)
	assert.Equal(t, "light.kitchen_island", entity)
}

func TestResolveSuffixMatch(t *testing.T) {
	m, err := Load(writeRegistry(t, registryJSON))
	require.NoError(t, err)

	entity, ok := m.Resolve("rid-1")
	require.True(t, ok)
	assert.Equal(t, "light.kitchen_sink", entity)
}

func TestResolveMiss(t *testing.T) {
	m, err := Load(writeRegistry(t, registryJSON))
	require.NoError(t, err)

	_, ok := m.Resolve("rid-does-not-exist")
	assert.False(t, ok)
}

func TestResolveIgnoresOtherPlatformsAndEmptyEntityIDs(t *testing.T) {
	m, err := Load(writeRegistry(t, registryJSON))
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())

	_, ok := m.Resolve("rid-3")
	assert.False(t, ok)

	_, ok = m.Resolve("rid-4")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeRegistry(t, `{not json`))
	assert.Error(t, err)
}
