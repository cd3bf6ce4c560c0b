// ABOUTME: Tests for configuration loading and saving.
// ABOUTME: Verifies defaults, XDG paths, round trips and validation.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("SCRIBBLE_HOME", "/tmp/scribble-home")

	cfg := DefaultConfig()
	assert.Equal(t, "/tmp/scribble-home", cfg.Root)
	assert.Equal(t, BackendSymlink, cfg.TagBackend)
	assert.True(t, cfg.StrictTags)
	assert.Equal(t, 20, cfg.ListLimit)
}

func TestConfigPathUsesXDG(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	assert.Equal(t, filepath.Join(tmpDir, "scribble", "config.yaml"), ConfigPath())
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{Root: "/data/notes", TagBackend: BackendKV, StrictTags: false, ListLimit: 5}

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("list_limit: 7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.ListLimit)
	assert.True(t, cfg.StrictTags)
	assert.Equal(t, BackendSymlink, cfg.TagBackend)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tag_backend: postgres\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Set("strict_tags", "false"))
	assert.False(t, cfg.StrictTags)

	require.NoError(t, cfg.Set("list_limit", "3"))
	assert.Equal(t, 3, cfg.ListLimit)

	assert.Error(t, cfg.Set("list_limit", "many"))
	assert.Error(t, cfg.Set("tag_backend", "nope"))
	assert.Error(t, cfg.Set("colour", "blue"))
	assert.Equal(t, 3, cfg.ListLimit, "failed sets leave the config untouched")
}

func TestUpdateWritesOnlyNamedKey(t *testing.T) {
	t.Setenv("SCRIBBLE_HOME", "/tmp/from-env")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, Update(path, "list_limit", "3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "list_limit: 3\n", string(data))

	t.Setenv("SCRIBBLE_HOME", "/tmp/elsewhere")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", cfg.Root)
	assert.Equal(t, 3, cfg.ListLimit)
}

func TestUpdateKeepsExistingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\nroot: /data/notes\nlist_limit: 7\n"), 0o600))

	require.NoError(t, Update(path, "list_limit", "4"))
	require.NoError(t, Update(path, "strict_tags", "false"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# mine")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/notes", cfg.Root)
	assert.Equal(t, 4, cfg.ListLimit)
	assert.False(t, cfg.StrictTags)
	assert.NotContains(t, string(data), "tag_backend")
}

func TestUpdateRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	assert.Error(t, Update(path, "list_limit", "many"))
	assert.Error(t, Update(path, "colour", "blue"))
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
