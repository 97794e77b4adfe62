package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "tests.txt", cfg.Manifest)
	assert.Equal(t, "python", cfg.Interpreter)
	assert.Equal(t, "PYTHONPATH", cfg.RootEnv)
	assert.Empty(t, cfg.Key)
	assert.Empty(t, cfg.Cert)
	assert.False(t, cfg.GetNoColor())
	assert.False(t, cfg.GetVerbose())
}

func TestLoadConfig(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "suiterun.yaml")
		content := `manifest: smoke.txt
interpreter: python3
key: ~/keys/localuser.key
cert: ~/keys/localuser.crt
pace: 2
noColor: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "smoke.txt", cfg.Manifest)
		assert.Equal(t, "python3", cfg.Interpreter)
		assert.Equal(t, "~/keys/localuser.key", cfg.Key)
		assert.Equal(t, float64(2), cfg.Pace)
		assert.True(t, cfg.GetNoColor())
		// Unset fields keep defaults
		assert.Equal(t, "PYTHONPATH", cfg.RootEnv)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "suiterun.yaml")
		require.NoError(t, os.WriteFile(path, []byte("manifest: [broken"), 0o644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("no config file returns defaults", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("finds dotfile variant", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".suiterun.yaml"), []byte("manifest: nightly.txt\n"), 0o644))

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "nightly.txt", cfg.Manifest)
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "keys", "k.key"), ExpandHome("~/keys/k.key"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/etc/keys/k.key", ExpandHome("/etc/keys/k.key"))
	assert.Equal(t, "", ExpandHome(""))
}
