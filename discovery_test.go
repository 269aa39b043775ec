// FILE: lixenwraith/gameini/discovery_test.go
package gameini

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFile(t *testing.T) {
	root := t.TempDir()
	linux := filepath.Join(root, "ShooterGame", "Saved", "Config", "LinuxServer")
	require.NoError(t, os.MkdirAll(linux, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(linux, "Game.ini"), []byte("[S]\n"), 0644))

	t.Run("ServerRoot", func(t *testing.T) {
		opts := DefaultDiscoveryOptions("")
		opts.EnvVar = ""
		opts.UseCurrentDir = false
		opts.ServerRoot = root

		path, err := FindFile(opts)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(linux, "Game.ini"), path)
	})

	t.Run("CustomPathsFirst", func(t *testing.T) {
		custom := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(custom, "Game.ini"), []byte("[S]\n"), 0644))

		path, err := FindFile(DiscoveryOptions{Name: "Game.ini", Paths: []string{custom}, ServerRoot: root})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(custom, "Game.ini"), path)
	})

	t.Run("EnvVar", func(t *testing.T) {
		explicit := filepath.Join(t.TempDir(), "Other.ini")
		require.NoError(t, os.WriteFile(explicit, []byte("[S]\n"), 0644))
		t.Setenv("TEST_GAMEINI_FILE", explicit)

		path, err := FindFile(DiscoveryOptions{Name: "Game.ini", EnvVar: "TEST_GAMEINI_FILE", ServerRoot: root})
		require.NoError(t, err)
		assert.Equal(t, explicit, path)

		t.Setenv("TEST_GAMEINI_FILE", filepath.Join(root, "missing.ini"))
		_, err = FindFile(DiscoveryOptions{Name: "Game.ini", EnvVar: "TEST_GAMEINI_FILE"})
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := FindFile(DiscoveryOptions{Name: "GameUserSettings.ini", ServerRoot: root})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), "GameUserSettings.ini")
	})
}
