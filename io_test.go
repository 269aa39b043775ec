// FILE: lixenwraith/gameini/io_test.go
package gameini

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseFile tests reading from disk
func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "Game.ini")
	require.NoError(t, os.WriteFile(path, []byte(arkSettings), 0644))

	f, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, arkCanonical, f.String())

	t.Run("Missing", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(tmpDir, "missing.ini"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("TooLarge", func(t *testing.T) {
		_, err := ParseFileWithOptions(path, LoadOptions{MaxFileSize: 16})
		assert.True(t, errors.Is(err, ErrFileTooLarge))
	})

	t.Run("NoLimit", func(t *testing.T) {
		_, err := ParseFileWithOptions(path, LoadOptions{})
		assert.NoError(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		bad := filepath.Join(tmpDir, "bad.ini")
		require.NoError(t, os.WriteFile(bad, []byte("[S]\nKey\n"), 0644))
		_, err := ParseFile(bad)
		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr))
		assert.Contains(t, err.Error(), "bad.ini")
	})
}

// TestParseReader tests Parse and ParseBytes
func TestParseReader(t *testing.T) {
	f, err := Parse(strings.NewReader("[A]\nX=1\r\n"))
	require.NoError(t, err)
	x, err := f.GetInt("A", "X")
	require.NoError(t, err)
	assert.Equal(t, int32(1), x)

	g, err := ParseBytes([]byte("[A]\nX=1"))
	require.NoError(t, err)
	assert.Equal(t, f.String(), g.String())
}

// TestWriteTo tests the newline-terminated output
func TestWriteTo(t *testing.T) {
	f, err := ParseString("[A]\nX=1")
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("[A]\nX=1\n")), n)
	assert.Equal(t, "[A]\nX=1\n", buf.String())

	empty, err := NewFile()
	require.NoError(t, err)
	buf.Reset()
	_, err = empty.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "", buf.String())
}

// TestSave tests atomic save and reload
func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "Game.ini")

	f, err := ParseString(arkSettings)
	require.NoError(t, err)
	require.NoError(t, f.SetInt("ServerSettings", "MaxPlayers", 20))
	require.NoError(t, f.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MaxPlayers=20\n")
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	loaded, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.String(), loaded.String())

	// No temporary files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	t.Run("KeepsMode", func(t *testing.T) {
		require.NoError(t, os.Chmod(path, 0600))
		require.NoError(t, f.Save(path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}
