package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_Load(t *testing.T) {
	t.Run("returns nil when file does not exist", func(t *testing.T) {
		store := NewStore(t.TempDir())

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Nil(t, loaded)
	})

	t.Run("returns error on invalid JSON", func(t *testing.T) {
		tempDir := t.TempDir()
		err := os.WriteFile(filepath.Join(tempDir, "preferences.json"), []byte("not valid json"), 0o600)
		require.NoError(t, err)

		loaded, err := NewStore(tempDir).Load()
		require.Error(t, err)
		require.Nil(t, loaded)
	})

	t.Run("loads all fields correctly", func(t *testing.T) {
		store := NewStore(t.TempDir())

		prefs := &Preferences{VerifierLength: 64, ShowSettings: true}
		require.NoError(t, store.Save(prefs))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, prefs, loaded)
	})
}

func TestStore_Save(t *testing.T) {
	t.Run("creates directory if not exists", func(t *testing.T) {
		nestedDir := filepath.Join(t.TempDir(), "nested", "path")
		store := NewStore(nestedDir)

		require.NoError(t, store.Save(&Preferences{VerifierLength: 43}))

		_, err := os.Stat(filepath.Join(nestedDir, "preferences.json"))
		require.NoError(t, err)
	})

	t.Run("sets restrictive file permissions", func(t *testing.T) {
		tempDir := t.TempDir()
		store := NewStore(tempDir)

		require.NoError(t, store.Save(&Preferences{VerifierLength: 43}))

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("overwrites previous preferences", func(t *testing.T) {
		store := NewStore(t.TempDir())

		require.NoError(t, store.Save(&Preferences{VerifierLength: 43, ShowSettings: true}))
		require.NoError(t, store.Save(&Preferences{VerifierLength: 100}))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, 100, loaded.VerifierLength)
		require.False(t, loaded.ShowSettings)
	})
}
