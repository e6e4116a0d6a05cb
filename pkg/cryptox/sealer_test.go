package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("test-master-key-for-sealing-12345"))
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("3.9"), []byte("gpa"))
	require.NoError(t, err)
	require.True(t, cryptox.IsSealed(sealed))
	require.NotContains(t, sealed, "3.9")

	// Same plaintext seals differently each time
	again, err := s.Seal([]byte("3.9"), []byte("gpa"))
	require.NoError(t, err)
	require.NotEqual(t, sealed, again)

	plain, err := s.Open(sealed, []byte("gpa"))
	require.NoError(t, err)
	require.Equal(t, "3.9", string(plain))

	t.Run("wrong aad", func(t *testing.T) {
		_, err := s.Open(sealed, []byte("honours"))
		require.Error(t, err)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := cryptox.NewSealer([]byte("another-key"))
		require.NoError(t, err)
		_, err = other.Open(sealed, []byte("gpa"))
		require.Error(t, err)
	})

	t.Run("not sealed", func(t *testing.T) {
		_, err := s.Open("plain", nil)
		require.ErrorIs(t, err, cryptox.ErrNotSealed)
	})
}

func TestLoadSealer(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master.key")
		require.NoError(t, os.WriteFile(path, []byte("file-key\n"), 0o600))

		fromFile, ephemeral, err := cryptox.LoadSealer(path, "")
		require.NoError(t, err)
		require.False(t, ephemeral)

		fromEnv, _, err := cryptox.LoadSealer("", "file-key")
		require.NoError(t, err)

		sealed, err := fromFile.Seal([]byte("x"), nil)
		require.NoError(t, err)
		plain, err := fromEnv.Open(sealed, nil)
		require.NoError(t, err)
		require.Equal(t, "x", string(plain))
	})

	t.Run("ephemeral", func(t *testing.T) {
		s, ephemeral, err := cryptox.LoadSealer("", "")
		require.NoError(t, err)
		require.True(t, ephemeral)
		require.NotNil(t, s)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := cryptox.LoadSealer(filepath.Join(t.TempDir(), "nope"), "")
		require.Error(t, err)
	})
}
