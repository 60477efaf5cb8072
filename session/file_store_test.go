package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"peoplectl/session"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := session.NewFileStore(path)

	_, ok := store.Token()
	require.False(t, ok, "fresh store should hold no token")

	err := store.SetToken(oauth2.Token{AccessToken: "T", TokenType: "bearer"})
	require.NoError(t, err)

	token, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "T", token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)

	// A separate store over the same path sees the persisted token.
	reopened := session.NewFileStore(path)
	token, ok = reopened.Token()
	require.True(t, ok)
	require.Equal(t, "T", token.AccessToken)
}

func TestFileStoreTokenFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)

	require.NoError(t, store.SetToken(oauth2.Token{AccessToken: "T"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)

	require.NoError(t, store.SetToken(oauth2.Token{AccessToken: "T"}))
	require.NoError(t, store.Clear())

	_, ok := store.Token()
	require.False(t, ok)

	// Clearing an already-empty store is not an error.
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := session.NewFileStore(path)
	_, ok := store.Token()
	require.False(t, ok)
}

func TestFileStoreEmptyAccessTokenTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token_type":"bearer"}`), 0o600))

	store := session.NewFileStore(path)
	_, ok := store.Token()
	require.False(t, ok)
}
