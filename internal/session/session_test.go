package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/internal/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	store, err := NewStore()
	require.NoError(t, err)
	return store
}

func TestSessionRoundTrip(t *testing.T) {
	store := newStore(t)
	user := models.User{ID: 1, Name: "Dana", Email: "dana@example.com"}

	require.NoError(t, store.Save("tok-123", user))

	assert.Equal(t, "tok-123", store.Token())
	got, err := store.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
}

func TestSessionEmpty(t *testing.T) {
	store := newStore(t)

	assert.Empty(t, store.Token())
	got, err := store.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionClear(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("tok", models.User{ID: 1}))

	require.NoError(t, store.Clear())

	assert.Empty(t, store.Token())
	got, err := store.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, got)

	// clearing an already-empty session is fine
	require.NoError(t, store.Clear())
}

func TestSessionCorruptUser(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save("tok", models.User{ID: 1}))
	path := filepath.Join(os.Getenv("XDG_RUNTIME_DIR"), "teamboard", "user.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	_, err := store.LoadUser()
	assert.Error(t, err)
}
