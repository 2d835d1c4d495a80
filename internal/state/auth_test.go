package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamboard/internal/api"
	"teamboard/internal/models"
	"teamboard/internal/notify"
)

func TestAuthStoreLogin(t *testing.T) {
	t.Run("success persists the session and sets the user", func(t *testing.T) {
		mockAPI := new(MockAPI)
		recorder := new(notify.Recorder)
		sess := newSessionStore(t)
		store := NewAuthStore(mockAPI, sess, recorder)
		require.False(t, store.IsAuthenticated())

		resp := &models.AuthResponse{
			Token: "tok-123",
			User:  models.User{ID: 1, Name: "Dana", Email: "dana@example.com"},
		}
		mockAPI.On("Login", mock.Anything, models.LoginPayload{Email: "dana@example.com", Password: "pw"}).
			Return(resp, nil).Once()

		require.NoError(t, store.Login(context.Background(), "dana@example.com", "pw"))

		assert.True(t, store.IsAuthenticated())
		require.NotNil(t, store.CurrentUser())
		assert.Equal(t, resp.User, *store.CurrentUser())
		assert.Equal(t, "tok-123", sess.Token())
	})

	t.Run("failure notifies and leaves the store unauthenticated", func(t *testing.T) {
		mockAPI := new(MockAPI)
		recorder := new(notify.Recorder)
		store := NewAuthStore(mockAPI, newSessionStore(t), recorder)
		mockAPI.On("Login", mock.Anything, mock.Anything).
			Return(nil, &api.Error{Status: 401}).Once()

		require.Error(t, store.Login(context.Background(), "dana@example.com", "bad"))

		assert.False(t, store.IsAuthenticated())
		assert.Equal(t, []string{"Login failed: wrong email or password"}, recorder.Errors())
	})
}

func TestAuthStoreRegister(t *testing.T) {
	mockAPI := new(MockAPI)
	recorder := new(notify.Recorder)
	store := NewAuthStore(mockAPI, newSessionStore(t), recorder)

	resp := &models.AuthResponse{Token: "tok", User: models.User{ID: 2, Name: "Noa"}}
	mockAPI.On("Register", mock.Anything, models.RegisterPayload{Name: "Noa", Email: "noa@example.com", Password: "pw"}).
		Return(resp, nil).Once()

	require.NoError(t, store.Register(context.Background(), "Noa", "noa@example.com", "pw"))
	assert.True(t, store.IsAuthenticated())
}

func TestAuthStoreLogout(t *testing.T) {
	mockAPI := new(MockAPI)
	sess := newSessionStore(t)
	require.NoError(t, sess.Save("tok", models.User{ID: 1, Name: "Dana"}))
	store := NewAuthStore(mockAPI, sess, notify.Discard)
	require.True(t, store.IsAuthenticated())

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, sess.Token())
}

func TestAuthStoreRestore(t *testing.T) {
	t.Run("a persisted session is restored at construction", func(t *testing.T) {
		sess := newSessionStore(t)
		require.NoError(t, sess.Save("tok", models.User{ID: 1, Name: "Dana"}))

		store := NewAuthStore(new(MockAPI), sess, notify.Discard)

		require.NotNil(t, store.CurrentUser())
		assert.Equal(t, "Dana", store.CurrentUser().Name)
	})

	t.Run("a corrupt user record tears the session down", func(t *testing.T) {
		sess := newSessionStore(t)
		require.NoError(t, sess.Save("tok", models.User{ID: 1}))
		dir := filepath.Join(os.Getenv("XDG_RUNTIME_DIR"), "teamboard")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0600))

		store := NewAuthStore(new(MockAPI), sess, notify.Discard)

		assert.False(t, store.IsAuthenticated())
		assert.Empty(t, sess.Token())
	})
}

func TestAuthStoreSessionExpired(t *testing.T) {
	sess := newSessionStore(t)
	require.NoError(t, sess.Save("tok", models.User{ID: 1}))
	store := NewAuthStore(new(MockAPI), sess, notify.Discard)
	require.True(t, store.IsAuthenticated())

	store.SessionExpired()

	assert.False(t, store.IsAuthenticated())
}
