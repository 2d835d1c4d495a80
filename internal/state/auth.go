package state

import (
	"context"
	"sync"

	"teamboard/internal/models"
	"teamboard/internal/notify"
	"teamboard/internal/session"
)

// AuthStore holds the current authenticated user. The token itself lives
// in the session store, which the API client reads on every request.
type AuthStore struct {
	api      AuthAPI
	session  *session.Store
	notifier notify.Notifier

	mu   sync.RWMutex
	user *models.User
}

// NewAuthStore creates the auth store and restores any persisted session.
func NewAuthStore(api AuthAPI, sess *session.Store, notifier notify.Notifier) *AuthStore {
	s := &AuthStore{api: api, session: sess, notifier: notifier}
	s.restore()
	return s
}

// restore re-reads a persisted session from a previous run within the same
// login session. A corrupt user record tears the whole session down.
func (s *AuthStore) restore() {
	if s.session.Token() == "" {
		return
	}
	user, err := s.session.LoadUser()
	if err != nil || user == nil {
		_ = s.session.Clear()
		return
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Login authenticates and persists the session.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, models.LoginPayload{Email: email, Password: password})
	if err != nil {
		s.notifier.Error("Login failed: wrong email or password")
		return err
	}
	if err := s.establish(resp); err != nil {
		return err
	}
	s.notifier.Success("Signed in successfully")
	return nil
}

// Register creates an account and signs it in.
func (s *AuthStore) Register(ctx context.Context, name, email, password string) error {
	resp, err := s.api.Register(ctx, models.RegisterPayload{Name: name, Email: email, Password: password})
	if err != nil {
		s.notifier.Error("Registration failed (maybe the email is already taken?)")
		return err
	}
	if err := s.establish(resp); err != nil {
		return err
	}
	s.notifier.Success("Registered successfully, welcome!")
	return nil
}

func (s *AuthStore) establish(resp *models.AuthResponse) error {
	if err := s.session.Save(resp.Token, resp.User); err != nil {
		return err
	}
	user := resp.User
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout clears the persisted session and the current user.
func (s *AuthStore) Logout() {
	_ = s.session.Clear()
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.notifier.Success("Signed out")
}

// SessionExpired drops the current user after the API client has already
// torn the persisted session down on a 401.
func (s *AuthStore) SessionExpired() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *AuthStore) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is signed in.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}
