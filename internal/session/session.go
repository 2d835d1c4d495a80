package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"teamboard/internal/models"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store persists the authenticated session: an opaque token and the
// serialized user record, under fixed names in the login-session runtime
// directory. The runtime directory is cleared when the login session ends,
// so credentials deliberately do not survive a reboot.
type Store struct {
	dir string
}

// NewStore creates a session store under XDG_RUNTIME_DIR, falling back to
// the system temp directory.
func NewStore() (*Store, error) {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "teamboard")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Token returns the stored session token, or "" when there is none.
func (s *Store) Token() string {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return string(data)
}

// Save persists the token and user record atomically enough for a
// single-user tool: token first, then the user.
func (s *Store) Save(token string, user models.User) error {
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), data, 0600)
}

// LoadUser returns the stored user record. A missing record returns
// (nil, nil); a corrupt one returns an error so callers can tear the
// session down.
func (s *Store) LoadUser() (*models.User, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Clear removes the persisted token and user record.
func (s *Store) Clear() error {
	tokenErr := os.Remove(filepath.Join(s.dir, tokenFile))
	userErr := os.Remove(filepath.Join(s.dir, userFile))
	for _, err := range []error{tokenErr, userErr} {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
