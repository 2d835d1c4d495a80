// Package settings persists local UI preferences (last opened project,
// theme) between runs. Entity data is never stored here; the server owns
// it.
package settings

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Well-known setting keys.
const (
	KeyLastProject = "last_project_id"
	KeyTheme       = "theme"
)

// Store wraps the settings database.
type Store struct {
	*sql.DB
}

// Open creates (or opens) the settings database under the XDG data
// directory and initializes the schema.
func Open() (*Store, error) {
	path, err := dbPath()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db}, nil
}

// dbPath returns the path to the settings file.
func dbPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "teamboard")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "settings.db"), nil
}

// Get retrieves a setting value by key; a missing key returns "".
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set stores a setting value.
func (s *Store) Set(key, value string) error {
	_, err := s.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
