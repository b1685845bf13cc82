package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Record is a stored credential set.
type Record struct {
	UserID       string    `json:"user_id,omitempty"`
	Login        string    `json:"login"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Expired reports whether the record carries an expiry that has passed.
// Records without an expiry never expire.
func (r Record) Expired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// Store persists credential records by name.
type Store interface {
	Load(name string) (Record, error)
	Save(name string, rec Record) error
}

// FileStore keeps each record as a JSON file inside one directory. Tokens
// are secrets, so files are written 0600 and replaced atomically.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

// Load reads the named record.
func (f *FileStore) Load(name string) (Record, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, name)
		}
		return Record{}, fmt.Errorf("read record %s: %w", name, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode record %s: %w", name, err)
	}
	return rec, nil
}

// Save writes the named record, stamping UpdatedAt.
func (f *FileStore) Save(name string, rec Record) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	rec.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record %s: %w", name, err)
	}

	target := f.path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write record %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace record %s: %w", name, err)
	}
	return nil
}

// Stored is a provider that reads a record from a store on every connect,
// so tokens refreshed by another process get picked up without a restart.
type Stored struct {
	Store Store
	Name  string
}

// Credentials loads the record and returns its login and access token.
func (s Stored) Credentials(_ context.Context) (string, string, error) {
	rec, err := s.Store.Load(s.Name)
	if err != nil {
		return "", "", err
	}
	if rec.Login == "" {
		return "", "", fmt.Errorf("%w: record %s has no login", ErrNoCredentials, s.Name)
	}
	return rec.Login, rec.AccessToken, nil
}
