// ABOUTME: Persistent session storage in the XDG config directory
// ABOUTME: Holds accessToken, refreshToken, and the derived user as one JSON file

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// User is the identity derived from the access token or login response.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the user's role set contains role.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Snapshot is the persisted session state. All fields are cleared together
// on logout.
type Snapshot struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// Store reads and writes the session file. Writes are whole-file replaces so
// a crash never leaves a half-written session.
type Store struct {
	configDir string
}

// NewStore creates a store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// sessionFile returns the path to the session JSON.
func (s *Store) sessionFile() string {
	return filepath.Join(s.configDir, "session.json")
}

// Load reads the persisted session. A missing or corrupt file yields an
// empty snapshot, not an error; the caller treats that as anonymous.
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.sessionFile())
	if os.IsNotExist(err) {
		return &Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return &Snapshot{}, nil
	}
	return &snap, nil
}

// Save writes the snapshot to disk. The file holds credentials, hence 0600.
func (s *Store) Save(snap *Snapshot) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sessionFile(), data, 0600)
}

// Clear removes every persisted session key at once.
func (s *Store) Clear() error {
	err := os.Remove(s.sessionFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// SetAccessToken implements client.TokenStore. Empty deletes the key.
func (s *Store) SetAccessToken(token string) error {
	return s.mutate(func(snap *Snapshot) {
		snap.AccessToken = token
	})
}

// SetRefreshToken implements client.TokenStore. Empty deletes the key.
func (s *Store) SetRefreshToken(token string) error {
	return s.mutate(func(snap *Snapshot) {
		snap.RefreshToken = token
	})
}

// SetUser persists the derived user. A nil user deletes the key.
func (s *Store) SetUser(user *User) error {
	return s.mutate(func(snap *Snapshot) {
		snap.User = user
	})
}

// mutate applies a read-modify-write cycle on the session file.
func (s *Store) mutate(fn func(*Snapshot)) error {
	snap, err := s.Load()
	if err != nil {
		snap = &Snapshot{}
	}
	fn(snap)
	return s.Save(snap)
}
