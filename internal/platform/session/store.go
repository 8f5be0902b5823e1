// Package session implements the file-backed session store: the one owner
// of the persisted token/profile pair. The pair is written together and
// cleared together; everything else in the client only ever reads it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

// Compile-time interface check.
var _ ports.SessionStore = (*Store)(nil)

const defaultFileName = "session.json"

// sessionFile is the on-disk shape. Token and profile live in one file so
// they cannot be cleared half-way.
type sessionFile struct {
	Token   string      `json:"token"`
	Profile profileJSON `json:"user"`
}

type profileJSON struct {
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// Store is a mutex-guarded session store over a single JSON file. The lock
// matters: Clear is invoked by the HTTP client's 401 hook on request
// goroutines while the UI loop reads Token and Profile.
type Store struct {
	mu   sync.Mutex
	path string

	loaded  bool
	current *sessionFile // nil when no session is persisted
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "todoterm", defaultFileName), nil
}

// New creates a Store persisting to the given path. An empty path resolves
// to DefaultPath. The file is not required to exist yet.
func New(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

// Save persists the token and profile together, atomically replacing any
// previous session.
func (s *Store) Save(token string, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sf := &sessionFile{
		Token: token,
		Profile: profileJSON{
			Email:     profile.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		},
	}
	if err := s.write(sf); err != nil {
		return err
	}
	s.current = sf
	s.loaded = true
	return nil
}

// UpdateProfile replaces the persisted profile, keeping the current token.
// No-op when no session is persisted.
func (s *Store) UpdateProfile(profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	if s.current == nil {
		return nil
	}

	sf := &sessionFile{
		Token: s.current.Token,
		Profile: profileJSON{
			Email:     profile.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		},
	}
	if err := s.write(sf); err != nil {
		return err
	}
	s.current = sf
	return nil
}

// Token returns the persisted token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	if s.current == nil || s.current.Token == "" {
		return "", false
	}
	return s.current.Token, true
}

// Profile returns the last persisted profile, if any.
func (s *Store) Profile() (domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	if s.current == nil {
		return domain.Profile{}, false
	}
	return domain.Profile{
		Email:     s.current.Profile.Email,
		FirstName: s.current.Profile.FirstName,
		LastName:  s.current.Profile.LastName,
	}, true
}

// Clear removes the persisted session. Idempotent; removal errors are
// swallowed because logout must never fail.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.loaded = true
	_ = os.Remove(s.path)
}

// IsAuthenticated reports whether a token is currently persisted. It never
// validates the token against the server.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// load reads the file into memory once. Callers hold s.mu. A missing or
// unreadable file is treated as "no session".
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			// Corrupt or unreadable session files behave like logout.
			_ = os.Remove(s.path)
		}
		return
	}

	var sf sessionFile
	if err := json.Unmarshal(b, &sf); err != nil || sf.Token == "" {
		_ = os.Remove(s.path)
		return
	}
	s.current = &sf
}

// write persists sf atomically: temp file in the same dir, then rename.
func (s *Store) write(sf *sessionFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	b, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), defaultFileName+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing session file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("restricting session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}
