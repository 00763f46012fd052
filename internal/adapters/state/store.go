// Package state persists the last rendered search page between CLI
// invocations so paging and row selection keep working.
package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mikey-austin/sound_board/internal/session"
	"github.com/mikey-austin/sound_board/pkg/sb"
)

// Snapshot is the persisted search position plus the rows of its page.
type Snapshot struct {
	State   session.State     `json:"state"`
	Sounds  []sb.SoundSummary `json:"sounds,omitempty"`
	SavedAt int64             `json:"savedAt"`
}

// Store saves the snapshot as a JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a snapshot store at the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the stored snapshot, or ok=false when none exists or it does
// not parse.
func (s *Store) Load() (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}
	var snapshot Snapshot
	if err := json.Unmarshal(file, &snapshot); err != nil {
		return Snapshot{}, false, nil
	}
	return snapshot, true, nil
}

// Save replaces the stored snapshot.
func (s *Store) Save(state session.State, sounds []sb.SoundSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{State: state, Sounds: sounds, SavedAt: time.Now().Unix()}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the stored snapshot.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
