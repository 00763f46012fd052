// Package favorites maintains the user's saved sound collection.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey-austin/sound_board/pkg/sb"
)

// ErrNothingToExport is reported when exporting an empty collection. It is a
// user-facing precondition, not a system failure.
var ErrNothingToExport = errors.New("no favorites to export")

// ErrMalformedPayload is reported when an import payload is not a JSON array
// of favorite records.
var ErrMalformedPayload = errors.New("invalid file format")

// ToggleResult reports which branch a Toggle took.
type ToggleResult struct {
	Added   bool
	Removed bool
}

// Toggle outcomes.
var (
	Added   = ToggleResult{Added: true}
	Removed = ToggleResult{Removed: true}
)

// Store holds favorites in insertion order, at most one entry per sound id.
// Every mutation is persisted before it returns.
type Store struct {
	log     *zap.Logger
	path    string
	mu      sync.Mutex
	entries []sb.SoundSummary
}

// NewStore opens the favorites collection at path. A missing file yields an
// empty collection; an unparseable file is logged and treated as empty, left
// on disk until the next successful mutation.
func NewStore(log *zap.Logger, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("favorites path required")
	}
	s := &Store{log: log, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Warn("favorites file unparseable, starting empty", zap.Error(err))
		s.entries = nil
	}
	return s, nil
}

// Contains reports whether a sound id is in the collection.
func (s *Store) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfLocked(id) >= 0
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []sb.SoundSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sb.SoundSummary, len(s.entries))
	copy(out, s.entries)
	return out
}

// Add appends a sound unless its id is already present.
func (s *Store) Add(sound sb.SoundSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOfLocked(sound.ID) >= 0 {
		return nil
	}
	s.entries = append(s.entries, sound)
	return s.persistLocked()
}

// Remove drops a sound by id. No-op when absent.
func (s *Store) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return s.persistLocked()
}

// Toggle adds the sound when absent and removes it when present, reporting
// which branch occurred.
func (s *Store) Toggle(sound sb.SoundSummary) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfLocked(sound.ID)
	if idx >= 0 {
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
		return Removed, s.persistLocked()
	}
	s.entries = append(s.entries, sound)
	return Added, s.persistLocked()
}

// Clear empties the collection and persists the empty state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return s.persistLocked()
}

// Export serializes the collection as pretty-printed JSON in insertion order.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil, ErrNothingToExport
	}
	return json.MarshalIndent(s.entries, "", "  ")
}

// Import merges a JSON array of favorite records into the collection,
// keeping existing insertion order and discarding later duplicates by id. It
// returns the net growth of the collection; a batch containing internal
// duplicates of a new id counts that id once.
func (s *Store) Import(data []byte) (int, error) {
	var imported []sb.SoundSummary
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.entries)
	for _, sound := range imported {
		if s.indexOfLocked(sound.ID) < 0 {
			s.entries = append(s.entries, sound)
		}
	}
	added := len(s.entries) - before
	if added == 0 {
		return 0, nil
	}
	if err := s.persistLocked(); err != nil {
		// No partial mutation: roll back the merge on a failed write.
		s.entries = s.entries[:before]
		return 0, err
	}
	return added, nil
}

func (s *Store) indexOfLocked(id int64) int {
	for i, entry := range s.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	entries := s.entries
	if entries == nil {
		entries = []sb.SoundSummary{}
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.tmp.%d", s.path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
