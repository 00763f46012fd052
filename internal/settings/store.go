// Package settings persists user settings as a single JSON slot on disk.
package settings

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
)

// Defaults applied when a key has never been written.
const (
	DefaultVolume = 80
	DefaultTheme  = "dark"
)

type values struct {
	APIKey   string `json:"apiKey,omitempty"`
	Volume   *int   `json:"volume,omitempty"`
	AutoStop *bool  `json:"autoStop,omitempty"`
	Theme    string `json:"theme,omitempty"`
}

// Store is a durable key-value settings slot. Every setter persists before
// returning.
type Store struct {
	log  *zap.Logger
	path string
	mu   sync.Mutex
	vals values
}

// NewStore opens the settings slot at path, loading existing values. A missing
// file yields defaults; an unparseable file is logged and treated as empty.
func NewStore(log *zap.Logger, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("settings path required")
	}
	s := &Store{log: log, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.vals); err != nil {
		log.Warn("settings file unparseable, starting from defaults", zap.Error(err))
		s.vals = values{}
	}
	return s, nil
}

// APIKey returns the stored user credential, "" when absent.
func (s *Store) APIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vals.APIKey
}

// SetAPIKey stores the user credential.
func (s *Store) SetAPIKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals.APIKey = strings.TrimSpace(key)
	return s.persistLocked()
}

// Volume returns the stored volume percentage.
func (s *Store) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vals.Volume == nil {
		return DefaultVolume
	}
	return *s.vals.Volume
}

// SetVolume stores the volume percentage.
func (s *Store) SetVolume(percent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals.Volume = &percent
	return s.persistLocked()
}

// AutoStop reports whether starting a new stream stops the previous one.
// Enabled unless explicitly turned off.
func (s *Store) AutoStop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vals.AutoStop == nil {
		return true
	}
	return *s.vals.AutoStop
}

// SetAutoStop stores the auto-stop policy flag.
func (s *Store) SetAutoStop(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals.AutoStop = &enabled
	return s.persistLocked()
}

// Theme returns the stored theme choice.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vals.Theme == "" {
		return DefaultTheme
	}
	return s.vals.Theme
}

// SetTheme stores the theme choice.
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals.Theme = theme
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(s.vals, "", "  ")
	if err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.tmp.%d", s.path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
