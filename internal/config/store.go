package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Preferences are the settings remembered between sessions. Generated
// values are never stored.
type Preferences struct {
	VerifierLength int  `json:"verifier_length,omitempty"`
	ShowSettings   bool `json:"show_settings,omitempty"`
}

// Store handles persistence of preferences.
// Data is stored in <data dir>/preferences.json.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a Store under dataDir.
func NewStore(dataDir string) *Store {
	return &Store{
		path: filepath.Join(dataDir, "preferences.json"),
	}
}

// Path returns the preferences file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved preferences, or nil if none were saved.
// Returns an error if the file exists but cannot be read or parsed.
func (s *Store) Load() (*Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	var prefs Preferences
	if err = json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences file: %w", err)
	}

	return &prefs, nil
}

// Save persists the preferences.
func (s *Store) Save(prefs *Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}

	return nil
}
