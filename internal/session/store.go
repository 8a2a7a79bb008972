// ABOUTME: Durable storage for session tokens and cached identity
// ABOUTME: Persists a JSON file in the config directory with owner-only permissions

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptlib/promptdeck/internal/client"
)

const sessionFileName = "session.json"

// State is the persisted session snapshot
type State struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *client.User `json:"user,omitempty"`
}

// Store reads and writes session state in the config directory
type Store struct {
	path string
}

// NewStore creates a store rooted at the given config directory
func NewStore(configDir string) *Store {
	return &Store{path: filepath.Join(configDir, sessionFileName)}
}

// Load reads the persisted state. A missing file yields an empty state.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt session file: treat as logged out rather than failing startup.
		return &State{}, nil
	}
	return &state, nil
}

// Save writes the state to disk, creating the directory if needed
func (s *Store) Save(state *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted state
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
