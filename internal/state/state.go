// Package state persists the one piece of session state that survives a
// restart: the active collection.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
)

// RelPath is the state file location relative to $XDG_STATE_HOME.
const RelPath = "tuiseum/state.toml"

type file struct {
	Collection string `toml:"collection"`
}

// Store reads and writes the state file.
type Store struct {
	Path string
}

// Default returns a store at the XDG state location.
func Default() (*Store, error) {
	path, err := xdg.StateFile(RelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get state path: %w", err)
	}
	return &Store{Path: path}, nil
}

// Collection returns the persisted collection, or museum.DefaultCollection
// when nothing valid is stored.
func (s *Store) Collection() museum.CollectionID {
	// #nosec G304 - path is the state file under the XDG state directory
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return museum.DefaultCollection
	}
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return museum.DefaultCollection
	}
	id, err := museum.ParseCollection(f.Collection)
	if err != nil {
		return museum.DefaultCollection
	}
	return id
}

// SetCollection records id as the active collection.
func (s *Store) SetCollection(id museum.CollectionID) error {
	if _, err := museum.Lookup(id); err != nil {
		return err
	}
	data, err := toml.Marshal(file{Collection: string(id)})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return os.Rename(tmp, s.Path)
}

// Reset removes the state file. A missing file is not an error.
func (s *Store) Reset() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
