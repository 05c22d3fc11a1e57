// Package achievements records unlocks and keeps them in a local JSON file.
// Storage is best effort: failures are logged and the unlock still counts.
package achievements

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"walksim/internal/diag"
	"walksim/internal/engine"
)

// DefaultPath is relative to the process working directory.
const DefaultPath = "config/achievements.json"

type file struct {
	Unlocked []string `json:"unlocked"`
}

type Store struct {
	path     string
	unlocked map[string]bool
	order    []string

	// OnUnlock fires once per id, the first time it is unlocked.
	OnUnlock engine.EventWithArg[string]
}

// Open loads the store at path. A missing file is an empty store. An empty
// path keeps everything in memory.
func Open(path string) (*Store, error) {
	s := &Store{path: path, unlocked: make(map[string]bool)}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read achievements: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return s, fmt.Errorf("parse achievements: %w", err)
	}
	for _, id := range f.Unlocked {
		if !s.unlocked[id] {
			s.unlocked[id] = true
			s.order = append(s.order, id)
		}
	}
	return s, nil
}

// Unlock is idempotent: ids already unlocked are ignored.
func (s *Store) Unlock(id string) {
	if id == "" || s.unlocked[id] {
		return
	}
	s.unlocked[id] = true
	s.order = append(s.order, id)
	s.OnUnlock.Invoke(id)
	if err := s.save(); err != nil {
		diag.Warnf("Achievements", "could not save %q: %v", id, err)
	}
}

func (s *Store) Has(id string) bool { return s.unlocked[id] }

// Unlocked returns ids in unlock order.
func (s *Store) Unlocked() []string {
	return append([]string(nil), s.order...)
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(file{Unlocked: s.order}, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
